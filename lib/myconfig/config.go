package myconfig

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const configFileEnv = "STOREFRONT_CONFIG"

type Config struct {
	Port           string   `yaml:"port"`
	PublicURL      string   `yaml:"publicUrl"`
	CommerceDomain string   `yaml:"commerceDomain"`
	CatalogPath    string   `yaml:"catalogPath"`
	CartStorageKey string   `yaml:"cartStorageKey"`
	Referral       Referral `yaml:"referral"`
}

// Referral holds the attribution values attached to every checkout handoff.
type Referral struct {
	Partner  string `yaml:"partner"`
	Source   string `yaml:"source"`
	Medium   string `yaml:"medium"`
	Campaign string `yaml:"campaign"`
}

func Default() Config {
	return Config{
		Port:           "8080",
		CommerceDomain: "bostonsafetyequipment.com",
		CatalogPath:    "/products.json",
		CartStorageKey: "wenorth-cart",
		Referral: Referral{
			Partner:  "wenorth",
			Source:   "wenorth-equipment-catalog",
			Medium:   "partner-catalog",
			Campaign: "ppe-sales",
		},
	}
}

// Load starts from the defaults, applies the yaml file named in STOREFRONT_CONFIG (if any)
// and finally the PORT and PUBLIC_URL environment variables.
func Load() (Config, error) {
	cfg := Default()

	filename := os.Getenv(configFileEnv)
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", filename, err)
		}
		cfg, err = Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("error parsing config file %s: %w", filename, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if publicURL := os.Getenv("PUBLIC_URL"); publicURL != "" {
		cfg.PublicURL = publicURL
	}

	return cfg, nil
}

// Parse overlays the yaml document on the defaults; absent fields keep their default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, err
	}

	err = cfg.validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// BaseURL is where push subscriptions reach this service.
func (c Config) BaseURL() string {
	if c.PublicURL != "" {
		return strings.TrimSuffix(c.PublicURL, "/")
	}
	return "http://localhost:" + c.Port
}

func (c Config) validate() error {
	if c.CommerceDomain == "" {
		return fmt.Errorf("commerceDomain is required")
	}
	if c.CartStorageKey == "" {
		return fmt.Errorf("cartStorageKey is required")
	}
	if c.Referral.Partner == "" {
		return fmt.Errorf("referral.partner is required")
	}
	return nil
}
