package myconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {

	t.Run("Partial document keeps defaults", func(t *testing.T) {
		cfg, err := Parse([]byte(`
commerceDomain: shop.example.com
referral:
  partner: acme
`))
		assert.NoError(t, err)
		assert.Equal(t, "shop.example.com", cfg.CommerceDomain)
		assert.Equal(t, "acme", cfg.Referral.Partner)
		assert.Equal(t, "wenorth-equipment-catalog", cfg.Referral.Source)
		assert.Equal(t, "partner-catalog", cfg.Referral.Medium)
		assert.Equal(t, "ppe-sales", cfg.Referral.Campaign)
		assert.Equal(t, "wenorth-cart", cfg.CartStorageKey)
	})

	t.Run("Invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("commerceDomain: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("Empty domain rejected", func(t *testing.T) {
		_, err := Parse([]byte(`commerceDomain: ""`))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv(configFileEnv, "")
		t.Setenv("PORT", "")
		t.Setenv("PUBLIC_URL", "")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
	})

	t.Run("Public url", func(t *testing.T) {
		t.Setenv(configFileEnv, "")
		t.Setenv("PUBLIC_URL", "https://catalog.example.com/")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "https://catalog.example.com", cfg.BaseURL())
	})

	t.Run("File and port", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "storefront.yaml")
		err := os.WriteFile(filename, []byte("cartStorageKey: acme-cart\n"), 0o600)
		assert.NoError(t, err)
		t.Setenv(configFileEnv, filename)
		t.Setenv("PORT", "9090")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "acme-cart", cfg.CartStorageKey)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "bostonsafetyequipment.com", cfg.CommerceDomain)
	})

	t.Run("Missing file", func(t *testing.T) {
		t.Setenv(configFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := Load()
		assert.Error(t, err)
	})
}
