package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MarcGrol/partnerstorefront/lib/myerrors"
	"github.com/MarcGrol/partnerstorefront/lib/myhttpclient"
)

type upstreamListing struct {
	Products []upstreamProduct `json:"products"`
}

type upstreamProduct struct {
	Title       string            `json:"title"`
	Handle      string            `json:"handle"`
	BodyHTML    *string           `json:"body_html"`
	ProductType string            `json:"product_type"`
	Vendor      string            `json:"vendor"`
	Tags        []string          `json:"tags"`
	Images      []upstreamImage   `json:"images"`
	Variants    []upstreamVariant `json:"variants"`
}

type upstreamImage struct {
	Src string  `json:"src"`
	Alt *string `json:"alt"`
}

type upstreamVariant struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Price     string  `json:"price"`
	Available bool    `json:"available"`
	SKU       *string `json:"sku"`
}

// Loader fetches the public product listing of the partner shop.
type Loader struct {
	client myhttpclient.HTTPSender
	url    string
}

func NewLoader(client myhttpclient.HTTPSender, domain string, path string) *Loader {
	return &Loader{
		client: client,
		url:    fmt.Sprintf("https://%s%s", domain, path),
	}
}

func (l *Loader) Load(c context.Context) ([]Product, error) {
	status, body, err := l.client.Send(c, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, myerrors.NewUnavailableError(fmt.Errorf("error fetching catalog: %w", err))
	}
	if status != http.StatusOK {
		return nil, myerrors.NewUnavailableError(fmt.Errorf("error fetching catalog: %s returned %d", l.url, status))
	}

	listing := upstreamListing{}
	err = json.Unmarshal(body, &listing)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error parsing catalog: %w", err))
	}

	products := make([]Product, 0, len(listing.Products))
	for _, up := range listing.Products {
		products = append(products, up.toProduct())
	}
	return products, nil
}

func (up upstreamProduct) toProduct() Product {
	p := Product{
		ID:          up.Handle,
		Handle:      up.Handle,
		Title:       up.Title,
		Description: deref(up.BodyHTML),
		ProductType: up.ProductType,
		Vendor:      up.Vendor,
		Tags:        up.Tags,
		Images:      make([]Image, 0, len(up.Images)),
		Variants:    make([]Variant, 0, len(up.Variants)),
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	for _, img := range up.Images {
		alt := deref(img.Alt)
		if alt == "" {
			alt = up.Title
		}
		p.Images = append(p.Images, Image{Src: img.Src, Alt: alt})
	}
	for _, v := range up.Variants {
		p.Variants = append(p.Variants, Variant{
			ID:        v.ID,
			Title:     v.Title,
			Price:     v.Price,
			Available: v.Available,
			SKU:       deref(v.SKU),
		})
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
