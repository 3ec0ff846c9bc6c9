package catalog

import (
	"errors"
	"fmt"

	"github.com/MarcGrol/partnerstorefront/lib/myerrors"
	"github.com/MarcGrol/partnerstorefront/services/cart"
)

const defaultVariantTitle = "Default Title"

var ErrVariantUnavailable = errors.New("variant is not available")

type Product struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description" datastore:",noindex"`
	ProductType string    `json:"productType"`
	Vendor      string    `json:"vendor"`
	Tags        []string  `json:"tags"`
	Images      []Image   `json:"images"`
	Variants    []Variant `json:"variants"`
}

type Image struct {
	Src string `json:"src" datastore:",noindex"`
	Alt string `json:"alt" datastore:",noindex"`
}

type Variant struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Available bool   `json:"available"`
	SKU       string `json:"sku"`
}

// FirstVariant is the variant a product card adds to the cart.
func (p Product) FirstVariant() (Variant, bool) {
	if len(p.Variants) == 0 {
		return Variant{}, false
	}
	return p.Variants[0], true
}

func (p Product) Variant(variantID int64) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v, true
		}
	}
	return Variant{}, false
}

// FirstPrice is the price of the first variant, "0" for a product without variants.
func (p Product) FirstPrice() string {
	v, found := p.FirstVariant()
	if !found || v.Price == "" {
		return "0"
	}
	return v.Price
}

// ImageURL is the first image, empty when there is none.
func (p Product) ImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Src
}

// HasMultipleVariants is false for the single placeholder variant the commerce platform
// gives products without options.
func (p Product) HasMultipleVariants() bool {
	return len(p.Variants) > 1 && p.Variants[0].Title != defaultVariantTitle
}

// CartItem builds the line item for variantID, or for the first variant when variantID is 0.
func (p Product) CartItem(variantID int64) (cart.Item, error) {
	variant, found := p.FirstVariant()
	if variantID != 0 {
		variant, found = p.Variant(variantID)
	}
	if !found {
		return cart.Item{}, myerrors.NewNotFoundError(fmt.Errorf("product %s has no variant %d", p.Handle, variantID))
	}
	if !variant.Available {
		return cart.Item{}, myerrors.NewInvalidInputError(fmt.Errorf("%s / %s: %w", p.Title, variant.Title, ErrVariantUnavailable))
	}

	return cart.Item{
		VariantID:     variant.ID,
		ProductHandle: p.Handle,
		ProductTitle:  p.Title,
		VariantTitle:  variant.Title,
		Price:         variant.Price,
		Image:         p.ImageURL(),
	}, nil
}
