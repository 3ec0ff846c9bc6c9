// Package cartapi decodes the cart forms and json requests the storefront pages send.
package cartapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/partnerstorefront/lib/myerrors"
)

// AddItem names a variant of a catalog product. Title, price and image are looked up
// server side and are never taken from the request.
type AddItem struct {
	VariantID     int64  `form:"variantId" json:"variantId"`
	ProductHandle string `form:"productHandle" json:"productHandle"`
	Quantity      *int   `form:"quantity" json:"quantity"`
	ReturnTo      string `form:"returnTo" json:"-"`
}

// QuantityOrDefault is the requested quantity, 1 when none was given.
func (a AddItem) QuantityOrDefault() int {
	if a.Quantity == nil {
		return 1
	}
	return *a.Quantity
}

type UpdateQuantity struct {
	VariantID int64  `form:"variantId" json:"variantId"`
	Quantity  int    `form:"quantity" json:"quantity"`
	ReturnTo  string `form:"returnTo" json:"-"`
}

// QuantityChange is the json body of a quantity update on a known variant.
type QuantityChange struct {
	Quantity int `json:"quantity"`
}

type RemoveItem struct {
	VariantID int64  `form:"variantId"`
	ReturnTo  string `form:"returnTo"`
}

type ClearCart struct {
	ReturnTo string `form:"returnTo"`
}

func (a AddItem) validate() error {
	if a.VariantID == 0 {
		return fmt.Errorf("missing variantId")
	}
	if a.ProductHandle == "" {
		return fmt.Errorf("missing productHandle")
	}
	return nil
}

func (u UpdateQuantity) validate() error {
	if u.VariantID == 0 {
		return fmt.Errorf("missing variantId")
	}
	return nil
}

func (r RemoveItem) validate() error {
	if r.VariantID == 0 {
		return fmt.Errorf("missing variantId")
	}
	return nil
}

func (c ClearCart) validate() error {
	return nil
}

func (q QuantityChange) validate() error {
	return nil
}

type validator interface {
	validate() error
}

// FromRequest decodes the posted form of r into T.
func FromRequest[T validator](r *http.Request) (T, error) {
	var empty T
	err := r.ParseForm()
	if err != nil {
		return empty, myerrors.NewInvalidInputError(err)
	}
	return FromValues[T](r.PostForm)
}

func FromValues[T validator](values url.Values) (T, error) {
	var req T
	err := formcodec.NewDecoder().Decode(&req, values)
	if err != nil {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %w", err))
	}
	err = req.validate()
	if err != nil {
		return req, myerrors.NewInvalidInputError(err)
	}
	return req, nil
}

// FromJSON decodes a json request body into T.
func FromJSON[T validator](r *http.Request) (T, error) {
	var req T
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("error decoding json: %w", err))
	}
	err = req.validate()
	if err != nil {
		return req, myerrors.NewInvalidInputError(err)
	}
	return req, nil
}

// ToForm encodes an add-to-cart intent as the hidden fields of a product form.
func (a AddItem) ToForm() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(a)
	if err != nil {
		return nil, fmt.Errorf("error encoding form: %w", err)
	}
	return values, nil
}
