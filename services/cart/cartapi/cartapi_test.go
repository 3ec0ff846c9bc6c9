package cartapi

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/partnerstorefront/lib/myerrors"
)

func TestFromValues(t *testing.T) {

	t.Run("Add item with quantity", func(t *testing.T) {
		req, err := FromValues[AddItem](url.Values{
			"variantId":     {"111"},
			"productHandle": {"nitrile-gloves"},
			"price":         {"0.01"},
			"quantity":      {"3"},
			"returnTo":      {"/products"},
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(111), req.VariantID)
		assert.Equal(t, "nitrile-gloves", req.ProductHandle)
		assert.Equal(t, 3, req.QuantityOrDefault())
		assert.Equal(t, "/products", req.ReturnTo)
	})

	t.Run("Add item defaults to one", func(t *testing.T) {
		req, err := FromValues[AddItem](url.Values{"variantId": {"111"}, "productHandle": {"nitrile-gloves"}})
		assert.NoError(t, err)
		assert.Equal(t, 1, req.QuantityOrDefault())
	})

	t.Run("Add item without product", func(t *testing.T) {
		_, err := FromValues[AddItem](url.Values{"variantId": {"111"}})
		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Add item without variant", func(t *testing.T) {
		_, err := FromValues[AddItem](url.Values{"productHandle": {"nitrile-gloves"}})
		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Update with invalid quantity", func(t *testing.T) {
		_, err := FromValues[UpdateQuantity](url.Values{"variantId": {"111"}, "quantity": {"many"}})
		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Remove", func(t *testing.T) {
		req, err := FromValues[RemoveItem](url.Values{"variantId": {"222"}, "returnTo": {"/cart"}})
		assert.NoError(t, err)
		assert.Equal(t, int64(222), req.VariantID)
	})
}

func TestFromRequest(t *testing.T) {
	request, err := http.NewRequest(http.MethodPost, "/cart/update", strings.NewReader("variantId=111&quantity=0"))
	assert.NoError(t, err)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := FromRequest[UpdateQuantity](request)

	assert.NoError(t, err)
	assert.Equal(t, int64(111), req.VariantID)
	assert.Equal(t, 0, req.Quantity)
}

func TestFromJSON(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"variantId":111,"productHandle":"nitrile-gloves","quantity":2}`))
		assert.NoError(t, err)

		req, err := FromJSON[AddItem](request)

		assert.NoError(t, err)
		assert.Equal(t, int64(111), req.VariantID)
		assert.Equal(t, 2, req.QuantityOrDefault())
	})

	t.Run("Malformed", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"variantId":`))
		assert.NoError(t, err)

		_, err = FromJSON[AddItem](request)

		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})
}

func TestToForm(t *testing.T) {
	quantity := 1
	values, err := AddItem{
		VariantID:     111,
		ProductHandle: "nitrile-gloves",
		Quantity:      &quantity,
	}.ToForm()

	assert.NoError(t, err)
	assert.Equal(t, "111", values.Get("variantId"))
	assert.Equal(t, "nitrile-gloves", values.Get("productHandle"))
	assert.Equal(t, "1", values.Get("quantity"))

	decoded, err := FromValues[AddItem](values)
	assert.NoError(t, err)
	assert.Equal(t, int64(111), decoded.VariantID)
}
