package catalog

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/partnerstorefront/lib/myconfig"
	"github.com/MarcGrol/partnerstorefront/lib/myhttp"
	"github.com/MarcGrol/partnerstorefront/lib/mylog"
	"github.com/MarcGrol/partnerstorefront/lib/mypublisher"
	"github.com/MarcGrol/partnerstorefront/lib/mypubsub"
	"github.com/MarcGrol/partnerstorefront/lib/mystorage"
	"github.com/MarcGrol/partnerstorefront/lib/mystore"
	"github.com/MarcGrol/partnerstorefront/lib/mytime"
	"github.com/MarcGrol/partnerstorefront/lib/myuuid"
	"github.com/MarcGrol/partnerstorefront/services/cart"
	"github.com/MarcGrol/partnerstorefront/services/cart/cartevents"
)

const browserUID = "6f1c2a9e-3b7d-4c55-9a0e-1d2b3c4d5e6f"

func TestCatalogWebService(t *testing.T) {

	t.Run("Grid page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, _, _ := setup(t, ctrl, vest, gloves, helmet)

		// when
		response := doRequest(router, newRequest(t, http.MethodGet, "/products"))

		// then
		assert.Equal(t, 200, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, "Showing 3 products")
		assert.Contains(t, body, `<option value="Gloves">Gloves</option>`)
		assert.Contains(t, body, `<p class="summary">Powder-free nitrile gloves &amp; more.</p>`)
		assert.Contains(t, body, `<input type="hidden" name="variantId" value="111"/>`)
		assert.Contains(t, body, `<span class="out-of-stock">Out of Stock</span>`)
		assert.Contains(t, body, `class="cart-drawer"`)
		assert.NotContains(t, body, "cart-count")
		assert.Contains(t, body, `<span class="product-type product-type-head-protection">Head Protection</span>`)
		assert.NotContains(t, body, `class="clear-filters"`)
	})

	t.Run("Grid page filtered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, _, _ := setup(t, ctrl, vest, gloves, helmet)

		response := doRequest(router, newRequest(t, http.MethodGet, "/products?category=Apparel"))

		assert.Equal(t, 200, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, "Showing 1 product")
		assert.Contains(t, body, `data-handle="hi-vis-vest"`)
		assert.NotContains(t, body, `data-handle="nitrile-gloves"`)
		assert.Contains(t, body, `<a href="/products" class="clear-filters">Clear filters</a>`)
	})

	t.Run("Grid page sorted only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, _, _ := setup(t, ctrl, vest, gloves, helmet)

		response := doRequest(router, newRequest(t, http.MethodGet, "/products?sort=price-desc"))

		assert.Equal(t, 200, response.Code)
		assert.NotContains(t, response.Body.String(), `class="clear-filters"`)
	})

	t.Run("Grid page without results", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, _, _ := setup(t, ctrl, vest)

		response := doRequest(router, newRequest(t, http.MethodGet, "/?search=helmet"))

		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "No products found matching your criteria.")
	})

	t.Run("Grid page with open drawer and filled cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, items, _ := setup(t, ctrl, gloves)

		// given
		givenCart(t, items, cart.Cart{{VariantID: 111, ProductHandle: "nitrile-gloves", ProductTitle: "Nitrile Gloves", Price: "10.00", Quantity: 2}})

		// when
		response := doRequest(router, newRequest(t, http.MethodGet, "/products?drawer=open"))

		// then
		assert.Equal(t, 200, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, `<span class="cart-count">2</span>`)
		assert.Contains(t, body, `class="cart-drawer open"`)
		assert.Contains(t, body, `<strong>$20.00</strong>`)
		assert.Contains(t, body, `<input type="hidden" name="returnTo" value="/products"/>`)
	})

	t.Run("Detail page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, _, _ := setup(t, ctrl, gloves)

		// when
		response := doRequest(router, newRequest(t, http.MethodGet, "/products/nitrile-gloves"))

		// then
		assert.Equal(t, 200, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, "<h1>Nitrile Gloves</h1>")
		assert.Contains(t, body, "SKU: NG-L")
		assert.Contains(t, body, "<strong>nitrile</strong>")
		assert.Contains(t, body, `href="https://bostonsafetyequipment.com/products/nitrile-gloves"`)
		assert.Contains(t, body, `<input type="number" name="quantity" value="1" min="1"/>`)
		assert.Contains(t, body, `<span class="variant unavailable">Small</span>`)
	})

	t.Run("Detail page with unavailable variant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, _, _ := setup(t, ctrl, gloves)

		response := doRequest(router, newRequest(t, http.MethodGet, "/products/nitrile-gloves?variant=112"))

		assert.Equal(t, 200, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, "SKU: NG-S")
		assert.Contains(t, body, "Out of Stock")
		assert.NotContains(t, body, `name="quantity"`)
	})

	t.Run("Detail page unknown product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, _, _ := setup(t, ctrl, gloves)

		response := doRequest(router, newRequest(t, http.MethodGet, "/products/unknown"))

		assert.Equal(t, 404, response.Code)
	})

	t.Run("Api list products", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, _, _ := setup(t, ctrl, vest, gloves, helmet)

		// when
		response := doRequest(router, newRequest(t, http.MethodGet, "/api/products?sort=price-desc"))

		// then
		assert.Equal(t, 200, response.Code)
		resp := productList{}
		err := json.Unmarshal(response.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, 3, resp.Count)
		assert.Equal(t, []string{"hard-hat", "nitrile-gloves", "hi-vis-vest"}, handles(resp.Products))
		assert.Equal(t, []string{"Apparel", "Gloves", "Head Protection"}, resp.Categories)
	})

	t.Run("Api get product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, _, _ := setup(t, ctrl, gloves)

		response := doRequest(router, newRequest(t, http.MethodGet, "/api/products/nitrile-gloves"))

		assert.Equal(t, 200, response.Code)
		product := Product{}
		err := json.Unmarshal(response.Body.Bytes(), &product)
		assert.NoError(t, err)
		assert.Equal(t, gloves, product)
	})

	t.Run("Api refresh", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, _, loader := setup(t, ctrl, gloves)

		// given
		loader.products = []Product{gloves, vest}

		// when
		response := doRequest(router, newRequest(t, http.MethodPost, "/api/catalog/refresh"))

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"count":2}`, response.Body.String())
	})
}

func TestAddFromCatalog(t *testing.T) {

	t.Run("Add available variant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, items, _ := setup(t, ctrl, gloves)

		// when
		response := doRequest(router, newFormRequest(t, "/cart/add", url.Values{
			"variantId":     {"111"},
			"productHandle": {"nitrile-gloves"},
			"quantity":      {"2"},
			"returnTo":      {"/products/nitrile-gloves"},
		}))

		// then
		assert.Equal(t, 303, response.Code)
		assert.Equal(t, "/products/nitrile-gloves?drawer=open", response.Header().Get("Location"))
		item, found, err := items.Get(t.Context(), browserUID+"/wenorth-cart")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `[{"variantId":111,"productHandle":"nitrile-gloves","productTitle":"Nitrile Gloves","variantTitle":"Large","price":"10.00","image":"https://cdn.example.com/gloves.jpg","quantity":2}]`, item.Value)
	})

	t.Run("Add unavailable variant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, items, _ := setup(t, ctrl, gloves)

		// when
		response := doRequest(router, newFormRequest(t, "/cart/add", url.Values{
			"variantId":     {"112"},
			"productHandle": {"nitrile-gloves"},
		}))

		// then
		assert.Equal(t, 400, response.Code)
		_, found, err := items.Get(t.Context(), browserUID+"/wenorth-cart")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Api add of variant of another product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router, _, _ := setup(t, ctrl, gloves, vest)

		request := newRequest(t, http.MethodPost, "/api/cart/items")
		request.Body = io.NopCloser(strings.NewReader(`{"variantId":222,"productHandle":"nitrile-gloves"}`))

		response := doRequest(router, request)

		assert.Equal(t, 404, response.Code)
	})
}

func TestWithoutDrawer(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/products?drawer=open&category=Gloves", nil)
	assert.Equal(t, "/products?category=Gloves", withoutDrawer(request.URL))

	request = httptest.NewRequest(http.MethodGet, "/products/hard-hat?drawer=open", nil)
	assert.Equal(t, "/products/hard-hat", withoutDrawer(request.URL))
}

func setup(t *testing.T, ctrl *gomock.Controller, products ...Product) (*mux.Router, mystore.Store[mystorage.Item], *fakeLoader) {
	c := t.Context()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)

	items, cleanup, err := mystore.NewInMemoryStore[mystorage.Item](c)
	assert.NoError(t, err)
	t.Cleanup(cleanup)

	sut, loader, _ := setupCatalog(t, products...)
	_, err = sut.Refresh(c)
	assert.NoError(t, err)

	cfg := myconfig.Default()
	resolver := cart.NewScopeResolver(items, cfg.CartStorageKey, cart.NewCheckoutLinker(cfg, nower), uuider, mylog.New("test"))

	publisher := mypublisher.NewMockPublisher(ctrl)
	publisher.EXPECT().CreateTopic(gomock.Any(), cartevents.TopicName).Return(nil)
	pubsub := mypubsub.NewMockPubSub(ctrl)
	pubsub.EXPECT().Subscribe(gomock.Any(), cartevents.TopicName, gomock.Any()).Return(nil)

	router := mux.NewRouter()
	NewService(sut, resolver).RegisterEndpoints(c, router)
	err = cart.NewService(resolver, sut, publisher, pubsub, cfg.BaseURL()).RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return router, items, loader
}

func newRequest(t *testing.T, method string, target string) *http.Request {
	request, err := http.NewRequest(method, target, nil)
	assert.NoError(t, err)
	request.Host = "localhost:8080"
	request.AddCookie(&http.Cookie{Name: myhttp.BrowserCookieName, Value: browserUID})
	return request
}

func newFormRequest(t *testing.T, target string, values url.Values) *http.Request {
	request := newRequest(t, http.MethodPost, target)
	request.Body = io.NopCloser(strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func doRequest(router *mux.Router, request *http.Request) *httptest.ResponseRecorder {
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func givenCart(t *testing.T, items mystore.Store[mystorage.Item], c cart.Cart) {
	data, err := json.Marshal(c)
	assert.NoError(t, err)
	err = items.Put(t.Context(), browserUID+"/wenorth-cart", mystorage.Item{Key: "wenorth-cart", Value: string(data)})
	assert.NoError(t, err)
}
