package cart

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/partnerstorefront/lib/mycontext"
	"github.com/MarcGrol/partnerstorefront/lib/myerrors"
	"github.com/MarcGrol/partnerstorefront/lib/myhttp"
	"github.com/MarcGrol/partnerstorefront/lib/mylog"
	"github.com/MarcGrol/partnerstorefront/lib/mypublisher"
	"github.com/MarcGrol/partnerstorefront/lib/mypubsub"
	"github.com/MarcGrol/partnerstorefront/services/cart/cartapi"
	"github.com/MarcGrol/partnerstorefront/services/cart/cartevents"
)

const defaultReturnTo = "/cart"

// ItemResolver looks up what a variant of a product currently is in the catalog. Unknown
// products fail with 404 and variants that cannot be bought with 400.
type ItemResolver interface {
	ResolveItem(c context.Context, productHandle string, variantID int64) (Item, error)
}

type webService struct {
	resolver *ScopeResolver
	items    ItemResolver
	service  *service
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(resolver *ScopeResolver, items ItemResolver, pub mypublisher.Publisher, pubsub mypubsub.PubSub, baseURL string) *webService {
	logger := mylog.New("cart")
	return &webService{
		resolver: resolver,
		items:    items,
		service:  newService(pub, pubsub, baseURL, logger),
		logger:   logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/cart", s.cartPage()).Methods("GET")
	router.HandleFunc("/cart/add", s.addForm()).Methods("POST")
	router.HandleFunc("/cart/update", s.updateForm()).Methods("POST")
	router.HandleFunc("/cart/remove", s.removeForm()).Methods("POST")
	router.HandleFunc("/cart/clear", s.clearForm()).Methods("POST")
	router.HandleFunc("/cart/checkout", s.checkoutRedirect()).Methods("GET")

	router.HandleFunc("/api/cart", s.getCart()).Methods("GET")
	router.HandleFunc("/api/cart", s.clearCart()).Methods("DELETE")
	router.HandleFunc("/api/cart/items", s.addItem()).Methods("POST")
	router.HandleFunc("/api/cart/items/{variantId}", s.updateItem()).Methods("PUT")
	router.HandleFunc("/api/cart/items/{variantId}", s.removeItem()).Methods("DELETE")
	router.HandleFunc("/api/cart/event", s.handleEvent()).Methods("POST")

	return s.service.Subscribe(c)
}

// mount resolves the browser's scope and mounts the single island a handler works with.
func (s *webService) mount(c context.Context, w http.ResponseWriter, r *http.Request) (Scope, *Provider, error) {
	scope := s.resolver.Resolve(w, r)
	provider, err := scope.Mount(c)
	if err != nil {
		return Scope{}, nil, err
	}
	return scope, provider, nil
}

func (s *webService) cartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		_, provider, err := s.mount(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}
		defer provider.Unmount()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = cartPageTemplate.Execute(w, islandData{
			View:     NewView(provider),
			ReturnTo: defaultReturnTo,
		})
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s *webService) addForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		req, err := cartapi.FromRequest[cartapi.AddItem](r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		item, err := s.items.ResolveItem(c, req.ProductHandle, req.VariantID)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		_, provider, err := s.mount(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}
		defer provider.Unmount()

		err = provider.AddToCart(c, item, req.QuantityOrDefault())
		if err != nil {
			responseWriter.WriteError(c, w, 4, err)
			return
		}

		returnTo := myhttp.LocalRedirectTarget(req.ReturnTo, defaultReturnTo)
		http.Redirect(w, r, myhttp.WithQueryParam(returnTo, "drawer", "open"), http.StatusSeeOther)
	}
}

func (s *webService) updateForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		req, err := cartapi.FromRequest[cartapi.UpdateQuantity](r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		_, provider, err := s.mount(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}
		defer provider.Unmount()

		err = provider.UpdateQuantity(c, req.VariantID, req.Quantity)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		http.Redirect(w, r, myhttp.LocalRedirectTarget(req.ReturnTo, defaultReturnTo), http.StatusSeeOther)
	}
}

func (s *webService) removeForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		req, err := cartapi.FromRequest[cartapi.RemoveItem](r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		_, provider, err := s.mount(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}
		defer provider.Unmount()

		err = provider.RemoveFromCart(c, req.VariantID)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		http.Redirect(w, r, myhttp.LocalRedirectTarget(req.ReturnTo, defaultReturnTo), http.StatusSeeOther)
	}
}

func (s *webService) clearForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		req, err := cartapi.FromRequest[cartapi.ClearCart](r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		_, provider, err := s.mount(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}
		defer provider.Unmount()

		err = provider.ClearCart(c)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		http.Redirect(w, r, myhttp.LocalRedirectTarget(req.ReturnTo, defaultReturnTo), http.StatusSeeOther)
	}
}

func (s *webService) checkoutRedirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		scope, provider, err := s.mount(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}
		defer provider.Unmount()

		items := provider.Items()
		checkoutURL := provider.CheckoutURL()
		if items.IsEmpty() {
			http.Redirect(w, r, defaultReturnTo, http.StatusSeeOther)
			return
		}

		err = s.service.handOff(c, scope.BrowserUID, items, checkoutURL)
		if err != nil {
			// the visitor still gets to the checkout
			s.logger.Log(c, scope.BrowserUID, mylog.SeverityError, "Error publishing checkout hand-off: %s", err)
		}

		http.Redirect(w, r, checkoutURL, http.StatusSeeOther)
	}
}

func (s *webService) getCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		_, provider, err := s.mount(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}
		defer provider.Unmount()

		responseWriter.Write(c, w, http.StatusOK, NewView(provider))
	}
}

func (s *webService) addItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		req, err := cartapi.FromJSON[cartapi.AddItem](r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		item, err := s.items.ResolveItem(c, req.ProductHandle, req.VariantID)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		_, provider, err := s.mount(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}
		defer provider.Unmount()

		err = provider.AddToCart(c, item, req.QuantityOrDefault())
		if err != nil {
			responseWriter.WriteError(c, w, 4, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, NewView(provider))
	}
}

func (s *webService) updateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		variantID, err := variantIDFromPath(r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		req, err := cartapi.FromJSON[cartapi.QuantityChange](r)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		_, provider, err := s.mount(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}
		defer provider.Unmount()

		err = provider.UpdateQuantity(c, variantID, req.Quantity)
		if err != nil {
			responseWriter.WriteError(c, w, 4, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, NewView(provider))
	}
}

func (s *webService) removeItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		variantID, err := variantIDFromPath(r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		_, provider, err := s.mount(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}
		defer provider.Unmount()

		err = provider.RemoveFromCart(c, variantID)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, NewView(provider))
	}
}

func (s *webService) clearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		_, provider, err := s.mount(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}
		defer provider.Unmount()

		err = provider.ClearCart(c)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, NewView(provider))
	}
}

func (s *webService) handleEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := cartevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}

func variantIDFromPath(r *http.Request) (int64, error) {
	variantID, err := strconv.ParseInt(mux.Vars(r)["variantId"], 10, 64)
	if err != nil {
		return 0, myerrors.NewInvalidInputErrorf("invalid variant id %q", mux.Vars(r)["variantId"])
	}
	return variantID, nil
}
