package catalog

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/partnerstorefront/lib/mycontext"
	"github.com/MarcGrol/partnerstorefront/lib/myerrors"
	"github.com/MarcGrol/partnerstorefront/lib/myhttp"
	"github.com/MarcGrol/partnerstorefront/lib/mylog"
	"github.com/MarcGrol/partnerstorefront/lib/myprice"
	"github.com/MarcGrol/partnerstorefront/services/cart"
	"github.com/MarcGrol/partnerstorefront/services/cart/cartapi"
)

const summaryLength = 120

type webService struct {
	catalog  *Catalog
	resolver *cart.ScopeResolver
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(catalog *Catalog, resolver *cart.ScopeResolver) *webService {
	return &webService{
		catalog:  catalog,
		resolver: resolver,
		logger:   mylog.New("catalog"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/", s.gridPage()).Methods("GET")
	router.HandleFunc("/products", s.gridPage()).Methods("GET")
	router.HandleFunc("/products/{handle}", s.detailPage()).Methods("GET")

	router.HandleFunc("/api/products", s.listProducts()).Methods("GET")
	router.HandleFunc("/api/products/{handle}", s.getProduct()).Methods("GET")
	router.HandleFunc("/api/catalog/refresh", s.refresh()).Methods("POST")
}

//go:embed templates
var templateFolder embed.FS
var (
	gridPageTemplate   *template.Template
	detailPageTemplate *template.Template
)

func init() {
	funcs := template.FuncMap{
		"price": myprice.Format,
		"slug":  Slugify,
	}
	gridPageTemplate = template.Must(template.New("grid.html").Funcs(funcs).ParseFS(templateFolder, "templates/grid.html", "templates/addform.html"))
	detailPageTemplate = template.Must(template.New("detail.html").Funcs(funcs).ParseFS(templateFolder, "templates/detail.html"))
}

// islands renders the cart badge and drawer, each from its own provider.
type islands struct {
	Badge  template.HTML
	Drawer template.HTML
}

func (s *webService) renderIslands(c context.Context, w http.ResponseWriter, r *http.Request) (islands, error) {
	scope := s.resolver.Resolve(w, r)

	badgeProvider, err := scope.Mount(c)
	if err != nil {
		return islands{}, err
	}
	defer badgeProvider.Unmount()

	drawerProvider, err := scope.Mount(c)
	if err != nil {
		return islands{}, err
	}
	defer drawerProvider.Unmount()
	if r.URL.Query().Get("drawer") == "open" {
		drawerProvider.Open()
	}

	badge, err := cart.RenderBadge(badgeProvider)
	if err != nil {
		return islands{}, myerrors.NewInternalError(err)
	}
	drawer, err := cart.RenderDrawer(drawerProvider, withoutDrawer(r.URL))
	if err != nil {
		return islands{}, myerrors.NewInternalError(err)
	}
	return islands{Badge: badge, Drawer: drawer}, nil
}

type card struct {
	Product   Product
	Summary   string
	Price     string
	Available bool
	AddForm   url.Values
}

type gridData struct {
	islands
	Cards      []card
	Categories []string
	Query      Query
	ReturnTo   string
}

func (s *webService) gridPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		products, err := s.catalog.List(c)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		isl, err := s.renderIslands(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		query := queryFromRequest(r)
		returnTo := withoutDrawer(r.URL)
		cards := []card{}
		for _, p := range Filter(products, query) {
			cards = append(cards, newCard(p, returnTo))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = gridPageTemplate.Execute(w, gridData{
			islands:    isl,
			Cards:      cards,
			Categories: categoriesOf(products),
			Query:      query,
			ReturnTo:   returnTo,
		})
		if err != nil {
			responseWriter.WriteError(c, w, 3, myerrors.NewInternalError(err))
			return
		}
	}
}

func newCard(p Product, returnTo string) card {
	c := card{
		Product: p,
		Summary: Truncate(StripHTML(p.Description), summaryLength),
		Price:   p.FirstPrice(),
	}
	item, err := p.CartItem(0)
	if err == nil {
		c.Available = true
		c.AddForm = addForm(item, returnTo, true)
	}
	return c
}

func addForm(item cart.Item, returnTo string, withQuantity bool) url.Values {
	quantity := 1
	values, err := cartapi.AddItem{
		VariantID:     item.VariantID,
		ProductHandle: item.ProductHandle,
		Quantity:      &quantity,
		ReturnTo:      returnTo,
	}.ToForm()
	if err != nil {
		return nil
	}
	if !withQuantity {
		values.Del("quantity")
	}
	return values
}

type detailData struct {
	islands
	Product             Product
	Description         template.HTML
	Selected            Variant
	Available           bool
	HasMultipleVariants bool
	AddForm             url.Values
	PartnerURL          string
	ReturnTo            string
}

func (s *webService) detailPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		product, err := s.catalog.Get(c, mux.Vars(r)["handle"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		selected, found := product.FirstVariant()
		if variantID, err := strconv.ParseInt(r.URL.Query().Get("variant"), 10, 64); err == nil {
			if v, ok := product.Variant(variantID); ok {
				selected, found = v, true
			}
		}

		isl, err := s.renderIslands(c, w, r)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		returnTo := withoutDrawer(r.URL)
		page := detailData{
			islands:             isl,
			Product:             product,
			Description:         SafeDescription(product.Description),
			Selected:            selected,
			HasMultipleVariants: product.HasMultipleVariants(),
			PartnerURL:          s.resolver.Linker().ProductURL(product.Handle),
			ReturnTo:            returnTo,
		}
		if found {
			item, err := product.CartItem(selected.ID)
			if err == nil {
				page.Available = true
				page.AddForm = addForm(item, returnTo, false)
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = detailPageTemplate.Execute(w, page)
		if err != nil {
			responseWriter.WriteError(c, w, 3, myerrors.NewInternalError(err))
			return
		}
	}
}

type productList struct {
	Products   []Product `json:"products"`
	Categories []string  `json:"categories"`
	Count      int       `json:"count"`
}

func (s *webService) listProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		products, err := s.catalog.List(c)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		filtered := Filter(products, queryFromRequest(r))
		responseWriter.Write(c, w, http.StatusOK, productList{
			Products:   filtered,
			Categories: categoriesOf(products),
			Count:      len(filtered),
		})
	}
}

func (s *webService) getProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		product, err := s.catalog.Get(c, mux.Vars(r)["handle"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, product)
	}
}

type refreshResponse struct {
	Count int `json:"count"`
}

func (s *webService) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		count, err := s.catalog.Refresh(c)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, refreshResponse{Count: count})
	}
}

func queryFromRequest(r *http.Request) Query {
	params := r.URL.Query()
	return Query{
		Search:   params.Get("search"),
		Category: params.Get("category"),
		Sort:     ParseSortOrder(params.Get("sort")),
	}
}

// withoutDrawer is the request uri with the drawer state dropped, used as return target.
func withoutDrawer(u *url.URL) string {
	q := u.Query()
	q.Del("drawer")
	target := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return target.String()
}
