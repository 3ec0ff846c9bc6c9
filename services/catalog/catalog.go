package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/MarcGrol/partnerstorefront/lib/myerrors"
	"github.com/MarcGrol/partnerstorefront/lib/mylog"
	"github.com/MarcGrol/partnerstorefront/lib/mystore"
	"github.com/MarcGrol/partnerstorefront/services/cart"
)

type loader interface {
	Load(c context.Context) ([]Product, error)
}

// Catalog is the local mirror of the partner catalog, keyed by product handle.
type Catalog struct {
	store  mystore.Store[Product]
	loader loader
	logger mylog.Logger
}

func NewCatalog(store mystore.Store[Product], loader loader, logger mylog.Logger) *Catalog {
	return &Catalog{
		store:  store,
		loader: loader,
		logger: logger,
	}
}

// Refresh replaces the mirror with the current partner listing. Products that disappeared
// upstream are removed. A failing fetch leaves the mirror untouched.
func (cat *Catalog) Refresh(c context.Context) (int, error) {
	products, err := cat.loader.Load(c)
	if err != nil {
		return 0, err
	}

	current, err := cat.store.List(c)
	if err != nil {
		return 0, myerrors.NewInternalError(fmt.Errorf("error listing cached products: %w", err))
	}

	fresh := map[string]bool{}
	for _, p := range products {
		if p.Handle == "" {
			continue
		}
		err = cat.store.Put(c, p.Handle, p)
		if err != nil {
			return 0, myerrors.NewInternalError(fmt.Errorf("error caching product %s: %w", p.Handle, err))
		}
		fresh[p.Handle] = true
	}

	for _, p := range current {
		if fresh[p.Handle] {
			continue
		}
		err = cat.store.Delete(c, p.Handle)
		if err != nil {
			return 0, myerrors.NewInternalError(fmt.Errorf("error removing product %s: %w", p.Handle, err))
		}
		cat.logger.Log(c, p.Handle, mylog.SeverityInfo, "Removed product %s that is no longer listed", p.Handle)
	}

	cat.logger.Log(c, "", mylog.SeverityInfo, "Catalog refreshed with %d products", len(fresh))

	return len(fresh), nil
}

// List returns all cached products in title order.
func (cat *Catalog) List(c context.Context) ([]Product, error) {
	products, err := cat.store.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error listing products: %w", err))
	}
	return Filter(products, Query{Sort: SortTitle}), nil
}

func (cat *Catalog) Get(c context.Context, handle string) (Product, error) {
	product, found, err := cat.store.Get(c, handle)
	if err != nil {
		return Product{}, myerrors.NewInternalError(fmt.Errorf("error fetching product %s: %w", handle, err))
	}
	if !found {
		return Product{}, myerrors.NewNotFoundError(fmt.Errorf("product %s not found", handle))
	}
	return product, nil
}

// ResolveItem is the line item for a variant as the catalog currently lists it.
func (cat *Catalog) ResolveItem(c context.Context, productHandle string, variantID int64) (cart.Item, error) {
	product, err := cat.Get(c, productHandle)
	if err != nil {
		return cart.Item{}, err
	}
	return product.CartItem(variantID)
}

// categoriesOf returns the distinct, non-empty product types in alphabetical order.
func categoriesOf(products []Product) []string {
	seen := map[string]bool{}
	categories := []string{}
	for _, p := range products {
		if p.ProductType == "" || seen[p.ProductType] {
			continue
		}
		seen[p.ProductType] = true
		categories = append(categories, p.ProductType)
	}
	sort.Strings(categories)
	return categories
}
