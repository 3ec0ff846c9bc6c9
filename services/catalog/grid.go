package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MarcGrol/partnerstorefront/lib/myprice"
)

type SortOrder string

const (
	SortTitle     SortOrder = "title"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

// ParseSortOrder falls back to title order for anything it does not recognise.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortPriceAsc, SortPriceDesc:
		return SortOrder(s)
	default:
		return SortTitle
	}
}

// Query narrows and orders a product grid. Empty fields do not filter.
type Query struct {
	Search   string
	Category string
	Sort     SortOrder
}

// IsFiltered reports whether q narrows the grid, as opposed to only ordering it.
func (q Query) IsFiltered() bool {
	return q.Search != "" || q.Category != ""
}

// Filter applies q to products and returns a new slice; products itself is not reordered.
func Filter(products []Product, q Query) []Product {
	lower := cases.Lower(language.Und)
	search := lower.String(q.Search)

	result := make([]Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(lower.String(p.Title), search) &&
			!strings.Contains(lower.String(p.ProductType), search) {
			continue
		}
		if q.Category != "" && p.ProductType != q.Category {
			continue
		}
		result = append(result, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return myprice.Parse(result[i].FirstPrice()) < myprice.Parse(result[j].FirstPrice())
		})
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return myprice.Parse(result[i].FirstPrice()) > myprice.Parse(result[j].FirstPrice())
		})
	default:
		collator := collate.New(language.English)
		sort.SliceStable(result, func(i, j int) bool {
			return collator.CompareString(result[i].Title, result[j].Title) < 0
		})
	}

	return result
}
