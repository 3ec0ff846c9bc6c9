package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func handles(products []Product) []string {
	result := []string{}
	for _, p := range products {
		result = append(result, p.Handle)
	}
	return result
}

func TestFilter(t *testing.T) {
	all := []Product{vest, gloves, helmet, earplugs}

	testCases := []struct {
		name     string
		query    Query
		expected []string
	}{
		{
			name:     "title order is case insensitive",
			query:    Query{Sort: SortTitle},
			expected: []string{"ear-plugs", "hard-hat", "hi-vis-vest", "nitrile-gloves"},
		},
		{
			name:     "search on title",
			query:    Query{Search: "GLOVE", Sort: SortTitle},
			expected: []string{"nitrile-gloves"},
		},
		{
			name:     "search on product type",
			query:    Query{Search: "protection", Sort: SortTitle},
			expected: []string{"hard-hat"},
		},
		{
			name:     "category is exact",
			query:    Query{Category: "Apparel", Sort: SortTitle},
			expected: []string{"hi-vis-vest"},
		},
		{
			name:     "category is case sensitive",
			query:    Query{Category: "apparel", Sort: SortTitle},
			expected: []string{},
		},
		{
			name:     "price ascending treats missing price as zero",
			query:    Query{Sort: SortPriceAsc},
			expected: []string{"ear-plugs", "hi-vis-vest", "nitrile-gloves", "hard-hat"},
		},
		{
			name:     "price descending",
			query:    Query{Sort: SortPriceDesc},
			expected: []string{"hard-hat", "nitrile-gloves", "hi-vis-vest", "ear-plugs"},
		},
		{
			name:     "search and category combined",
			query:    Query{Search: "nitrile", Category: "Gloves", Sort: SortTitle},
			expected: []string{"nitrile-gloves"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, handles(Filter(all, tc.query)))
		})
	}

	t.Run("input is left alone", func(t *testing.T) {
		Filter(all, Query{Sort: SortPriceDesc})
		assert.Equal(t, []string{"hi-vis-vest", "nitrile-gloves", "hard-hat", "ear-plugs"}, handles(all))
	})
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortTitle, ParseSortOrder(""))
	assert.Equal(t, SortTitle, ParseSortOrder("bogus"))
	assert.Equal(t, SortPriceAsc, ParseSortOrder("price-asc"))
	assert.Equal(t, SortPriceDesc, ParseSortOrder("price-desc"))
}

func TestQueryIsFiltered(t *testing.T) {
	assert.False(t, Query{}.IsFiltered())
	assert.False(t, Query{Sort: SortPriceDesc}.IsFiltered())
	assert.True(t, Query{Search: "nitrile"}.IsFiltered())
	assert.True(t, Query{Category: "Gloves"}.IsFiltered())
}
