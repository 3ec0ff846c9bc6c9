package cart

import (
	"github.com/MarcGrol/partnerstorefront/lib/myprice"
)

// LineItem is one entry in the cart. Its json form is the persisted storage layout.
type LineItem struct {
	VariantID     int64  `json:"variantId"`
	ProductHandle string `json:"productHandle"`
	ProductTitle  string `json:"productTitle"`
	VariantTitle  string `json:"variantTitle"`
	Price         string `json:"price"`
	Image         string `json:"image,omitempty"`
	Quantity      int    `json:"quantity"`
}

// LineTotal is the parsed price times the quantity.
func (li LineItem) LineTotal() float64 {
	return myprice.Parse(li.Price) * float64(li.Quantity)
}

// Item is what an add-to-cart intent carries: a line item without a quantity.
type Item struct {
	VariantID     int64
	ProductHandle string
	ProductTitle  string
	VariantTitle  string
	Price         string
	Image         string
}

func (i Item) withQuantity(quantity int) LineItem {
	return LineItem{
		VariantID:     i.VariantID,
		ProductHandle: i.ProductHandle,
		ProductTitle:  i.ProductTitle,
		VariantTitle:  i.VariantTitle,
		Price:         i.Price,
		Image:         i.Image,
		Quantity:      quantity,
	}
}

// Cart is ordered by insertion and holds at most one line item per variant.
type Cart []LineItem

// Total sums price times quantity. A price without a numeric prefix makes the total NaN.
func (c Cart) Total() float64 {
	total := 0.0
	for _, li := range c {
		total += li.LineTotal()
	}
	return total
}

func (c Cart) Count() int {
	count := 0
	for _, li := range c {
		count += li.Quantity
	}
	return count
}

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

func (c Cart) indexOf(variantID int64) int {
	for i, li := range c {
		if li.VariantID == variantID {
			return i
		}
	}
	return -1
}

func (c Cart) clone() Cart {
	return append(Cart{}, c...)
}
