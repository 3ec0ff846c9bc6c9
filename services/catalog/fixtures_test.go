package catalog

var (
	gloves = Product{
		ID:          "nitrile-gloves",
		Handle:      "nitrile-gloves",
		Title:       "Nitrile Gloves",
		Description: "<p>Powder-free <strong>nitrile</strong> gloves &amp; more.</p>",
		ProductType: "Gloves",
		Vendor:      "SafeHands",
		Tags:        []string{"ppe", "hands"},
		Images:      []Image{{Src: "https://cdn.example.com/gloves.jpg", Alt: "Nitrile Gloves"}},
		Variants: []Variant{
			{ID: 111, Title: "Large", Price: "10.00", Available: true, SKU: "NG-L"},
			{ID: 112, Title: "Small", Price: "10.00", Available: false, SKU: "NG-S"},
		},
	}
	vest = Product{
		ID:          "hi-vis-vest",
		Handle:      "hi-vis-vest",
		Title:       "Hi-Vis Vest",
		ProductType: "Apparel",
		Vendor:      "BrightWear",
		Tags:        []string{},
		Images:      []Image{},
		Variants:    []Variant{{ID: 222, Title: "Default Title", Price: "5.50", Available: true}},
	}
	helmet = Product{
		ID:          "hard-hat",
		Handle:      "hard-hat",
		Title:       "hard hat",
		ProductType: "Head Protection",
		Vendor:      "TopSafe",
		Tags:        []string{},
		Images:      []Image{{Src: "https://cdn.example.com/hat.jpg", Alt: "hard hat"}},
		Variants:    []Variant{{ID: 333, Title: "Default Title", Price: "24.95", Available: false}},
	}
	earplugs = Product{
		ID:          "ear-plugs",
		Handle:      "ear-plugs",
		Title:       "Ear Plugs",
		ProductType: "",
		Tags:        []string{},
		Images:      []Image{},
		Variants:    []Variant{},
	}
)
