package cart

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/MarcGrol/partnerstorefront/lib/myprice"
)

// View is what a provider exposes to presentation, both as json and to the templates.
type View struct {
	Items       Cart   `json:"items"`
	Count       int    `json:"count"`
	Total       string `json:"total"`
	CheckoutURL string `json:"checkoutUrl"`
	IsOpen      bool   `json:"isOpen"`
}

func NewView(p *Provider) View {
	items := p.Items()
	return View{
		Items:       items,
		Count:       items.Count(),
		Total:       myprice.FormatAmount(items.Total()),
		CheckoutURL: p.CheckoutURL(),
		IsOpen:      p.IsOpen(),
	}
}

type islandData struct {
	View
	ReturnTo string
}

type lineData struct {
	Item     LineItem
	Plus     int
	Minus    int
	ReturnTo string
}

func (d islandData) Lines() []lineData {
	lines := make([]lineData, 0, len(d.Items))
	for _, li := range d.Items {
		lines = append(lines, lineData{
			Item:     li,
			Plus:     li.Quantity + 1,
			Minus:    li.Quantity - 1,
			ReturnTo: d.ReturnTo,
		})
	}
	return lines
}

//go:embed templates
var templateFolder embed.FS
var templateFuncs = template.FuncMap{
	"price":  myprice.Format,
	"amount": myprice.FormatAmount,
}
var (
	islandTemplates  *template.Template
	cartPageTemplate *template.Template
)

func init() {
	islandTemplates = template.Must(template.New("islands").Funcs(templateFuncs).ParseFS(templateFolder, "templates/drawer.html", "templates/badge.html"))
	cartPageTemplate = template.Must(template.New("cart.html").Funcs(templateFuncs).ParseFS(templateFolder, "templates/cart.html", "templates/drawer.html", "templates/badge.html"))
}

// RenderDrawer renders the slide-out cart of p. Its forms come back to returnTo.
func RenderDrawer(p *Provider, returnTo string) (template.HTML, error) {
	return renderIsland("drawer", p, returnTo)
}

// RenderBadge renders the cart icon with the item count of p.
func RenderBadge(p *Provider) (template.HTML, error) {
	return renderIsland("badge", p, "")
}

func renderIsland(name string, p *Provider, returnTo string) (template.HTML, error) {
	buf := bytes.Buffer{}
	err := islandTemplates.ExecuteTemplate(&buf, name, islandData{
		View:     NewView(p),
		ReturnTo: returnTo,
	})
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
