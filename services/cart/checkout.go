package cart

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MarcGrol/partnerstorefront/lib/myconfig"
	"github.com/MarcGrol/partnerstorefront/lib/mytime"
)

// EmptyCheckoutURL is handed out for an empty cart so the checkout affordance stays inert.
const EmptyCheckoutURL = "#"

// CheckoutLinker builds the urls that hand a visitor off to the partner's hosted shop.
type CheckoutLinker struct {
	domain   string
	referral myconfig.Referral
	nower    mytime.Nower
}

func NewCheckoutLinker(cfg myconfig.Config, nower mytime.Nower) CheckoutLinker {
	return CheckoutLinker{
		domain:   cfg.CommerceDomain,
		referral: cfg.Referral,
		nower:    nower,
	}
}

// CheckoutURL encodes the cart as https://<domain>/cart/<id>:<qty>,...?<attribution>.
// The query parameters are emitted in a fixed order the partner side depends on.
func (l CheckoutLinker) CheckoutURL(cart Cart) string {
	if cart.IsEmpty() {
		return EmptyCheckoutURL
	}

	lines := make([]string, 0, len(cart))
	for _, li := range cart {
		lines = append(lines, fmt.Sprintf("%d:%d", li.VariantID, li.Quantity))
	}

	params := []struct {
		key   string
		value string
	}{
		{"attributes[_referral-partner]", l.referral.Partner},
		{"attributes[_referral-source]", l.referral.Source},
		{"attributes[_referral-timestamp]", strconv.FormatInt(l.nower.Now().UnixMilli(), 10)},
		{"utm_source", l.referral.Partner},
		{"utm_medium", l.referral.Medium},
		{"utm_campaign", l.referral.Campaign},
	}

	query := make([]string, 0, len(params))
	for _, p := range params {
		query = append(query, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}

	return fmt.Sprintf("https://%s/cart/%s?%s", l.domain, strings.Join(lines, ","), strings.Join(query, "&"))
}

func (l CheckoutLinker) ProductURL(handle string) string {
	return fmt.Sprintf("https://%s/products/%s", l.domain, handle)
}
