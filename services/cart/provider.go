package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/MarcGrol/partnerstorefront/lib/myerrors"
)

var ErrNoStore = errors.New("cart provider requires a store")

// Provider is the state one ui island works with: the cart as last read from the store plus
// the transient drawer flag. Providers share nothing but the store and its notifier.
type Provider struct {
	sync.Mutex
	store       *Store
	items       Cart
	isOpen      bool
	unsubscribe func()
}

// NewProvider fails when store is nil, which signals a wiring mistake.
func NewProvider(store *Store) (*Provider, error) {
	if store == nil {
		return nil, myerrors.NewInternalError(ErrNoStore)
	}
	return &Provider{
		store: store,
		items: Cart{},
	}, nil
}

// Mount hydrates from the store and follows later changes. Before Mount the cart reads empty.
func (p *Provider) Mount(c context.Context) {
	p.hydrate(c)

	notifier := p.store.Notifier()
	if notifier == nil {
		return
	}

	unsubscribe := notifier.Subscribe(func(cart Cart) {
		p.Lock()
		defer p.Unlock()
		p.items = cart.clone()
	})

	p.Lock()
	defer p.Unlock()
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
	p.unsubscribe = unsubscribe
}

func (p *Provider) Unmount() {
	p.Lock()
	defer p.Unlock()

	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

func (p *Provider) hydrate(c context.Context) {
	cart := p.store.GetCart(c)

	p.Lock()
	defer p.Unlock()
	p.items = cart
}

func (p *Provider) Items() Cart {
	p.Lock()
	defer p.Unlock()

	return p.items.clone()
}

func (p *Provider) Count() int {
	return p.Items().Count()
}

func (p *Provider) Total() float64 {
	return p.Items().Total()
}

func (p *Provider) CheckoutURL() string {
	return p.store.CheckoutURL(p.Items())
}

func (p *Provider) IsOpen() bool {
	p.Lock()
	defer p.Unlock()

	return p.isOpen
}

func (p *Provider) Open() {
	p.setOpen(true)
}

func (p *Provider) Close() {
	p.setOpen(false)
}

func (p *Provider) Toggle() {
	p.Lock()
	defer p.Unlock()

	p.isOpen = !p.isOpen
}

func (p *Provider) setOpen(open bool) {
	p.Lock()
	defer p.Unlock()

	p.isOpen = open
}

// AddToCart also opens the drawer, whether or not the write succeeded.
func (p *Provider) AddToCart(c context.Context, item Item, quantity int) error {
	err := p.store.AddToCart(c, item, quantity)
	p.hydrate(c)
	p.Open()
	return err
}

func (p *Provider) UpdateQuantity(c context.Context, variantID int64, quantity int) error {
	err := p.store.UpdateQuantity(c, variantID, quantity)
	p.hydrate(c)
	return err
}

func (p *Provider) RemoveFromCart(c context.Context, variantID int64) error {
	err := p.store.RemoveFromCart(c, variantID)
	p.hydrate(c)
	return err
}

func (p *Provider) ClearCart(c context.Context) error {
	err := p.store.ClearCart(c)
	p.hydrate(c)
	return err
}
