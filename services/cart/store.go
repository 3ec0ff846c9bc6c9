package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/partnerstorefront/lib/myerrors"
	"github.com/MarcGrol/partnerstorefront/lib/mylog"
	"github.com/MarcGrol/partnerstorefront/lib/mynotifier"
	"github.com/MarcGrol/partnerstorefront/lib/mystorage"
)

// Store owns the cart's read and write semantics on top of durable storage. Every mutation
// writes the complete cart back and then notifies subscribers with the new snapshot.
type Store struct {
	storage    mystorage.Storage
	storageKey string
	notifier   *mynotifier.Notifier[Cart]
	linker     CheckoutLinker
	logger     mylog.Logger
	traceLabel string
}

// NewStore creates a store. A nil storage models a context without durable storage:
// reads return an empty cart and writes are dropped.
func NewStore(storage mystorage.Storage, storageKey string, notifier *mynotifier.Notifier[Cart], linker CheckoutLinker, logger mylog.Logger) *Store {
	return &Store{
		storage:    storage,
		storageKey: storageKey,
		notifier:   notifier,
		linker:     linker,
		logger:     logger,
	}
}

// WithTraceLabel returns a copy that tags its log lines with label.
func (s *Store) WithTraceLabel(label string) *Store {
	clone := *s
	clone.traceLabel = label
	return &clone
}

func (s *Store) Notifier() *mynotifier.Notifier[Cart] {
	return s.notifier
}

// GetCart never fails: absent, unavailable or malformed storage reads as an empty cart.
func (s *Store) GetCart(c context.Context) Cart {
	if s.storage == nil {
		return Cart{}
	}

	value, found, err := s.storage.GetItem(c, s.storageKey)
	if err != nil {
		s.logger.Log(c, s.traceLabel, mylog.SeverityWarn, "Cart storage unavailable, using empty cart: %s", err)
		return Cart{}
	}
	if !found || value == "" {
		return Cart{}
	}

	cart := Cart{}
	err = json.Unmarshal([]byte(value), &cart)
	if err != nil {
		s.logger.Log(c, s.traceLabel, mylog.SeverityWarn, "Malformed cart in storage, using empty cart: %s", err)
		return Cart{}
	}
	if cart == nil {
		return Cart{}
	}

	return cart
}

// SaveCart writes cart and then notifies subscribers. When the write fails nobody is notified.
func (s *Store) SaveCart(c context.Context, cart Cart) error {
	if cart == nil {
		cart = Cart{}
	}

	if s.storage != nil {
		err := s.write(c, cart)
		if err != nil {
			return myerrors.NewUnavailableError(fmt.Errorf("error storing cart: %w", err))
		}
	}

	s.notify(cart)

	return nil
}

func (s *Store) write(c context.Context, cart Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("error encoding cart: %w", err)
	}
	return s.storage.SetItem(c, s.storageKey, string(data))
}

func (s *Store) notify(cart Cart) {
	if s.notifier != nil {
		s.notifier.Publish(cart.clone())
	}
}

// update runs a read-modify-write of the cart in one storage transaction, so concurrent
// requests of the same browser cannot overwrite each other. change reports false when there
// is nothing to write. Subscribers are notified after the commit.
func (s *Store) update(c context.Context, change func(cart Cart) (Cart, bool)) error {
	if s.storage == nil {
		cart, changed := change(Cart{})
		if changed {
			s.notify(cart)
		}
		return nil
	}

	var result Cart
	var changed bool
	err := s.storage.RunInTransaction(c, func(c context.Context) error {
		result, changed = change(s.GetCart(c))
		if !changed {
			return nil
		}
		return s.write(c, result)
	})
	if err != nil {
		return myerrors.NewUnavailableError(fmt.Errorf("error storing cart: %w", err))
	}

	if changed {
		s.notify(result)
	}
	return nil
}

// AddToCart adds quantity to the line of the item's variant, appending a new line when the
// variant is not in the cart yet.
func (s *Store) AddToCart(c context.Context, item Item, quantity int) error {
	s.logger.Log(c, s.traceLabel, mylog.SeverityInfo, "Add %d x variant %d", quantity, item.VariantID)

	return s.update(c, func(cart Cart) (Cart, bool) {
		idx := cart.indexOf(item.VariantID)
		if idx >= 0 {
			cart[idx].Quantity += quantity
		} else {
			cart = append(cart, item.withQuantity(quantity))
			idx = len(cart) - 1
		}

		// a non-positive resulting quantity is never stored
		if cart[idx].Quantity <= 0 {
			cart = append(cart[:idx], cart[idx+1:]...)
		}
		return cart, true
	})
}

// UpdateQuantity sets the quantity of a variant. Zero or less removes the line.
// An unknown variant is left alone: nothing is written and nobody is notified.
func (s *Store) UpdateQuantity(c context.Context, variantID int64, quantity int) error {
	s.logger.Log(c, s.traceLabel, mylog.SeverityInfo, "Set variant %d to quantity %d", variantID, quantity)

	return s.update(c, func(cart Cart) (Cart, bool) {
		idx := cart.indexOf(variantID)
		if idx < 0 {
			return cart, false
		}

		if quantity <= 0 {
			cart = append(cart[:idx], cart[idx+1:]...)
		} else {
			cart[idx].Quantity = quantity
		}
		return cart, true
	})
}

// RemoveFromCart always writes and notifies, also when the variant was not in the cart.
func (s *Store) RemoveFromCart(c context.Context, variantID int64) error {
	s.logger.Log(c, s.traceLabel, mylog.SeverityInfo, "Remove variant %d", variantID)

	return s.update(c, func(cart Cart) (Cart, bool) {
		if idx := cart.indexOf(variantID); idx >= 0 {
			cart = append(cart[:idx], cart[idx+1:]...)
		}
		return cart, true
	})
}

func (s *Store) ClearCart(c context.Context) error {
	s.logger.Log(c, s.traceLabel, mylog.SeverityInfo, "Clear cart")

	return s.SaveCart(c, Cart{})
}

// CheckoutURL returns the partner checkout handoff for cart, or "#" for an empty cart.
func (s *Store) CheckoutURL(cart Cart) string {
	return s.linker.CheckoutURL(cart)
}
