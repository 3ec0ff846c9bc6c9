package mystorage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/partnerstorefront/lib/mystore"
)

func TestInMemoryStorage(t *testing.T) {
	StorageContract{
		storage: func(t *testing.T) Storage {
			return NewInMemory()
		},
	}.Test(t)
}

func TestScopedStorage(t *testing.T) {
	StorageContract{
		storage: func(t *testing.T) Storage {
			kv, cleanup, err := mystore.NewInMemoryStore[Item](t.Context())
			assert.NoError(t, err)
			t.Cleanup(cleanup)
			return NewScoped(kv, "browser-1")
		},
	}.Test(t)
}

// StorageContract is the behaviour every Storage implementation shares.
type StorageContract struct {
	storage func(t *testing.T) Storage
}

func (sc StorageContract) Test(t *testing.T) {
	t.Run("missing key is not found", func(t *testing.T) {
		sut := sc.storage(t)

		_, found, err := sut.GetItem(t.Context(), "cart")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("can set, replace and remove a key", func(t *testing.T) {
		var (
			sut = sc.storage(t)
			c   = t.Context()
		)

		err := sut.SetItem(c, "cart", `[{"variantId":1}]`)
		assert.NoError(t, err)

		value, found, err := sut.GetItem(c, "cart")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"variantId":1}]`, value)

		err = sut.SetItem(c, "cart", `[]`)
		assert.NoError(t, err)
		value, _, _ = sut.GetItem(c, "cart")
		assert.Equal(t, `[]`, value)

		err = sut.RemoveItem(c, "cart")
		assert.NoError(t, err)
		_, found, err = sut.GetItem(c, "cart")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("removing a missing key is fine", func(t *testing.T) {
		sut := sc.storage(t)

		assert.NoError(t, sut.RemoveItem(t.Context(), "unknown"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		var (
			sut = sc.storage(t)
			c   = t.Context()
		)

		assert.NoError(t, sut.SetItem(c, "cart", "a"))
		assert.NoError(t, sut.SetItem(c, "wishlist", "b"))
		assert.NoError(t, sut.RemoveItem(c, "cart"))

		value, found, err := sut.GetItem(c, "wishlist")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "b", value)
	})

	t.Run("failing transaction discards its writes", func(t *testing.T) {
		var (
			sut = sc.storage(t)
			c   = t.Context()
		)

		assert.NoError(t, sut.SetItem(c, "cart", "before"))

		err := sut.RunInTransaction(c, func(c context.Context) error {
			err := sut.SetItem(c, "cart", "during")
			if err != nil {
				return err
			}
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)

		value, _, err := sut.GetItem(c, "cart")
		assert.NoError(t, err)
		assert.Equal(t, "before", value)
	})

	t.Run("concurrent transactions do not lose updates", func(t *testing.T) {
		var (
			sut = sc.storage(t)
			c   = t.Context()
		)

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := sut.RunInTransaction(c, func(c context.Context) error {
					value, _, err := sut.GetItem(c, "counter")
					if err != nil {
						return err
					}
					time.Sleep(time.Millisecond)
					return sut.SetItem(c, "counter", value+"x")
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		value, _, err := sut.GetItem(c, "counter")
		assert.NoError(t, err)
		assert.Len(t, value, 50)
	})
}

func TestScopesAreIsolated(t *testing.T) {
	c := context.TODO()
	kv, _, _ := mystore.NewInMemoryStore[Item](c)

	first := NewScoped(kv, "browser-1")
	second := NewScoped(kv, "browser-2")

	assert.NoError(t, first.SetItem(c, "cart", "first"))

	_, found, err := second.GetItem(c, "cart")
	assert.NoError(t, err)
	assert.False(t, found)

	item, found, err := kv.Get(c, "browser-1/cart")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Item{Key: "cart", Value: "first"}, item)
}

func TestUnavailable(t *testing.T) {
	c := context.TODO()
	sut := Unavailable()

	_, found, err := sut.GetItem(c, "cart")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, found)
	assert.ErrorIs(t, sut.SetItem(c, "cart", "[]"), ErrUnavailable)
	assert.ErrorIs(t, sut.RemoveItem(c, "cart"), ErrUnavailable)
}
