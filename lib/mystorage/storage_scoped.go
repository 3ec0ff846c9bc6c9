package mystorage

import (
	"context"
	"fmt"

	"github.com/MarcGrol/partnerstorefront/lib/mystore"
)

type scopedStorage struct {
	store    mystore.Store[Item]
	scopeUID string
}

// NewScoped namespaces all keys under scopeUID, so that one shared store can hold the
// storage of many browsing contexts.
func NewScoped(store mystore.Store[Item], scopeUID string) Storage {
	return &scopedStorage{
		store:    store,
		scopeUID: scopeUID,
	}
}

func (s *scopedStorage) uid(key string) string {
	return fmt.Sprintf("%s/%s", s.scopeUID, key)
}

// RunInTransaction uses a transaction of the shared store, so concurrent requests of one
// browser serialise their updates.
func (s *scopedStorage) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return s.store.RunInTransaction(c, f)
}

func (s *scopedStorage) GetItem(c context.Context, key string) (string, bool, error) {
	item, found, err := s.store.Get(c, s.uid(key))
	if err != nil {
		return "", false, fmt.Errorf("error reading %s: %w", s.uid(key), err)
	}
	if !found {
		return "", false, nil
	}
	return item.Value, true, nil
}

func (s *scopedStorage) SetItem(c context.Context, key string, value string) error {
	err := s.store.Put(c, s.uid(key), Item{Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("error writing %s: %w", s.uid(key), err)
	}
	return nil
}

func (s *scopedStorage) RemoveItem(c context.Context, key string) error {
	err := s.store.Delete(c, s.uid(key))
	if err != nil {
		return fmt.Errorf("error removing %s: %w", s.uid(key), err)
	}
	return nil
}
