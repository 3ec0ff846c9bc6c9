package mystorage

import (
	"context"
	"maps"
	"sync"
)

type inMemoryStorage struct {
	sync.Mutex
	items map[string]string
}

type inMemoryTxKey struct {
	storage *inMemoryStorage
}

func NewInMemory() Storage {
	return &inMemoryStorage{
		items: map[string]string{},
	}
}

func (s *inMemoryStorage) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if s.inTransaction(c) {
		return f(c)
	}

	s.Lock()
	defer s.Unlock()

	snapshot := maps.Clone(s.items)
	err := f(context.WithValue(c, inMemoryTxKey{storage: s}, true))
	if err != nil {
		s.items = snapshot
		return err
	}
	return nil
}

func (s *inMemoryStorage) inTransaction(c context.Context) bool {
	return c.Value(inMemoryTxKey{storage: s}) != nil
}

func (s *inMemoryStorage) lock(c context.Context) func() {
	if s.inTransaction(c) {
		return func() {}
	}
	s.Lock()
	return s.Unlock
}

func (s *inMemoryStorage) GetItem(c context.Context, key string) (string, bool, error) {
	unlock := s.lock(c)
	defer unlock()

	value, found := s.items[key]
	return value, found, nil
}

func (s *inMemoryStorage) SetItem(c context.Context, key string, value string) error {
	unlock := s.lock(c)
	defer unlock()

	s.items[key] = value
	return nil
}

func (s *inMemoryStorage) RemoveItem(c context.Context, key string) error {
	unlock := s.lock(c)
	defer unlock()

	delete(s.items, key)
	return nil
}

type unavailableStorage struct{}

// Unavailable models an execution context without persistent storage.
func Unavailable() Storage {
	return unavailableStorage{}
}

func (unavailableStorage) GetItem(c context.Context, key string) (string, bool, error) {
	return "", false, ErrUnavailable
}

func (unavailableStorage) SetItem(c context.Context, key string, value string) error {
	return ErrUnavailable
}

func (unavailableStorage) RemoveItem(c context.Context, key string) error {
	return ErrUnavailable
}

// RunInTransaction still runs f; its reads and writes fail on their own.
func (unavailableStorage) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return f(c)
}
