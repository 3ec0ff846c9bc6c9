// Package mystorage provides the durable key/value storage a browsing context keeps its
// client-side state in. Every write replaces the whole value stored under a key.
package mystorage

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("storage unavailable")

type Storage interface {
	GetItem(c context.Context, key string) (string, bool, error)
	SetItem(c context.Context, key string, value string) error
	RemoveItem(c context.Context, key string) error
	// RunInTransaction runs f so that no other writer interleaves with the reads and writes it
	// does through c. When f fails its writes are discarded. Calls nest.
	RunInTransaction(c context.Context, f func(c context.Context) error) error
}

// Item is the persisted form of a single key.
type Item struct {
	Key   string
	Value string `datastore:",noindex"`
}
