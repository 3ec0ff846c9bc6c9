// Package mynotifier is an in-process broadcast channel: publishers hand a value to every
// current subscriber, synchronously and in subscription order. Nothing is replayed to
// subscribers that register after a publish.
package mynotifier

import "sync"

type subscription[T any] struct {
	id      int
	handler func(T)
}

type Notifier[T any] struct {
	sync.Mutex
	nextID        int
	subscriptions []subscription[T]
}

func New[T any]() *Notifier[T] {
	return &Notifier[T]{}
}

// Subscribe registers handler and returns the function that removes it again.
// Calling the returned function more than once is harmless.
func (n *Notifier[T]) Subscribe(handler func(T)) func() {
	n.Lock()
	defer n.Unlock()

	n.nextID++
	id := n.nextID
	n.subscriptions = append(n.subscriptions, subscription[T]{id: id, handler: handler})

	return func() {
		n.unsubscribe(id)
	}
}

func (n *Notifier[T]) unsubscribe(id int) {
	n.Lock()
	defer n.Unlock()

	for i, s := range n.subscriptions {
		if s.id == id {
			n.subscriptions = append(n.subscriptions[:i:i], n.subscriptions[i+1:]...)
			return
		}
	}
}

// Publish delivers value to the subscribers registered at the moment of the call.
// Handlers run outside the lock so they may (un)subscribe themselves.
func (n *Notifier[T]) Publish(value T) {
	n.Lock()
	current := make([]subscription[T], len(n.subscriptions))
	copy(current, n.subscriptions)
	n.Unlock()

	for _, s := range current {
		s.handler(value)
	}
}

func (n *Notifier[T]) SubscriberCount() int {
	n.Lock()
	defer n.Unlock()

	return len(n.subscriptions)
}
