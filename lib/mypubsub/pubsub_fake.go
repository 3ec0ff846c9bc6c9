package mypubsub

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// FakePubSub remembers topics, subscriptions and published messages in memory.
type FakePubSub struct {
	sync.Mutex
	subscriptions map[string][]string
	published     map[string][]string
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newFakePubSub
	}
}

func newFakePubSub(c context.Context) (PubSub, func(), error) {
	return NewFake(), func() {}, nil
}

func NewFake() *FakePubSub {
	return &FakePubSub{
		subscriptions: map[string][]string{},
		published:     map[string][]string{},
	}
}

func (ps *FakePubSub) Subscribe(c context.Context, topic string, pushEndpoint string) error {
	ps.Lock()
	defer ps.Unlock()

	if _, found := ps.subscriptions[topic]; !found {
		return fmt.Errorf("error subscribing to unknown topic %s", topic)
	}
	ps.subscriptions[topic] = append(ps.subscriptions[topic], pushEndpoint)
	return nil
}

func (ps *FakePubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	if _, found := ps.subscriptions[topic]; !found {
		ps.subscriptions[topic] = []string{}
	}
	return nil
}

func (ps *FakePubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.published[topic] = append(ps.published[topic], data)
	return nil
}

func (ps *FakePubSub) Published(topic string) []string {
	ps.Lock()
	defer ps.Unlock()

	return append([]string{}, ps.published[topic]...)
}
