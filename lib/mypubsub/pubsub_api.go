package mypubsub

import "context"

// PubSub carries serialized event envelopes between services. Subscribers are http push
// endpoints that receive a PushRequest per message.
//
//go:generate mockgen -source=pubsub_api.go -package mypubsub -destination pubsub_mock.go PubSub
type PubSub interface {
	Publish(c context.Context, topic string, data string) error
	CreateTopic(c context.Context, topic string) error
	Subscribe(c context.Context, topic string, pushEndpoint string) error
}

// New is set at init time: Cloud Pub/Sub on Google Cloud, an in-process fake elsewhere.
var New func(c context.Context) (PubSub, func(), error)
