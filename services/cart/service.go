package cart

import (
	"context"
	"fmt"

	"github.com/MarcGrol/partnerstorefront/lib/mylog"
	"github.com/MarcGrol/partnerstorefront/lib/myprice"
	"github.com/MarcGrol/partnerstorefront/lib/mypublisher"
	"github.com/MarcGrol/partnerstorefront/lib/mypubsub"
	"github.com/MarcGrol/partnerstorefront/services/cart/cartevents"
)

type service struct {
	publisher mypublisher.Publisher
	pubsub    mypubsub.PubSub
	baseURL   string
	logger    mylog.Logger
}

func newService(pub mypublisher.Publisher, pubsub mypubsub.PubSub, baseURL string, logger mylog.Logger) *service {
	return &service{
		publisher: pub,
		pubsub:    pubsub,
		baseURL:   baseURL,
		logger:    logger,
	}
}

func (s *service) Subscribe(c context.Context) error {
	err := s.publisher.CreateTopic(c, cartevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %w", cartevents.TopicName, err)
	}

	err = s.pubsub.Subscribe(c, cartevents.TopicName, s.baseURL+"/api/cart/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %w", cartevents.TopicName, err)
	}

	return nil
}

// handOff records that a browser leaves for the partner checkout with cart.
func (s *service) handOff(c context.Context, browserUID string, cart Cart, checkoutURL string) error {
	lines := make([]cartevents.HandedOffLine, 0, len(cart))
	for _, li := range cart {
		lines = append(lines, cartevents.HandedOffLine{
			VariantID:     li.VariantID,
			ProductHandle: li.ProductHandle,
			Quantity:      li.Quantity,
			Price:         li.Price,
		})
	}

	return s.publisher.Publish(c, cartevents.TopicName, cartevents.CheckoutHandedOff{
		BrowserUID:  browserUID,
		LineItems:   lines,
		ItemCount:   cart.Count(),
		Total:       myprice.FormatAmount(cart.Total()),
		CheckoutURL: checkoutURL,
	})
}

func (s *service) OnCheckoutHandedOff(c context.Context, topic string, event cartevents.CheckoutHandedOff) error {
	s.logger.Log(c, event.BrowserUID, mylog.SeverityInfo, "Checkout handed off on topic %s: %d items, total %s", topic, event.ItemCount, event.Total)
	return nil
}
