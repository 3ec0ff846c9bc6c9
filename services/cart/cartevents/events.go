package cartevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MarcGrol/partnerstorefront/lib/myerrors"
	"github.com/MarcGrol/partnerstorefront/lib/myevents"
)

const (
	TopicName             = "cart"
	checkoutHandedOffName = TopicName + ".checkout.handedoff"
)

type CartEventService interface {
	OnCheckoutHandedOff(c context.Context, topic string, event CheckoutHandedOff) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CartEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case checkoutHandedOffName:
		{
			event := CheckoutHandedOff{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutHandedOff(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unsupported event %s", envelope.EventTypeName))
	}
}

type HandedOffLine struct {
	VariantID     int64
	ProductHandle string
	Quantity      int
	Price         string
}

// CheckoutHandedOff records that a browser left for the partner checkout with its cart.
type CheckoutHandedOff struct {
	BrowserUID  string
	LineItems   []HandedOffLine
	ItemCount   int
	Total       string
	CheckoutURL string
}

func (e CheckoutHandedOff) GetEventTypeName() string {
	return checkoutHandedOffName
}

func (e CheckoutHandedOff) GetAggregateName() string {
	return e.BrowserUID
}
