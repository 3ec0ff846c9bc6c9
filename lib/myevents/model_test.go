package myevents

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEventEnvelope(t *testing.T) {
	createdAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Valid push request", func(t *testing.T) {
		// given
		body, err := CreatePushRequest("cart", "browser-1", "cart.checkout.handedoff", map[string]int{"itemCount": 3}, createdAt)
		assert.NoError(t, err)

		// when
		envelope, err := ParseEventEnvelope(strings.NewReader(body))

		// then
		assert.NoError(t, err)
		assert.Equal(t, "cart", envelope.Topic)
		assert.Equal(t, "browser-1", envelope.AggregateUID)
		assert.Equal(t, "cart.checkout.handedoff", envelope.EventTypeName)
		assert.JSONEq(t, `{"itemCount":3}`, envelope.EventPayload)
		assert.True(t, createdAt.Equal(envelope.CreatedAt))
		assert.Equal(t, "cart.cart.checkout.handedoff.browser-1", envelope.String())
	})

	t.Run("Invalid push request", func(t *testing.T) {
		_, err := ParseEventEnvelope(strings.NewReader("{"))
		assert.Error(t, err)
	})

	t.Run("Invalid envelope", func(t *testing.T) {
		_, err := ParseEventEnvelope(strings.NewReader(`{"Message":{"Data":"bm90LWpzb24="}}`))
		assert.Error(t, err)
	})
}
