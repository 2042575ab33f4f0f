package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"

	"rentit/pkg/logger"
)

const testWebhookSecret = "whsec_test"

func TestValidateWebhookCheckoutCompleted(t *testing.T) {
	provider := NewStripeProvider("sk_test_x", testWebhookSecret, logger.NewNop())

	payload := []byte(`{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"created": 1700000000,
		"data": {"object": {
			"id": "cs_test_1",
			"object": "checkout.session",
			"payment_status": "paid",
			"metadata": {"order_id": "64b7f0c2a1b2c3d4e5f60718"}
		}}
	}`)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: payload,
		Secret:  testWebhookSecret,
	})

	event, err := provider.ValidateWebhook(context.Background(), signed.Payload, signed.Header)
	require.NoError(t, err)
	require.Equal(t, EventCheckoutSessionCompleted, event.EventType)
	require.Equal(t, "cs_test_1", event.SessionID)
	require.Equal(t, "paid", event.PaymentStatus)
	require.Equal(t, "64b7f0c2a1b2c3d4e5f60718", event.Metadata["order_id"])
}

func TestValidateWebhookRejectsBadSignature(t *testing.T) {
	provider := NewStripeProvider("sk_test_x", testWebhookSecret, logger.NewNop())

	_, err := provider.ValidateWebhook(context.Background(), []byte(`{"id":"evt"}`), "t=1,v1=deadbeef")
	require.Error(t, err)
}

func TestBuildLineItemsInCents(t *testing.T) {
	items := buildLineItems(&CheckoutRequest{
		Currency: "usd",
		LineItems: []LineItem{
			{Name: "Drill", UnitPrice: 19.99, Quantity: 2},
			{Name: "Shipping", UnitPrice: 5, Quantity: 1},
		},
	})

	require.Len(t, items, 2)
	require.EqualValues(t, 1999, *items[0].PriceData.UnitAmount)
	require.EqualValues(t, 2, *items[0].Quantity)
	require.EqualValues(t, 500, *items[1].PriceData.UnitAmount)
	require.Equal(t, "usd", *items[1].PriceData.Currency)
}

func TestToCents(t *testing.T) {
	require.EqualValues(t, 1010, ToCents(10.1))
	require.EqualValues(t, 0, ToCents(0))
}

func TestCheckoutSessionPaid(t *testing.T) {
	require.True(t, (&CheckoutSession{PaymentStatus: "paid"}).Paid())
	require.False(t, (&CheckoutSession{PaymentStatus: "unpaid"}).Paid())
	require.False(t, (&CheckoutSession{PaymentStatus: "no_payment_required"}).Paid())
	require.False(t, (*CheckoutSession)(nil).Paid())
}
