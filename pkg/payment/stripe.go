package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sony/gobreaker"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"rentit/pkg/breaker"
	"rentit/pkg/logger"
)

type StripeProvider struct {
	client        *client.API
	webhookSecret string
	cb            *gobreaker.CircuitBreaker
}

func NewStripeProvider(secretKey, webhookSecret string, log *logger.Logger) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeProvider{
		client:        sc,
		webhookSecret: webhookSecret,
		cb:            breaker.New("stripe", log),
	}
}

func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, request *CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(request.SuccessURL),
		CancelURL:  stripe.String(request.CancelURL),
		LineItems:  buildLineItems(request),
	}
	params.Context = ctx

	if request.Email != "" {
		params.CustomerEmail = stripe.String(request.Email)
	}

	params.AddMetadata("order_id", request.OrderID)
	for key, value := range request.Metadata {
		params.AddMetadata(key, value)
	}

	sess, err := breaker.Execute(s.cb, func() (*stripe.CheckoutSession, error) {
		return s.client.CheckoutSessions.New(params)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutSession{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}

func (s *StripeProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := breaker.Execute(s.cb, func() (*stripe.CheckoutSession, error) {
		return s.client.CheckoutSessions.Get(sessionID, params)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}

	return &CheckoutSession{
		SessionID:     sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
	}, nil
}

func buildLineItems(request *CheckoutRequest) []*stripe.CheckoutSessionLineItemParams {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(request.LineItems))
	for _, li := range request.LineItems {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(request.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(li.Name),
				},
				UnitAmount: stripe.Int64(ToCents(li.UnitPrice)),
			},
			Quantity: stripe.Int64(li.Quantity),
		})
	}
	return items
}

func (s *StripeProvider) ValidateWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify webhook signature: %w", err)
	}

	result := &WebhookEvent{
		EventID:   event.ID,
		EventType: string(event.Type),
		CreatedAt: event.Created,
	}

	if result.EventType == EventCheckoutSessionCompleted && event.Data != nil {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("failed to unmarshal checkout session: %w", err)
		}
		result.SessionID = sess.ID
		result.PaymentStatus = string(sess.PaymentStatus)
		result.Metadata = sess.Metadata
	}

	return result, nil
}
