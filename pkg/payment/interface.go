package payment

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no payment provider is set up.
var ErrNotConfigured = errors.New("payment provider not configured")

type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, request *CheckoutRequest) (*CheckoutSession, error)
	ValidateWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

type LineItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int64   `json:"quantity"`
}

type CheckoutRequest struct {
	OrderID    string            `json:"order_id"`
	Currency   string            `json:"currency"`
	LineItems  []LineItem        `json:"line_items"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Email      string            `json:"email"`
	Metadata   map[string]string `json:"metadata"`
}

type CheckoutSession struct {
	SessionID     string `json:"session_id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

// Paid reports whether Stripe has captured the payment for the session.
func (c *CheckoutSession) Paid() bool {
	return c != nil && c.PaymentStatus == PaymentStatusPaid
}

type WebhookEvent struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	SessionID     string            `json:"session_id,omitempty"`
	PaymentStatus string            `json:"payment_status,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     int64             `json:"created_at"`
}

const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	PaymentStatusPaid             = "paid"
)

// ToCents converts a currency amount to the smallest unit, rounding half up.
func ToCents(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
