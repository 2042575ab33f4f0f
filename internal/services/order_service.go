package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/internal/utils"
	"rentit/internal/validators"
	"rentit/pkg/breaker"
	"rentit/pkg/logger"
	"rentit/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID primitive.ObjectID, request *validators.PlaceOrderRequest) (*models.Order, error)
	PlaceStripeOrder(ctx context.Context, userID primitive.ObjectID, request *validators.PlaceOrderRequest) (*StripeCheckout, error)
	VerifyPayment(ctx context.Context, userID primitive.ObjectID, request *validators.VerifyPaymentRequest) (bool, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error
	GetUserOrders(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error)
	ListOrders(ctx context.Context, params *utils.PaginationParams) ([]*models.Order, int64, error)
	UpdateStatus(ctx context.Context, request *validators.UpdateOrderStatusRequest) (*models.Order, error)
}

type OrderConfig struct {
	TaxRate     float64
	ShippingFee float64
	Currency    string
	FrontendURL string
}

type StripeCheckout struct {
	OrderID    primitive.ObjectID `json:"order_id"`
	SessionURL string             `json:"session_url"`
}

const codeServiceUnavailable = "SERVICE_UNAVAILABLE"

type orderService struct {
	orderRepo     interfaces.OrderRepository
	itemRepo      interfaces.ItemRepository
	userRepo      interfaces.UserRepository
	checkout      payment.CheckoutProvider
	notifications NotificationService
	config        OrderConfig
	logger        *logger.Logger
}

// NewOrderService wires order placement. checkout may be nil when Stripe is
// not configured; card orders then fail with 503.
func NewOrderService(
	orderRepo interfaces.OrderRepository,
	itemRepo interfaces.ItemRepository,
	userRepo interfaces.UserRepository,
	checkout payment.CheckoutProvider,
	notifications NotificationService,
	config OrderConfig,
	logger *logger.Logger,
) OrderService {
	if config.Currency == "" {
		config.Currency = "usd"
	}

	return &orderService{
		orderRepo:     orderRepo,
		itemRepo:      itemRepo,
		userRepo:      userRepo,
		checkout:      checkout,
		notifications: notifications,
		config:        config,
		logger:        logger,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, request *validators.PlaceOrderRequest) (*models.Order, error) {
	order, err := s.buildOrder(ctx, userID, request, models.PaymentMethodCOD)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.WithError(err).WithUserID(userID).Error("Failed to create order")
		return nil, err
	}

	s.clearCart(ctx, userID)
	s.logger.LogPaymentEvent(order.ID, "order_placed_cod", order.Amount, s.config.Currency)

	return order, nil
}

func (s *orderService) PlaceStripeOrder(ctx context.Context, userID primitive.ObjectID, request *validators.PlaceOrderRequest) (*StripeCheckout, error) {
	if s.checkout == nil {
		return nil, utils.NewAppError(http.StatusServiceUnavailable, codeServiceUnavailable, payment.ErrNotConfigured.Error())
	}

	order, err := s.buildOrder(ctx, userID, request, models.PaymentMethodStripe)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.WithError(err).WithUserID(userID).Error("Failed to create order")
		return nil, err
	}

	session, err := s.checkout.CreateCheckoutSession(ctx, s.checkoutRequest(order))
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID.Hex()).Error("Failed to create checkout session")
		if delErr := s.orderRepo.Delete(ctx, order.ID); delErr != nil {
			s.logger.WithError(delErr).WithField("order_id", order.ID.Hex()).Error("Failed to remove unpaid order")
		}
		if errors.Is(err, breaker.ErrUnavailable) {
			return nil, utils.NewAppError(http.StatusServiceUnavailable, codeServiceUnavailable, "Payment provider temporarily unavailable")
		}
		return nil, utils.NewAppError(http.StatusBadGateway, utils.CodeInternal, utils.ErrPaymentFailed)
	}

	if err := s.orderRepo.Update(ctx, order.ID, map[string]interface{}{"stripe_session_id": session.SessionID}); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID.Hex()).Warn("Failed to store checkout session")
	}

	s.logger.LogPaymentEvent(order.ID, "checkout_session_created", order.Amount, s.config.Currency)

	return &StripeCheckout{OrderID: order.ID, SessionURL: session.URL}, nil
}

func (s *orderService) checkoutRequest(order *models.Order) *payment.CheckoutRequest {
	lines := make([]payment.LineItem, 0, len(order.Items)+2)
	for _, it := range order.Items {
		name := it.Title
		if it.Variant != "" {
			name = fmt.Sprintf("%s (%s)", it.Title, it.Variant)
		}
		lines = append(lines, payment.LineItem{Name: name, UnitPrice: it.Price, Quantity: int64(it.Quantity)})
	}
	if order.Tax > 0 {
		lines = append(lines, payment.LineItem{Name: "Tax", UnitPrice: order.Tax, Quantity: 1})
	}
	if order.Shipping > 0 {
		lines = append(lines, payment.LineItem{Name: "Shipping", UnitPrice: order.Shipping, Quantity: 1})
	}

	base := strings.TrimRight(s.config.FrontendURL, "/")
	orderID := order.ID.Hex()

	return &payment.CheckoutRequest{
		OrderID:    orderID,
		Currency:   s.config.Currency,
		LineItems:  lines,
		SuccessURL: fmt.Sprintf("%s/verify?success=true&orderId=%s", base, orderID),
		CancelURL:  fmt.Sprintf("%s/verify?success=false&orderId=%s", base, orderID),
		Email:      order.Address.Email,
	}
}

// buildOrder prices every line from the stored item, never from the client.
func (s *orderService) buildOrder(ctx context.Context, userID primitive.ObjectID, request *validators.PlaceOrderRequest, method models.PaymentMethod) (*models.Order, error) {
	if err := validators.ValidatePlaceOrder(request); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(request.Items))
	for i, line := range request.Items {
		ids[i], _ = primitive.ObjectIDFromHex(line.ItemID)
	}

	items, err := s.itemRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        userID,
		Items:         make([]models.OrderItem, 0, len(request.Items)),
		Address:       request.Address,
		PaymentMethod: method,
		Payment:       false,
		Status:        models.OrderStatusPending,
	}

	var subtotal float64
	for i, line := range request.Items {
		item, ok := items[ids[i]]
		if !ok {
			return nil, utils.NewNotFoundError(utils.ErrItemNotFound)
		}

		orderItem := models.OrderItem{
			ItemID:    item.ID,
			Title:     item.Title,
			Price:     item.Price,
			PriceUnit: item.PriceUnit,
			Variant:   line.Variant,
			Quantity:  line.Quantity,
		}
		if len(item.Images) > 0 {
			orderItem.Image = item.Images[0]
		}

		order.Items = append(order.Items, orderItem)
		subtotal += item.Price * float64(line.Quantity)
	}

	order.Subtotal = utils.RoundTo(subtotal, 2)
	order.Tax = utils.RoundTo(order.Subtotal*s.config.TaxRate, 2)
	order.Shipping = utils.RoundTo(s.config.ShippingFee, 2)
	order.Amount = utils.RoundTo(order.Subtotal+order.Tax+order.Shipping, 2)

	return order, nil
}

func (s *orderService) VerifyPayment(ctx context.Context, userID primitive.ObjectID, request *validators.VerifyPaymentRequest) (bool, error) {
	if err := validators.ValidateVerifyPayment(request); err != nil {
		return false, err
	}

	orderID, _ := primitive.ObjectIDFromHex(request.OrderID)
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return false, notFound(err, utils.ErrOrderNotFound)
	}
	if order.UserID != userID {
		return false, utils.NewForbiddenError(utils.ErrForbidden)
	}

	if !request.Success {
		if order.Payment {
			return true, nil
		}
		if err := s.orderRepo.Delete(ctx, orderID); err != nil {
			return false, notFound(err, utils.ErrOrderNotFound)
		}
		s.logger.LogPaymentEvent(orderID, "payment_cancelled", order.Amount, s.config.Currency)
		return false, nil
	}

	if order.Payment {
		return true, nil
	}

	// The redirect flag only says the customer came back from checkout.
	// Stripe has the final word on whether the session was paid.
	if order.PaymentMethod != models.PaymentMethodStripe || order.StripeSessionID == "" {
		return false, nil
	}
	if s.checkout == nil {
		return false, utils.NewAppError(http.StatusServiceUnavailable, codeServiceUnavailable, payment.ErrNotConfigured.Error())
	}

	session, err := s.checkout.GetCheckoutSession(ctx, order.StripeSessionID)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", orderID.Hex()).Error("Failed to look up checkout session")
		if errors.Is(err, breaker.ErrUnavailable) {
			return false, utils.NewAppError(http.StatusServiceUnavailable, codeServiceUnavailable, "Payment provider temporarily unavailable")
		}
		return false, utils.NewAppError(http.StatusBadGateway, utils.CodeInternal, utils.ErrPaymentFailed)
	}
	if !session.Paid() {
		s.logger.WithField("order_id", orderID.Hex()).WithField("payment_status", session.PaymentStatus).Warn("Verify requested for unpaid checkout session")
		return false, nil
	}

	if err := s.markPaid(ctx, order); err != nil {
		return false, err
	}
	return true, nil
}

func (s *orderService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.checkout == nil {
		return utils.NewAppError(http.StatusServiceUnavailable, codeServiceUnavailable, payment.ErrNotConfigured.Error())
	}

	event, err := s.checkout.ValidateWebhook(ctx, payload, signature)
	if err != nil {
		s.logger.LogSecurityEvent("stripe_webhook_rejected", "medium", map[string]interface{}{"error": err.Error()})
		return utils.NewBadRequestError("Invalid webhook signature")
	}

	if event.EventType != payment.EventCheckoutSessionCompleted {
		return nil
	}

	orderID, err := primitive.ObjectIDFromHex(event.Metadata["order_id"])
	if err != nil {
		s.logger.WithField("event_id", event.EventID).Warn("Checkout session without order reference")
		return nil
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			s.logger.WithField("order_id", orderID.Hex()).Warn("Webhook for unknown order")
			return nil
		}
		return err
	}

	return s.markPaid(ctx, order)
}

func (s *orderService) markPaid(ctx context.Context, order *models.Order) error {
	if order.Payment {
		return nil
	}

	if err := s.orderRepo.Update(ctx, order.ID, map[string]interface{}{"payment": true}); err != nil {
		return notFound(err, utils.ErrOrderNotFound)
	}
	order.Payment = true

	s.clearCart(ctx, order.UserID)
	s.logger.LogPaymentEvent(order.ID, "payment_completed", order.Amount, s.config.Currency)

	return nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	return s.orderRepo.GetByUser(ctx, userID)
}

func (s *orderService) ListOrders(ctx context.Context, params *utils.PaginationParams) ([]*models.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

func (s *orderService) UpdateStatus(ctx context.Context, request *validators.UpdateOrderStatusRequest) (*models.Order, error) {
	if err := validators.ValidateUpdateOrderStatus(request); err != nil {
		return nil, err
	}

	orderID, _ := primitive.ObjectIDFromHex(request.OrderID)
	if err := s.orderRepo.Update(ctx, orderID, map[string]interface{}{"status": request.Status}); err != nil {
		return nil, notFound(err, utils.ErrOrderNotFound)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, utils.ErrOrderNotFound)
	}

	s.notifications.Notify(ctx, order.UserID, models.NotificationOrderStatusChanged, map[string]interface{}{
		"order_id": order.ID.Hex(),
		"status":   order.Status,
	})

	return order, nil
}

func (s *orderService) clearCart(ctx context.Context, userID primitive.ObjectID) {
	if err := s.userRepo.SetCart(ctx, userID, models.CartData{}); err != nil {
		s.logger.WithError(err).WithUserID(userID).Warn("Failed to clear cart")
	}
}
