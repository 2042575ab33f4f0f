package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/internal/validators"
)

// maxWebhookBody caps what we read from Stripe before verifying the signature.
const maxWebhookBody = 64 << 10

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var request validators.PlaceOrderRequest
	if !bindJSON(c, &request) {
		return
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), userID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Order Placed", order)
}

func (h *OrderHandler) PlaceStripeOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var request validators.PlaceOrderRequest
	if !bindJSON(c, &request) {
		return
	}

	checkout, err := h.orderService.PlaceStripeOrder(c.Request.Context(), userID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Checkout session created", checkout)
}

func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var request validators.VerifyPaymentRequest
	if !bindJSON(c, &request) {
		return
	}

	paid, err := h.orderService.VerifyPayment(c.Request.Context(), userID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	message := "Payment failed"
	if paid {
		message = "Paid"
	}
	utils.SuccessResponse(c, message, gin.H{"paid": paid})
}

// StripeWebhook is called by Stripe directly, so it carries no user token.
func (h *OrderHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read body")
		return
	}

	if err := h.orderService.HandleStripeWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Webhook received", gin.H{"received": true})
}

func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	orders, err := h.orderService.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Orders retrieved successfully", orders)
}
