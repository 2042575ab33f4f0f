package handlers

import (
	"github.com/gin-gonic/gin"

	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/internal/validators"
)

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var request validators.CartAddRequest
	if !bindJSON(c, &request) {
		return
	}

	cart, err := h.cartService.AddToCart(c.Request.Context(), userID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Added To Cart", gin.H{"cart_data": cart})
}

func (h *CartHandler) UpdateCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var request validators.CartUpdateRequest
	if !bindJSON(c, &request) {
		return
	}

	cart, err := h.cartService.UpdateCart(c.Request.Context(), userID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Cart Updated", gin.H{"cart_data": cart})
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Cart retrieved successfully", gin.H{"cart_data": cart})
}
