package admin

import (
	"github.com/gin-gonic/gin"

	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/internal/validators"
)

// OrderHandler serves the back-office order screens.
type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(orders),
	}

	utils.SuccessResponseWithMeta(c, "Orders retrieved successfully", orders, meta)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var request validators.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Status Updated", order)
}
