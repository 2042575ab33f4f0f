package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/internal/validators"
)

type RentalRequestHandler struct {
	requestService services.RentalRequestService
}

func NewRentalRequestHandler(requestService services.RentalRequestService) *RentalRequestHandler {
	return &RentalRequestHandler{
		requestService: requestService,
	}
}

func (h *RentalRequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var request validators.CreateRentalRequestRequest
	if !bindJSON(c, &request) {
		return
	}

	rental, err := h.requestService.CreateRequest(c.Request.Context(), userID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, "Request posted successfully", rental)
}

func (h *RentalRequestHandler) ListRequests(c *gin.Context) {
	requests, total, err := h.requestService.ListRequests(c.Request.Context(),
		c.Query("category"), c.Query("status"), c.Query("sortBy"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Requests retrieved successfully", gin.H{
		"requests": requests,
		"total":    total,
	})
}

func (h *RentalRequestHandler) GetMyRequests(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	requests, err := h.requestService.GetMyRequests(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Requests retrieved successfully", requests)
}

func (h *RentalRequestHandler) GetRequest(c *gin.Context) {
	id, ok := paramID(c, "id", "Invalid request ID")
	if !ok {
		return
	}

	rental, err := h.requestService.GetRequest(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Request retrieved successfully", rental)
}

func (h *RentalRequestHandler) CloseRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "Invalid request ID")
	if !ok {
		return
	}

	var request validators.CloseRentalRequestRequest
	if !bindJSON(c, &request) {
		return
	}

	rental, err := h.requestService.CloseRequest(c.Request.Context(), userID, id, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, fmt.Sprintf("Request %s successfully", rental.Status), rental)
}

func (h *RentalRequestHandler) DeleteRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "Invalid request ID")
	if !ok {
		return
	}

	if err := h.requestService.DeleteRequest(c.Request.Context(), userID, id); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Request deleted successfully", nil)
}
