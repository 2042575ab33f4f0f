package handlers

import (
	"github.com/gin-gonic/gin"

	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/internal/validators"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

func (h *RatingHandler) CreateRating(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var request validators.CreateRatingRequest
	if !bindJSON(c, &request) {
		return
	}

	rating, err := h.ratingService.CreateRating(c.Request.Context(), userID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rating submitted successfully", rating)
}

func (h *RatingHandler) GetUserRatings(c *gin.Context) {
	userID, ok := paramID(c, "userId", "Invalid user ID")
	if !ok {
		return
	}

	ratings, err := h.ratingService.GetUserRatings(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ratings retrieved successfully", ratings)
}

func (h *RatingHandler) GetGivenRatings(c *gin.Context) {
	userID, ok := paramID(c, "userId", "Invalid user ID")
	if !ok {
		return
	}

	ratings, err := h.ratingService.GetGivenRatings(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ratings retrieved successfully", ratings)
}

func (h *RatingHandler) CheckRating(c *gin.Context) {
	var query validators.CheckRatingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query")
		return
	}

	rating, err := h.ratingService.CheckRating(c.Request.Context(), &query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rating found", rating)
}

func (h *RatingHandler) GetRatingSummary(c *gin.Context) {
	userID, ok := paramID(c, "userId", "Invalid user ID")
	if !ok {
		return
	}

	summary, err := h.ratingService.GetRatingSummary(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rating summary retrieved successfully", summary)
}
