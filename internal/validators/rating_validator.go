package validators

import (
	"rentit/internal/models"
	"rentit/internal/utils"
)

type CreateRatingRequest struct {
	FromUserID string            `json:"from_user_id" validate:"omitempty,object_id"`
	ToUserID   string            `json:"to_user_id" validate:"required,object_id"`
	OrderID    string            `json:"order_id" validate:"required,object_id"`
	Rating     int               `json:"rating" validate:"rating_value"`
	Comment    string            `json:"comment" validate:"max=1000"`
	RatingType models.RatingType `json:"rating_type"`
}

type CheckRatingQuery struct {
	FromUserID string `form:"fromUserId" validate:"required,object_id"`
	ToUserID   string `form:"toUserId" validate:"required,object_id"`
	OrderID    string `form:"orderId" validate:"required,object_id"`
}

// ValidateCreateRating checks fields in the order clients expect errors.
func ValidateCreateRating(req *CreateRatingRequest) error {
	req.Comment = SanitizeInput(req.Comment)

	if req.ToUserID == "" || req.OrderID == "" || req.Rating == 0 || req.RatingType == "" {
		return utils.NewBadRequestError("Missing required fields")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return utils.NewBadRequestError("Rating must be between 1 and 5")
	}
	if !req.RatingType.IsValid() {
		return utils.NewBadRequestError("Invalid rating type")
	}
	return ValidateStruct(req).AsAppError()
}

func ValidateCheckRating(q *CheckRatingQuery) error {
	if q.FromUserID == "" || q.ToUserID == "" || q.OrderID == "" {
		return utils.NewBadRequestError("Missing required fields")
	}
	return ValidateStruct(q).AsAppError()
}
