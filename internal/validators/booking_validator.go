package validators

import (
	"time"

	"rentit/internal/utils"
)

type CreateBookingRequest struct {
	ItemID          string    `json:"item_id" validate:"required,object_id"`
	Start           time.Time `json:"start" validate:"required"`
	End             time.Time `json:"end" validate:"required"`
	ProposedPrice   *float64  `json:"proposed_price" validate:"omitempty,gte=0"`
	Message         string    `json:"message" validate:"max=1000"`
	RentalRequestID string    `json:"rental_request_id" validate:"omitempty,object_id"`
}

func ValidateCreateBooking(req *CreateBookingRequest) error {
	req.Message = SanitizeInput(req.Message)

	if req.ItemID == "" || req.Start.IsZero() || req.End.IsZero() {
		return utils.NewBadRequestError("Missing required fields")
	}
	if !req.Start.Before(req.End) {
		return utils.NewBadRequestError("End date must be after start date")
	}
	return ValidateStruct(req).AsAppError()
}
