package validators

import (
	"time"

	"rentit/internal/models"
	"rentit/internal/utils"
)

type CreateRentalRequestRequest struct {
	Title               string                  `json:"title" validate:"required,max=100"`
	Description         string                  `json:"description" validate:"required,max=1000"`
	Category            string                  `json:"category" validate:"max=50"`
	DesiredStart        time.Time               `json:"desired_start" validate:"required"`
	DesiredEnd          time.Time               `json:"desired_end" validate:"required"`
	MaxPrice            float64                 `json:"max_price"`
	RadiusKm            float64                 `json:"radius_km" validate:"gte=0,lte=500"`
	Location            *models.RequestLocation `json:"location"`
	SpecialRequirements string                  `json:"special_requirements" validate:"max=500"`
}

type CloseRentalRequestRequest struct {
	Status models.RentalRequestStatus `json:"status"`
}

func ValidateCreateRentalRequest(req *CreateRentalRequestRequest) error {
	req.Title = SanitizeInput(req.Title)
	req.Description = SanitizeInput(req.Description)

	if req.Title == "" || req.Description == "" || req.DesiredStart.IsZero() || req.DesiredEnd.IsZero() {
		return utils.NewBadRequestError("Missing required fields")
	}
	if !req.DesiredStart.Before(req.DesiredEnd) {
		return utils.NewBadRequestError("End date must be after start date")
	}
	if req.MaxPrice <= 0 {
		return utils.NewBadRequestError("Max price must be greater than 0")
	}
	if req.RadiusKm == 0 {
		req.RadiusKm = utils.DefaultRequestRadiusKM
	}
	if loc := req.Location; loc != nil && (loc.Lat != 0 || loc.Lon != 0) && !utils.IsValidCoordinates(loc.Lat, loc.Lon) {
		return utils.NewBadRequestError(ErrInvalidCoordinates.Error())
	}

	return ValidateStruct(req).AsAppError()
}

// ValidateCloseRentalRequest only accepts the terminal statuses.
func ValidateCloseRentalRequest(req *CloseRentalRequestRequest) error {
	if req.Status != models.RentalRequestClosed && req.Status != models.RentalRequestFulfilled {
		return utils.NewBadRequestError("Invalid status")
	}
	return nil
}
