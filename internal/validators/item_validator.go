package validators

import (
	"rentit/internal/models"
	"rentit/internal/utils"
)

type CreateItemRequest struct {
	Title       string           `json:"title" form:"title" validate:"required,max=100"`
	Description string           `json:"description" form:"description" validate:"max=2000"`
	Coordinates []float64        `json:"coordinates" validate:"omitempty,coordinates"`
	Address     string           `json:"address" form:"address" validate:"max=300"`
	Price       float64          `json:"price" form:"price"`
	PriceUnit   models.PriceUnit `json:"price_unit" form:"price_unit" validate:"omitempty,price_unit"`
	Images      []string         `json:"images" validate:"max=6"`
	Remarks     string           `json:"remarks" form:"remarks" validate:"max=1000"`
}

type UpdateItemRequest struct {
	Title       *string           `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string           `json:"description" validate:"omitempty,max=2000"`
	Coordinates []float64         `json:"coordinates" validate:"omitempty,coordinates"`
	Address     *string           `json:"address" validate:"omitempty,max=300"`
	Price       *float64          `json:"price"`
	PriceUnit   *models.PriceUnit `json:"price_unit" validate:"omitempty,price_unit"`
	Images      []string          `json:"images" validate:"omitempty,max=6"`
	Remarks     *string           `json:"remarks" validate:"omitempty,max=1000"`
	Available   *bool             `json:"available"`
}

func ValidateCreateItem(req *CreateItemRequest) error {
	req.Title = SanitizeInput(req.Title)
	if req.PriceUnit == "" {
		req.PriceUnit = models.PriceUnitHourly
	}
	if req.Price <= 0 {
		return utils.NewBadRequestError("Price must be greater than 0")
	}
	if len(req.Coordinates) == 0 && req.Address == "" {
		return utils.NewBadRequestError("Coordinates are required")
	}
	return ValidateStruct(req).AsAppError()
}

func ValidateUpdateItem(req *UpdateItemRequest) error {
	if req.Price != nil && *req.Price <= 0 {
		return utils.NewBadRequestError("Price must be greater than 0")
	}
	return ValidateStruct(req).AsAppError()
}
