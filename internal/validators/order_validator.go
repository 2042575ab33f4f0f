package validators

import (
	"rentit/internal/models"
	"rentit/internal/utils"
)

type CartAddRequest struct {
	ItemID  string `json:"item_id" validate:"required,object_id"`
	Variant string `json:"variant" validate:"max=50"`
}

type CartUpdateRequest struct {
	ItemID   string `json:"item_id" validate:"required,object_id"`
	Variant  string `json:"variant" validate:"max=50"`
	Quantity int    `json:"quantity" validate:"gte=0,lte=1000"`
}

type OrderLine struct {
	ItemID   string `json:"item_id" validate:"required,object_id"`
	Variant  string `json:"variant" validate:"max=50"`
	Quantity int    `json:"quantity" validate:"required,gte=1,lte=1000"`
}

type PlaceOrderRequest struct {
	Items   []OrderLine    `json:"items" validate:"required,min=1,dive"`
	Address models.Address `json:"address"`
}

type VerifyPaymentRequest struct {
	OrderID string `json:"order_id" validate:"required,object_id"`
	Success bool   `json:"success"`
}

type UpdateOrderStatusRequest struct {
	OrderID string             `json:"order_id" validate:"required,object_id"`
	Status  models.OrderStatus `json:"status" validate:"required,order_status"`
}

func ValidateCartAdd(req *CartAddRequest) error {
	return ValidateStruct(req).AsAppError()
}

func ValidateCartUpdate(req *CartUpdateRequest) error {
	return ValidateStruct(req).AsAppError()
}

func ValidatePlaceOrder(req *PlaceOrderRequest) error {
	if len(req.Items) == 0 {
		return utils.NewBadRequestError("Cart is empty")
	}
	return ValidateStruct(req).AsAppError()
}

func ValidateVerifyPayment(req *VerifyPaymentRequest) error {
	return ValidateStruct(req).AsAppError()
}

func ValidateUpdateOrderStatus(req *UpdateOrderStatusRequest) error {
	return ValidateStruct(req).AsAppError()
}
