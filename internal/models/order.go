package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodStripe PaymentMethod = "stripe"
)

type OrderItem struct {
	ItemID    primitive.ObjectID `json:"item_id" bson:"item_id"`
	Title     string             `json:"title" bson:"title"`
	Price     float64            `json:"price" bson:"price"`
	PriceUnit PriceUnit          `json:"price_unit" bson:"price_unit"`
	Variant   string             `json:"variant" bson:"variant"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
}

type Address struct {
	FirstName string `json:"first_name" bson:"first_name" validate:"required"`
	LastName  string `json:"last_name" bson:"last_name" validate:"required"`
	Email     string `json:"email" bson:"email" validate:"required,email"`
	Street    string `json:"street" bson:"street" validate:"required"`
	City      string `json:"city" bson:"city" validate:"required"`
	State     string `json:"state" bson:"state"`
	Zipcode   string `json:"zipcode" bson:"zipcode"`
	Country   string `json:"country" bson:"country" validate:"required"`
	Phone     string `json:"phone" bson:"phone" validate:"required"`
}

type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id"`
	Items           []OrderItem        `json:"items" bson:"items"`
	Address         Address            `json:"address" bson:"address"`
	Subtotal        float64            `json:"subtotal" bson:"subtotal"`
	Tax             float64            `json:"tax" bson:"tax"`
	Shipping        float64            `json:"shipping" bson:"shipping"`
	Amount          float64            `json:"amount" bson:"amount"`
	PaymentMethod   PaymentMethod      `json:"payment_method" bson:"payment_method"`
	Payment         bool               `json:"payment" bson:"payment"`
	StripeSessionID string             `json:"stripe_session_id,omitempty" bson:"stripe_session_id,omitempty"`
	Status          OrderStatus        `json:"status" bson:"status"`
	Date            time.Time          `json:"date" bson:"date"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}
