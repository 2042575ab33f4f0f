package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RentalRequestStatus string

const (
	RentalRequestOpen      RentalRequestStatus = "open"
	RentalRequestClosed    RentalRequestStatus = "closed"
	RentalRequestFulfilled RentalRequestStatus = "fulfilled"
)

func (s RentalRequestStatus) IsValid() bool {
	switch s {
	case RentalRequestOpen, RentalRequestClosed, RentalRequestFulfilled:
		return true
	}
	return false
}

type RequestLocation struct {
	Lat     float64 `json:"lat" bson:"lat"`
	Lon     float64 `json:"lon" bson:"lon"`
	Address string  `json:"address,omitempty" bson:"address,omitempty"`
}

// RentalRequest is a wish posted by someone looking for an item to rent.
type RentalRequest struct {
	ID                  primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	RequesterID         primitive.ObjectID   `json:"requester_id" bson:"requester"`
	Title               string               `json:"title" bson:"title"`
	Description         string               `json:"description" bson:"description"`
	Category            string               `json:"category,omitempty" bson:"category,omitempty"`
	DesiredStart        time.Time            `json:"desired_start" bson:"desired_start"`
	DesiredEnd          time.Time            `json:"desired_end" bson:"desired_end"`
	MaxPrice            float64              `json:"max_price" bson:"max_price"`
	RadiusKm            float64              `json:"radius_km" bson:"radius_km"`
	Location            *RequestLocation     `json:"location,omitempty" bson:"location,omitempty"`
	Status              RentalRequestStatus  `json:"status" bson:"status"`
	Offers              []primitive.ObjectID `json:"offers" bson:"offers"`
	SpecialRequirements string               `json:"special_requirements,omitempty" bson:"special_requirements,omitempty"`
	CreatedAt           time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at" bson:"updated_at"`
}

type RentalRequestDetails struct {
	*RentalRequest
	Requester    *PublicUser `json:"requester,omitempty"`
	OfferDetails []*Booking  `json:"offer_details,omitempty"`
}

type RentalRequestFilter struct {
	Statuses []RentalRequestStatus
	Category string
	SortBy   string // newest, oldest, expiring
	Limit    int64
}
