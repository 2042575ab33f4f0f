package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PriceUnit string

const (
	PriceUnitHourly PriceUnit = "hourly"
	PriceUnitDaily  PriceUnit = "daily"
)

func (p PriceUnit) IsValid() bool {
	return p == PriceUnitHourly || p == PriceUnitDaily
}

type Item struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	OwnerID     primitive.ObjectID `json:"owner_id" bson:"owner"`
	Price       float64            `json:"price" bson:"price"`
	PriceUnit   PriceUnit          `json:"price_unit" bson:"price_unit"`
	Images      []string           `json:"images" bson:"images"`
	Remarks     string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	Location    Location           `json:"location" bson:"location"`
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
	Available   bool               `json:"available" bson:"available"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// ItemDetails is an item together with its owner's public profile.
type ItemDetails struct {
	*Item
	Owner      *PublicUser `json:"owner,omitempty"`
	DistanceKm *float64    `json:"distance_km,omitempty"`
}

// ItemFilter narrows item listings. Zero values mean no filter.
type ItemFilter struct {
	Longitude    *float64
	Latitude     *float64
	RadiusMeters float64
	MinPrice     *float64
	MaxPrice     *float64
	PriceUnit    PriceUnit
	Search       string
}

func (f *ItemFilter) HasLocation() bool {
	return f.Longitude != nil && f.Latitude != nil
}
