package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingDeclined  BookingStatus = "declined"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingDeclined, BookingCancelled:
		return true
	}
	return false
}

// Booking is an offer to rent a specific item for a date range.
type Booking struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	ItemID          primitive.ObjectID  `json:"item_id" bson:"item"`
	OwnerID         primitive.ObjectID  `json:"owner_id" bson:"owner"`
	RequesterID     primitive.ObjectID  `json:"requester_id" bson:"requester"`
	RentalRequestID *primitive.ObjectID `json:"rental_request_id,omitempty" bson:"rental_request,omitempty"`
	Start           time.Time           `json:"start" bson:"start"`
	End             time.Time           `json:"end" bson:"end"`
	ProposedPrice   float64             `json:"proposed_price" bson:"proposed_price"`
	Message         string              `json:"message,omitempty" bson:"message,omitempty"`
	Status          BookingStatus       `json:"status" bson:"status"`
	RespondedAt     *time.Time          `json:"responded_at,omitempty" bson:"responded_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
}

// Overlaps reports whether the booking's range intersects [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && start.Before(b.End)
}

type BookingDetails struct {
	*Booking
	Item      *Item       `json:"item,omitempty"`
	Requester *PublicUser `json:"requester,omitempty"`
	Owner     *PublicUser `json:"owner,omitempty"`
}
