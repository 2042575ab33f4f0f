package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// CartData maps item ID to variant to quantity.
type CartData map[string]map[string]int

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" validate:"required,min=2,max=50"`
	Email         string             `json:"email" bson:"email" validate:"required,email"`
	Password      string             `json:"-" bson:"password"`
	CartData      CartData           `json:"cart_data" bson:"cart_data"`
	AverageRating float64            `json:"average_rating" bson:"average_rating"`
	TotalRatings  int                `json:"total_ratings" bson:"total_ratings"`
	Bio           string             `json:"bio" bson:"bio" validate:"max=500"`
	ProfileImage  string             `json:"profile_image" bson:"profile_image"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// PublicUser is what other users get to see.
type PublicUser struct {
	ID            primitive.ObjectID `json:"id"`
	Name          string             `json:"name"`
	Bio           string             `json:"bio,omitempty"`
	ProfileImage  string             `json:"profile_image,omitempty"`
	AverageRating float64            `json:"average_rating"`
	TotalRatings  int                `json:"total_ratings"`
}

func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Bio:           u.Bio,
		ProfileImage:  u.ProfileImage,
		AverageRating: u.AverageRating,
		TotalRatings:  u.TotalRatings,
	}
}
