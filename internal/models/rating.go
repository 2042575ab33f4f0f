package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingType string

const (
	RatingTypeLender   RatingType = "lender"
	RatingTypeBorrower RatingType = "borrower"
)

func (t RatingType) IsValid() bool {
	return t == RatingTypeLender || t == RatingTypeBorrower
}

type Rating struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FromUserID primitive.ObjectID `json:"from_user_id" bson:"from_user_id"`
	ToUserID   primitive.ObjectID `json:"to_user_id" bson:"to_user_id"`
	OrderID    primitive.ObjectID `json:"order_id" bson:"order_id"`
	Rating     int                `json:"rating" bson:"rating"`
	Comment    string             `json:"comment,omitempty" bson:"comment,omitempty"`
	RatingType RatingType         `json:"rating_type" bson:"rating_type"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

type RatingWithUser struct {
	*Rating
	FromUser *PublicUser `json:"from_user,omitempty"`
	ToUser   *PublicUser `json:"to_user,omitempty"`
}

type RatingStats struct {
	AverageRating float64 `json:"average_rating" bson:"average_rating"`
	TotalRatings  int     `json:"total_ratings" bson:"total_ratings"`
}

type RatingSummary struct {
	UserID        primitive.ObjectID `json:"user_id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	ProfileImage  string             `json:"profile_image,omitempty"`
	Bio           string             `json:"bio,omitempty"`
	AverageRating float64            `json:"average_rating"`
	TotalRatings  int                `json:"total_ratings"`
}
