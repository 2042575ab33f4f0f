package interfaces

import (
	"context"

	"rentit/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteByEmailPattern(ctx context.Context, pattern string) (int64, error)

	// Ratings aggregate
	UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats *models.RatingStats) error

	// Cart
	GetCart(ctx context.Context, id primitive.ObjectID) (models.CartData, error)
	SetCart(ctx context.Context, id primitive.ObjectID, cart models.CartData) error
}
