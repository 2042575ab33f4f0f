package interfaces

import (
	"context"

	"rentit/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingRepository interface {
	// Upsert inserts or replaces the rating for (from, to, order).
	Upsert(ctx context.Context, rating *models.Rating) (*models.Rating, error)
	Find(ctx context.Context, fromUserID, toUserID, orderID primitive.ObjectID) (*models.Rating, error)
	GetByRatedID(ctx context.Context, toUserID primitive.ObjectID) ([]*models.Rating, error)
	GetByRaterID(ctx context.Context, fromUserID primitive.ObjectID) ([]*models.Rating, error)
	GetStats(ctx context.Context, toUserID primitive.ObjectID) (*models.RatingStats, error)
}
