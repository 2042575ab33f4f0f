package interfaces

import (
	"context"

	"rentit/internal/models"
	"rentit/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Order, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
