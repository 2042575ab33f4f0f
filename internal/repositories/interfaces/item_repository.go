package interfaces

import (
	"context"

	"rentit/internal/models"
	"rentit/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	CreateMany(ctx context.Context, items []*models.Item) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Item, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByTitlePattern(ctx context.Context, pattern string) (int64, error)

	// ListAvailable returns available items, nearest first when the filter
	// carries a location and newest first otherwise.
	ListAvailable(ctx context.Context, filter *models.ItemFilter, params *utils.PaginationParams) ([]*models.Item, int64, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Item, error)
}
