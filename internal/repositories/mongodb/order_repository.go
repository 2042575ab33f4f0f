package mongodb

import (
	"context"
	"fmt"
	"time"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/internal/utils"
	"rentit/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) interfaces.OrderRepository {
	return &orderRepository{
		collection: db.Collection(database.CollectionOrders),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	if order.Date.IsZero() {
		order.Date = order.CreatedAt
	}

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return mapError(err, "create order")
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, mapError(err, "get order")
	}

	return &order, nil
}

func (r *orderRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find user orders: %w", err)
	}

	return decodeAll[models.Order](ctx, cursor, "order")
}

func (r *orderRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Order, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}

	orders, err := decodeAll[models.Order](ctx, cursor, "order")
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return mapError(err, "update order")
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err, "delete order")
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}
