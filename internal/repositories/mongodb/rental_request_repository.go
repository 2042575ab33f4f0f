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

type rentalRequestRepository struct {
	collection *mongo.Collection
}

func NewRentalRequestRepository(db *mongo.Database) interfaces.RentalRequestRepository {
	return &rentalRequestRepository{
		collection: db.Collection(database.CollectionRentalRequests),
	}
}

func (r *rentalRequestRepository) Create(ctx context.Context, request *models.RentalRequest) error {
	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	if request.Offers == nil {
		request.Offers = []primitive.ObjectID{}
	}

	if _, err := r.collection.InsertOne(ctx, request); err != nil {
		return mapError(err, "create rental request")
	}

	return nil
}

func (r *rentalRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.RentalRequest, error) {
	var request models.RentalRequest
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request); err != nil {
		return nil, mapError(err, "get rental request")
	}

	return &request, nil
}

func (r *rentalRequestRepository) List(ctx context.Context, filter *models.RentalRequestFilter) ([]*models.RentalRequest, int64, error) {
	query := bson.M{}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	limit := filter.Limit
	if limit <= 0 || limit > utils.MaxRequestListLimit {
		limit = utils.MaxRequestListLimit
	}

	opts := options.Find().SetLimit(limit).SetSort(requestSort(filter.SortBy))

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count rental requests: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find rental requests: %w", err)
	}

	requests, err := decodeAll[models.RentalRequest](ctx, cursor, "rental request")
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func requestSort(sortBy string) bson.D {
	switch sortBy {
	case "oldest":
		return bson.D{{Key: "created_at", Value: 1}}
	case "expiring":
		return bson.D{{Key: "desired_end", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

func (r *rentalRequestRepository) GetByRequester(ctx context.Context, requesterID primitive.ObjectID) ([]*models.RentalRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"requester": requesterID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find rental requests: %w", err)
	}

	return decodeAll[models.RentalRequest](ctx, cursor, "rental request")
}

func (r *rentalRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RentalRequestStatus) error {
	return r.update(ctx, id, bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}, "update rental request status")
}

func (r *rentalRequestRepository) AddOffer(ctx context.Context, id primitive.ObjectID, bookingID primitive.ObjectID) error {
	return r.update(ctx, id, bson.M{
		"$addToSet": bson.M{"offers": bookingID},
		"$set":      bson.M{"updated_at": time.Now()},
	}, "add offer")
}

func (r *rentalRequestRepository) update(ctx context.Context, id primitive.ObjectID, update bson.M, action string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return mapError(err, action)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *rentalRequestRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err, "delete rental request")
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}
