package mongodb

import (
	"context"
	"fmt"
	"math"
	"time"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ratingRepository struct {
	collection *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) interfaces.RatingRepository {
	return &ratingRepository{
		collection: db.Collection(database.CollectionRatings),
	}
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	now := time.Now()
	filter := bson.M{
		"from_user_id": rating.FromUserID,
		"to_user_id":   rating.ToUserID,
		"order_id":     rating.OrderID,
	}
	update := bson.M{
		"$set": bson.M{
			"rating":      rating.Rating,
			"comment":     rating.Comment,
			"rating_type": rating.RatingType,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.Rating
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, mapError(err, "upsert rating")
	}

	return &saved, nil
}

func (r *ratingRepository) Find(ctx context.Context, fromUserID, toUserID, orderID primitive.ObjectID) (*models.Rating, error) {
	var rating models.Rating
	err := r.collection.FindOne(ctx, bson.M{
		"from_user_id": fromUserID,
		"to_user_id":   toUserID,
		"order_id":     orderID,
	}).Decode(&rating)
	if err != nil {
		return nil, mapError(err, "get rating")
	}

	return &rating, nil
}

func (r *ratingRepository) GetByRatedID(ctx context.Context, toUserID primitive.ObjectID) ([]*models.Rating, error) {
	return r.find(ctx, bson.M{"to_user_id": toUserID})
}

func (r *ratingRepository) GetByRaterID(ctx context.Context, fromUserID primitive.ObjectID) ([]*models.Rating, error) {
	return r.find(ctx, bson.M{"from_user_id": fromUserID})
}

func (r *ratingRepository) find(ctx context.Context, filter bson.M) ([]*models.Rating, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find ratings: %w", err)
	}

	return decodeAll[models.Rating](ctx, cursor, "rating")
}

func (r *ratingRepository) GetStats(ctx context.Context, toUserID primitive.ObjectID) (*models.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"to_user_id": toUserID}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"avg_rating": bson.M{"$avg": "$rating"},
			"total":      bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate rating stats: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		AvgRating float64 `bson:"avg_rating"`
		Total     int     `bson:"total"`
	}

	stats := &models.RatingStats{}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return nil, fmt.Errorf("failed to decode rating stats: %w", err)
		}
		stats.AverageRating = math.Round(result.AvgRating*100) / 100
		stats.TotalRatings = result.Total
	}

	return stats, nil
}
