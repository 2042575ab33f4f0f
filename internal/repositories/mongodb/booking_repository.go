package mongodb

import (
	"context"
	"fmt"
	"time"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection(database.CollectionBookings),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return mapError(err, "create booking")
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		return nil, mapError(err, "get booking")
	}

	return &booking, nil
}

func (r *bookingRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Booking, error) {
	if len(ids) == 0 {
		return []*models.Booking{}, nil
	}

	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *bookingRepository) GetByRequester(ctx context.Context, requesterID primitive.ObjectID) ([]*models.Booking, error) {
	return r.find(ctx, bson.M{"requester": requesterID})
}

func (r *bookingRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID, status models.BookingStatus) ([]*models.Booking, error) {
	filter := bson.M{"owner": ownerID}
	if status != "" {
		filter["status"] = status
	}

	return r.find(ctx, filter)
}

func (r *bookingRepository) GetAcceptedForItem(ctx context.Context, itemID primitive.ObjectID) ([]*models.Booking, error) {
	return r.find(ctx, bson.M{"item": itemID, "status": models.BookingAccepted})
}

func (r *bookingRepository) find(ctx context.Context, filter bson.M) ([]*models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}

	return decodeAll[models.Booking](ctx, cursor, "booking")
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.BookingStatus, to models.BookingStatus) error {
	now := time.Now()
	set := bson.M{"status": to, "updated_at": now}
	if to == models.BookingAccepted || to == models.BookingDeclined {
		set["responded_at"] = now
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": set},
	)
	if err != nil {
		return mapError(err, "update booking status")
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *bookingRepository) RevertAcceptance(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.BookingAccepted},
		bson.M{
			"$set":   bson.M{"status": models.BookingPending, "updated_at": time.Now()},
			"$unset": bson.M{"responded_at": ""},
		},
	)
	if err != nil {
		return mapError(err, "revert booking acceptance")
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *bookingRepository) CancelPendingForItem(ctx context.Context, itemID primitive.ObjectID) (int64, error) {
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"item": itemID, "status": models.BookingPending},
		bson.M{"$set": bson.M{"status": models.BookingCancelled, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel pending bookings: %w", err)
	}

	return result.ModifiedCount, nil
}
