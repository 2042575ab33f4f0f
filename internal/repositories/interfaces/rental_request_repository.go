package interfaces

import (
	"context"

	"rentit/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RentalRequestRepository interface {
	Create(ctx context.Context, request *models.RentalRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.RentalRequest, error)
	List(ctx context.Context, filter *models.RentalRequestFilter) ([]*models.RentalRequest, int64, error)
	GetByRequester(ctx context.Context, requesterID primitive.ObjectID) ([]*models.RentalRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RentalRequestStatus) error
	AddOffer(ctx context.Context, id primitive.ObjectID, bookingID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
