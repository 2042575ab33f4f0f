package interfaces

import (
	"context"

	"rentit/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Booking, error)
	GetByRequester(ctx context.Context, requesterID primitive.ObjectID) ([]*models.Booking, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID, status models.BookingStatus) ([]*models.Booking, error)
	GetAcceptedForItem(ctx context.Context, itemID primitive.ObjectID) ([]*models.Booking, error)

	// UpdateStatus changes the status only if the booking is currently in one
	// of the expected states. It returns ErrNotFound when no document matched.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.BookingStatus, to models.BookingStatus) error
	// RevertAcceptance puts an accepted booking back to pending and clears
	// responded_at.
	RevertAcceptance(ctx context.Context, id primitive.ObjectID) error
	CancelPendingForItem(ctx context.Context, itemID primitive.ObjectID) (int64, error)
}
