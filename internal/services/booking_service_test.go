package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentit/internal/models"
	"rentit/internal/validators"
	"rentit/pkg/logger"
)

type bookingFixture struct {
	owner         *models.User
	renter        *models.User
	item          *models.Item
	bookings      *mockBookingRepo
	requests      *mockRentalRequestRepo
	notifications *mockNotifications
	svc           BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		owner:         &models.User{ID: primitive.NewObjectID(), Name: "Owner", Email: "owner@b.test"},
		renter:        &models.User{ID: primitive.NewObjectID(), Name: "Renter", Email: "renter@b.test"},
		bookings:      newMockBookingRepo(),
		requests:      newMockRentalRequestRepo(),
		notifications: &mockNotifications{},
	}
	f.item = &models.Item{ID: primitive.NewObjectID(), OwnerID: f.owner.ID, Title: "Canoe", Price: 30, Available: true}
	f.svc = NewBookingService(f.bookings, newMockItemRepo(f.item), newMockUserRepo(f.owner, f.renter),
		f.requests, f.notifications, logger.NewNop())
	return f
}

var day = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

func (f *bookingFixture) pending(startDay, endDay int) *models.Booking {
	b := &models.Booking{
		ID:          primitive.NewObjectID(),
		ItemID:      f.item.ID,
		OwnerID:     f.owner.ID,
		RequesterID: f.renter.ID,
		Start:       day.AddDate(0, 0, startDay),
		End:         day.AddDate(0, 0, endDay),
		Status:      models.BookingPending,
	}
	f.bookings.bookings[b.ID] = b
	return b
}

func TestCreateBookingDefaultsPriceAndNotifiesOwner(t *testing.T) {
	f := newBookingFixture()

	booking, err := f.svc.CreateBooking(context.Background(), f.renter.ID, &validators.CreateBookingRequest{
		ItemID:  f.item.ID.Hex(),
		Start:   day,
		End:     day.AddDate(0, 0, 2),
		Message: "Weekend trip",
	})
	require.NoError(t, err)
	require.Equal(t, models.BookingPending, booking.Status)
	require.Equal(t, 30.0, booking.ProposedPrice)
	require.Equal(t, f.owner.ID, booking.OwnerID)

	require.Len(t, f.notifications.sent, 1)
	require.Equal(t, f.owner.ID, f.notifications.sent[0].UserID)
	require.Equal(t, models.NotificationBookingReceived, f.notifications.sent[0].Type)
	require.Equal(t, []string{"owner@b.test"}, f.notifications.received)
}

func TestCreateBookingRules(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, f.owner.ID, &validators.CreateBookingRequest{
		ItemID: f.item.ID.Hex(), Start: day, End: day.AddDate(0, 0, 1),
	})
	requireAppStatus(t, err, http.StatusBadRequest)

	_, err = f.svc.CreateBooking(ctx, f.renter.ID, &validators.CreateBookingRequest{
		ItemID: f.item.ID.Hex(), Start: day, End: day,
	})
	requireAppStatus(t, err, http.StatusBadRequest)

	_, err = f.svc.CreateBooking(ctx, f.renter.ID, &validators.CreateBookingRequest{
		ItemID: primitive.NewObjectID().Hex(), Start: day, End: day.AddDate(0, 0, 1),
	})
	requireAppStatus(t, err, http.StatusNotFound)

	f.item.Available = false
	_, err = f.svc.CreateBooking(ctx, f.renter.ID, &validators.CreateBookingRequest{
		ItemID: f.item.ID.Hex(), Start: day, End: day.AddDate(0, 0, 1),
	})
	requireAppStatus(t, err, http.StatusBadRequest)
	require.Empty(t, f.bookings.bookings)
}

func TestCreateBookingAsOfferOnRequest(t *testing.T) {
	f := newBookingFixture()
	wish := &models.RentalRequest{ID: primitive.NewObjectID(), RequesterID: f.renter.ID, Status: models.RentalRequestOpen}
	f.requests.requests[wish.ID] = wish

	booking, err := f.svc.CreateBooking(context.Background(), f.renter.ID, &validators.CreateBookingRequest{
		ItemID:          f.item.ID.Hex(),
		Start:           day,
		End:             day.AddDate(0, 0, 1),
		RentalRequestID: wish.ID.Hex(),
	})
	require.NoError(t, err)
	require.Equal(t, wish.ID, *booking.RentalRequestID)
	require.Equal(t, []primitive.ObjectID{booking.ID}, wish.Offers)

	wish.Status = models.RentalRequestClosed
	_, err = f.svc.CreateBooking(context.Background(), f.renter.ID, &validators.CreateBookingRequest{
		ItemID:          f.item.ID.Hex(),
		Start:           day,
		End:             day.AddDate(0, 0, 1),
		RentalRequestID: wish.ID.Hex(),
	})
	requireAppStatus(t, err, http.StatusBadRequest)
}

func TestAcceptBookingFulfilsRequest(t *testing.T) {
	f := newBookingFixture()
	wish := &models.RentalRequest{ID: primitive.NewObjectID(), Status: models.RentalRequestOpen}
	f.requests.requests[wish.ID] = wish

	b := f.pending(0, 2)
	b.RentalRequestID = &wish.ID

	accepted, err := f.svc.AcceptBooking(context.Background(), f.owner.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, models.BookingAccepted, accepted.Status)
	require.Equal(t, models.BookingAccepted, b.Status)
	require.Equal(t, models.RentalRequestFulfilled, wish.Status)

	require.Equal(t, f.renter.ID, f.notifications.sent[0].UserID)
	require.Equal(t, models.NotificationBookingAccepted, f.notifications.sent[0].Type)
	require.Equal(t, []string{"renter@b.test"}, f.notifications.accepted)
}

func TestAcceptBookingRejectsOverlap(t *testing.T) {
	f := newBookingFixture()
	first := f.pending(0, 3)
	second := f.pending(2, 5)
	adjacent := f.pending(3, 4)

	_, err := f.svc.AcceptBooking(context.Background(), f.owner.ID, first.ID)
	require.NoError(t, err)

	_, err = f.svc.AcceptBooking(context.Background(), f.owner.ID, second.ID)
	requireAppStatus(t, err, http.StatusConflict)
	require.Equal(t, models.BookingPending, second.Status)

	// end is exclusive
	_, err = f.svc.AcceptBooking(context.Background(), f.owner.ID, adjacent.ID)
	require.NoError(t, err)
}

func TestAcceptBookingBacksOutOfConcurrentAccept(t *testing.T) {
	f := newBookingFixture()
	mine := f.pending(0, 3)

	// Another owner session accepts an overlapping booking right after our write.
	f.bookings.AfterUpdateStatusFn = func(id primitive.ObjectID, to models.BookingStatus) {
		if id != mine.ID || to != models.BookingAccepted {
			return
		}
		rival := f.pending(1, 2)
		rival.Status = models.BookingAccepted
	}

	_, err := f.svc.AcceptBooking(context.Background(), f.owner.ID, mine.ID)
	requireAppStatus(t, err, http.StatusConflict)
	require.Equal(t, models.BookingPending, mine.Status)
	require.Nil(t, mine.RespondedAt)
	require.Empty(t, f.notifications.sent)
}

func TestAcceptBookingSimultaneousAcceptRevertsCleanly(t *testing.T) {
	f := newBookingFixture()
	first := f.pending(0, 3)
	second := f.pending(1, 4)

	// Both writes land before either re-check runs.
	f.bookings.AfterUpdateStatusFn = func(id primitive.ObjectID, to models.BookingStatus) {
		if id == first.ID && to == models.BookingAccepted && second.Status == models.BookingPending {
			second.Status = models.BookingAccepted
			now := time.Now()
			second.RespondedAt = &now
		}
	}

	_, err := f.svc.AcceptBooking(context.Background(), f.owner.ID, first.ID)
	requireAppStatus(t, err, http.StatusConflict)
	require.Equal(t, models.BookingPending, first.Status)
	require.Nil(t, first.RespondedAt)

	// the other session's re-check now finds no rival and keeps its accept
	conflict, err := f.svc.(*bookingService).hasAcceptedOverlap(context.Background(), second)
	require.NoError(t, err)
	require.False(t, conflict)

	// a retry of the reverted booking is refused, never double-booked
	f.bookings.AfterUpdateStatusFn = nil
	_, err = f.svc.AcceptBooking(context.Background(), f.owner.ID, first.ID)
	requireAppStatus(t, err, http.StatusConflict)
	require.Equal(t, models.BookingPending, first.Status)
}

func TestAcceptBookingStateAndOwnership(t *testing.T) {
	f := newBookingFixture()
	b := f.pending(0, 1)

	_, err := f.svc.AcceptBooking(context.Background(), f.renter.ID, b.ID)
	requireAppStatus(t, err, http.StatusForbidden)

	_, err = f.svc.DeclineBooking(context.Background(), f.owner.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, models.BookingDeclined, b.Status)

	_, err = f.svc.AcceptBooking(context.Background(), f.owner.ID, b.ID)
	requireAppStatus(t, err, http.StatusBadRequest)

	_, err = f.svc.AcceptBooking(context.Background(), f.owner.ID, primitive.NewObjectID())
	requireAppStatus(t, err, http.StatusNotFound)
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture()
	b := f.pending(0, 1)

	_, err := f.svc.CancelBooking(context.Background(), f.owner.ID, b.ID)
	requireAppStatus(t, err, http.StatusForbidden)

	cancelled, err := f.svc.CancelBooking(context.Background(), f.renter.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, models.BookingCancelled, cancelled.Status)
	require.Equal(t, f.owner.ID, f.notifications.sent[0].UserID)

	_, err = f.svc.CancelBooking(context.Background(), f.renter.ID, b.ID)
	requireAppStatus(t, err, http.StatusBadRequest)
}

func TestGetBookingVisibility(t *testing.T) {
	f := newBookingFixture()
	b := f.pending(0, 1)

	details, err := f.svc.GetBooking(context.Background(), f.owner.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, "Canoe", details.Item.Title)
	require.Equal(t, "Renter", details.Requester.Name)

	_, err = f.svc.GetBooking(context.Background(), primitive.NewObjectID(), b.ID)
	requireAppStatus(t, err, http.StatusForbidden)
}

func TestIncomingBookingsFilter(t *testing.T) {
	f := newBookingFixture()
	f.pending(0, 1)
	declined := f.pending(1, 2)
	declined.Status = models.BookingDeclined

	pending, err := f.svc.GetIncomingBookings(context.Background(), f.owner.ID, models.BookingPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	all, err := f.svc.GetIncomingBookings(context.Background(), f.owner.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = f.svc.GetIncomingBookings(context.Background(), f.owner.ID, "bogus")
	requireAppStatus(t, err, http.StatusBadRequest)

	mine, err := f.svc.GetMyBookings(context.Background(), f.renter.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
}
