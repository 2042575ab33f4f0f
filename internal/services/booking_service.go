package services

import (
	"context"
	"errors"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/internal/utils"
	"rentit/internal/validators"
	"rentit/pkg/email"
	"rentit/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	CreateBooking(ctx context.Context, requesterID primitive.ObjectID, request *validators.CreateBookingRequest) (*models.Booking, error)
	GetMyBookings(ctx context.Context, requesterID primitive.ObjectID) ([]*models.BookingDetails, error)
	GetIncomingBookings(ctx context.Context, ownerID primitive.ObjectID, status models.BookingStatus) ([]*models.BookingDetails, error)
	GetBooking(ctx context.Context, userID, id primitive.ObjectID) (*models.BookingDetails, error)
	AcceptBooking(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Booking, error)
	DeclineBooking(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Booking, error)
	CancelBooking(ctx context.Context, requesterID, id primitive.ObjectID) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo   interfaces.BookingRepository
	itemRepo      interfaces.ItemRepository
	userRepo      interfaces.UserRepository
	requestRepo   interfaces.RentalRequestRepository
	notifications NotificationService
	logger        *logger.Logger
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	itemRepo interfaces.ItemRepository,
	userRepo interfaces.UserRepository,
	requestRepo interfaces.RentalRequestRepository,
	notifications NotificationService,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		itemRepo:      itemRepo,
		userRepo:      userRepo,
		requestRepo:   requestRepo,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, requesterID primitive.ObjectID, request *validators.CreateBookingRequest) (*models.Booking, error) {
	if err := validators.ValidateCreateBooking(request); err != nil {
		return nil, err
	}

	itemID, err := parseObjectID(request.ItemID, "Invalid item ID")
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, utils.ErrItemNotFound)
	}
	if !item.Available {
		return nil, utils.NewBadRequestError("Item is not available")
	}
	if item.OwnerID == requesterID {
		return nil, utils.NewBadRequestError("You cannot book your own item")
	}

	booking := &models.Booking{
		ItemID:        item.ID,
		OwnerID:       item.OwnerID,
		RequesterID:   requesterID,
		Start:         request.Start,
		End:           request.End,
		ProposedPrice: item.Price,
		Message:       request.Message,
		Status:        models.BookingPending,
	}
	if request.ProposedPrice != nil {
		booking.ProposedPrice = *request.ProposedPrice
	}

	var wish *models.RentalRequest
	if request.RentalRequestID != "" {
		wishID, err := parseObjectID(request.RentalRequestID, "Invalid request ID")
		if err != nil {
			return nil, err
		}
		wish, err = s.requestRepo.GetByID(ctx, wishID)
		if err != nil {
			return nil, notFound(err, utils.ErrRequestNotFound)
		}
		if wish.Status != models.RentalRequestOpen {
			return nil, utils.NewBadRequestError("Request is no longer open")
		}
		booking.RentalRequestID = &wish.ID
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		s.logger.WithError(err).WithItemID(item.ID).Error("Failed to create booking")
		return nil, err
	}

	if wish != nil {
		if err := s.requestRepo.AddOffer(ctx, wish.ID, booking.ID); err != nil {
			s.logger.WithError(err).WithField("request_id", wish.ID.Hex()).Error("Failed to attach offer to request")
		}
	}

	s.logger.LogBookingEvent(booking.ID, "created", map[string]interface{}{
		"item_id":      item.ID.Hex(),
		"requester_id": requesterID.Hex(),
	})

	s.notifications.Notify(ctx, item.OwnerID, models.NotificationBookingReceived, bookingData(booking, item))
	s.emailOwner(ctx, booking, item)

	return booking, nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, requesterID primitive.ObjectID) ([]*models.BookingDetails, error) {
	bookings, err := s.bookingRepo.GetByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, bookings)
}

func (s *bookingService) GetIncomingBookings(ctx context.Context, ownerID primitive.ObjectID, status models.BookingStatus) ([]*models.BookingDetails, error) {
	if status != "" && !status.IsValid() {
		return nil, utils.NewBadRequestError("Invalid status")
	}

	bookings, err := s.bookingRepo.GetByOwner(ctx, ownerID, status)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, bookings)
}

func (s *bookingService) GetBooking(ctx context.Context, userID, id primitive.ObjectID) (*models.BookingDetails, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, utils.ErrBookingNotFound)
	}
	if booking.RequesterID != userID && booking.OwnerID != userID {
		return nil, utils.NewForbiddenError("You cannot view this booking")
	}

	details, err := s.withDetails(ctx, []*models.Booking{booking})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *bookingService) AcceptBooking(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.ownerBooking(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPending {
		return nil, utils.NewBadRequestError("Booking is not pending")
	}

	conflict, err := s.hasAcceptedOverlap(ctx, booking)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, utils.NewConflictError("Item already booked for these dates")
	}

	if err := s.transition(ctx, booking, []models.BookingStatus{models.BookingPending}, models.BookingAccepted); err != nil {
		return nil, err
	}

	// A concurrent accept may have slipped in between the check and the
	// write. Back out if so.
	conflict, err = s.hasAcceptedOverlap(ctx, booking)
	if err == nil && conflict {
		if err := s.bookingRepo.RevertAcceptance(ctx, booking.ID); err != nil {
			s.logger.WithError(err).WithField("booking_id", booking.ID.Hex()).Error("Failed to revert conflicting acceptance")
		} else {
			booking.Status = models.BookingPending
			booking.RespondedAt = nil
			s.logger.LogBookingEvent(booking.ID, "accept_reverted", nil)
		}
		return nil, utils.NewConflictError("Item already booked for these dates")
	}

	if booking.RentalRequestID != nil {
		if err := s.requestRepo.UpdateStatus(ctx, *booking.RentalRequestID, models.RentalRequestFulfilled); err != nil {
			s.logger.WithError(err).WithField("request_id", booking.RentalRequestID.Hex()).Error("Failed to fulfil rental request")
		}
	}

	item, _ := s.itemRepo.GetByID(ctx, booking.ItemID)
	s.notifications.Notify(ctx, booking.RequesterID, models.NotificationBookingAccepted, bookingData(booking, item))
	s.emailRequester(ctx, booking, item)

	return booking, nil
}

func (s *bookingService) DeclineBooking(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.ownerBooking(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPending {
		return nil, utils.NewBadRequestError("Booking is not pending")
	}

	if err := s.transition(ctx, booking, []models.BookingStatus{models.BookingPending}, models.BookingDeclined); err != nil {
		return nil, err
	}

	item, _ := s.itemRepo.GetByID(ctx, booking.ItemID)
	s.notifications.Notify(ctx, booking.RequesterID, models.NotificationBookingDeclined, bookingData(booking, item))

	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, requesterID, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, utils.ErrBookingNotFound)
	}
	if booking.RequesterID != requesterID {
		return nil, utils.NewForbiddenError("You can only cancel your own bookings")
	}

	cancellable := []models.BookingStatus{models.BookingPending, models.BookingAccepted}
	if booking.Status != models.BookingPending && booking.Status != models.BookingAccepted {
		return nil, utils.NewBadRequestError("Booking cannot be cancelled")
	}

	if err := s.transition(ctx, booking, cancellable, models.BookingCancelled); err != nil {
		return nil, err
	}

	item, _ := s.itemRepo.GetByID(ctx, booking.ItemID)
	s.notifications.Notify(ctx, booking.OwnerID, models.NotificationBookingCancelled, bookingData(booking, item))

	return booking, nil
}

func (s *bookingService) ownerBooking(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, utils.ErrBookingNotFound)
	}
	if booking.OwnerID != ownerID {
		return nil, utils.NewForbiddenError(utils.ErrNotOwner)
	}
	return booking, nil
}

// transition applies a conditional status change. A miss means another
// request changed the status first.
func (s *bookingService) transition(ctx context.Context, booking *models.Booking, from []models.BookingStatus, to models.BookingStatus) error {
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, from, to); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return utils.NewConflictError("Booking status changed, reload and try again")
		}
		return err
	}

	booking.Status = to
	s.logger.LogBookingEvent(booking.ID, string(to), nil)
	return nil
}

func (s *bookingService) hasAcceptedOverlap(ctx context.Context, booking *models.Booking) (bool, error) {
	accepted, err := s.bookingRepo.GetAcceptedForItem(ctx, booking.ItemID)
	if err != nil {
		return false, err
	}

	for _, other := range accepted {
		if other.ID != booking.ID && other.Overlaps(booking.Start, booking.End) {
			return true, nil
		}
	}
	return false, nil
}

func (s *bookingService) withDetails(ctx context.Context, bookings []*models.Booking) ([]*models.BookingDetails, error) {
	itemIDs := make([]primitive.ObjectID, 0, len(bookings))
	userIDs := make([]primitive.ObjectID, 0, len(bookings)*2)
	for _, b := range bookings {
		itemIDs = append(itemIDs, b.ItemID)
		userIDs = append(userIDs, b.RequesterID, b.OwnerID)
	}

	items, err := s.itemRepo.GetByIDs(ctx, uniqueIDs(itemIDs))
	if err != nil {
		return nil, err
	}
	users, err := publicUsers(ctx, s.userRepo, userIDs)
	if err != nil {
		return nil, err
	}

	details := make([]*models.BookingDetails, len(bookings))
	for i, b := range bookings {
		details[i] = &models.BookingDetails{
			Booking:   b,
			Item:      items[b.ItemID],
			Requester: users[b.RequesterID],
			Owner:     users[b.OwnerID],
		}
	}
	return details, nil
}

func (s *bookingService) emailOwner(ctx context.Context, booking *models.Booking, item *models.Item) {
	owner, err := s.userRepo.GetByID(ctx, booking.OwnerID)
	if err != nil {
		return
	}
	requester, err := s.userRepo.GetByID(ctx, booking.RequesterID)
	if err != nil {
		return
	}

	s.notifications.EmailBookingReceived(ctx, owner.Email, bookingEmail(booking, item, owner, requester))
}

func (s *bookingService) emailRequester(ctx context.Context, booking *models.Booking, item *models.Item) {
	requester, err := s.userRepo.GetByID(ctx, booking.RequesterID)
	if err != nil {
		return
	}
	owner, err := s.userRepo.GetByID(ctx, booking.OwnerID)
	if err != nil {
		return
	}

	s.notifications.EmailBookingAccepted(ctx, requester.Email, bookingEmail(booking, item, requester, owner))
}

func bookingEmail(booking *models.Booking, item *models.Item, recipient, other *models.User) email.BookingEmail {
	data := email.BookingEmail{
		RecipientName: recipient.Name,
		OtherName:     other.Name,
		Start:         booking.Start,
		End:           booking.End,
		Price:         booking.ProposedPrice,
		Message:       booking.Message,
	}
	if item != nil {
		data.ItemTitle = item.Title
	}
	return data
}

func bookingData(booking *models.Booking, item *models.Item) map[string]interface{} {
	data := map[string]interface{}{
		"booking_id": booking.ID.Hex(),
		"item_id":    booking.ItemID.Hex(),
		"status":     booking.Status,
		"start":      booking.Start,
		"end":        booking.End,
	}
	if item != nil {
		data["item_title"] = item.Title
	}
	return data
}
