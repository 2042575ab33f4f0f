package services

import (
	"context"
	"errors"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/internal/utils"
	"rentit/internal/validators"
	"rentit/pkg/logger"
	"rentit/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RentalRequestService interface {
	CreateRequest(ctx context.Context, requesterID primitive.ObjectID, request *validators.CreateRentalRequestRequest) (*models.RentalRequest, error)
	ListRequests(ctx context.Context, category, status, sortBy string) ([]*models.RentalRequestDetails, int64, error)
	GetMyRequests(ctx context.Context, requesterID primitive.ObjectID) ([]*models.RentalRequest, error)
	GetRequest(ctx context.Context, id primitive.ObjectID) (*models.RentalRequestDetails, error)
	CloseRequest(ctx context.Context, userID, id primitive.ObjectID, request *validators.CloseRentalRequestRequest) (*models.RentalRequest, error)
	DeleteRequest(ctx context.Context, userID, id primitive.ObjectID) error
}

type rentalRequestService struct {
	requestRepo interfaces.RentalRequestRepository
	userRepo    interfaces.UserRepository
	bookingRepo interfaces.BookingRepository
	geocoder    maps.Geocoder
	logger      *logger.Logger
}

func NewRentalRequestService(
	requestRepo interfaces.RentalRequestRepository,
	userRepo interfaces.UserRepository,
	bookingRepo interfaces.BookingRepository,
	geocoder maps.Geocoder,
	logger *logger.Logger,
) RentalRequestService {
	return &rentalRequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		geocoder:    geocoder,
		logger:      logger,
	}
}

func (s *rentalRequestService) CreateRequest(ctx context.Context, requesterID primitive.ObjectID, request *validators.CreateRentalRequestRequest) (*models.RentalRequest, error) {
	if err := validators.ValidateCreateRentalRequest(request); err != nil {
		return nil, err
	}

	rental := &models.RentalRequest{
		RequesterID:         requesterID,
		Title:               request.Title,
		Description:         request.Description,
		Category:            request.Category,
		DesiredStart:        request.DesiredStart,
		DesiredEnd:          request.DesiredEnd,
		MaxPrice:            request.MaxPrice,
		RadiusKm:            request.RadiusKm,
		Location:            s.completeLocation(ctx, request.Location),
		Status:              models.RentalRequestOpen,
		Offers:              []primitive.ObjectID{},
		SpecialRequirements: request.SpecialRequirements,
	}

	if err := s.requestRepo.Create(ctx, rental); err != nil {
		s.logger.WithError(err).WithUserID(requesterID).Error("Failed to create rental request")
		return nil, err
	}

	s.logger.LogUserAction(requesterID, "post_rental_request", map[string]interface{}{"request_id": rental.ID.Hex()})

	return rental, nil
}

// completeLocation fills in whichever half of the location is missing when
// a geocoder is available. Failures leave the location as given.
func (s *rentalRequestService) completeLocation(ctx context.Context, loc *models.RequestLocation) *models.RequestLocation {
	if loc == nil || s.geocoder == nil {
		return loc
	}

	hasPoint := loc.Lat != 0 || loc.Lon != 0
	switch {
	case !hasPoint && loc.Address != "":
		result, err := s.geocoder.Geocode(ctx, loc.Address)
		if err != nil {
			s.logger.WithError(err).WithField("address", loc.Address).Warn("Geocoding failed")
			return loc
		}
		loc.Lat = result.Coordinates.Latitude
		loc.Lon = result.Coordinates.Longitude

	case hasPoint && loc.Address == "":
		result, err := s.geocoder.ReverseGeocode(ctx, loc.Lat, loc.Lon)
		if err != nil {
			s.logger.WithError(err).Debug("Reverse geocoding failed")
			return loc
		}
		loc.Address = result.Address
	}

	return loc
}

func (s *rentalRequestService) ListRequests(ctx context.Context, category, status, sortBy string) ([]*models.RentalRequestDetails, int64, error) {
	filter := &models.RentalRequestFilter{
		Statuses: []models.RentalRequestStatus{models.RentalRequestOpen, models.RentalRequestClosed},
		Category: category,
		SortBy:   sortBy,
		Limit:    utils.MaxRequestListLimit,
	}
	if st := models.RentalRequestStatus(status); st.IsValid() {
		filter.Statuses = []models.RentalRequestStatus{st}
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]primitive.ObjectID, len(requests))
	for i, r := range requests {
		ids[i] = r.RequesterID
	}
	requesters, err := publicUsers(ctx, s.userRepo, ids)
	if err != nil {
		return nil, 0, err
	}

	details := make([]*models.RentalRequestDetails, len(requests))
	for i, r := range requests {
		details[i] = &models.RentalRequestDetails{RentalRequest: r, Requester: requesters[r.RequesterID]}
	}

	return details, total, nil
}

func (s *rentalRequestService) GetMyRequests(ctx context.Context, requesterID primitive.ObjectID) ([]*models.RentalRequest, error) {
	return s.requestRepo.GetByRequester(ctx, requesterID)
}

func (s *rentalRequestService) GetRequest(ctx context.Context, id primitive.ObjectID) (*models.RentalRequestDetails, error) {
	rental, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, utils.ErrRequestNotFound)
	}

	details := &models.RentalRequestDetails{RentalRequest: rental}

	requester, err := s.userRepo.GetByID(ctx, rental.RequesterID)
	if err == nil {
		details.Requester = requester.Public()
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	if len(rental.Offers) > 0 {
		offers, err := s.bookingRepo.GetByIDs(ctx, rental.Offers)
		if err != nil {
			return nil, err
		}
		details.OfferDetails = offers
	}

	return details, nil
}

func (s *rentalRequestService) CloseRequest(ctx context.Context, userID, id primitive.ObjectID, request *validators.CloseRentalRequestRequest) (*models.RentalRequest, error) {
	if err := validators.ValidateCloseRentalRequest(request); err != nil {
		return nil, err
	}

	rental, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, utils.ErrRequestNotFound)
	}
	if rental.RequesterID != userID {
		return nil, utils.NewForbiddenError("You can only close your own requests")
	}

	if err := s.requestRepo.UpdateStatus(ctx, id, request.Status); err != nil {
		return nil, notFound(err, utils.ErrRequestNotFound)
	}
	rental.Status = request.Status

	return rental, nil
}

func (s *rentalRequestService) DeleteRequest(ctx context.Context, userID, id primitive.ObjectID) error {
	rental, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, utils.ErrRequestNotFound)
	}
	if rental.RequesterID != userID {
		return utils.NewForbiddenError("You can only delete your own requests")
	}
	if rental.Status != models.RentalRequestOpen {
		return utils.NewBadRequestError("Can only delete open requests")
	}

	return notFound(s.requestRepo.Delete(ctx, id), utils.ErrRequestNotFound)
}
