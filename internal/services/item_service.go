package services

import (
	"context"
	"errors"
	"mime/multipart"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/internal/utils"
	"rentit/internal/validators"
	"rentit/pkg/logger"
	"rentit/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ItemService interface {
	ListItems(ctx context.Context, filter *models.ItemFilter, params *utils.PaginationParams) ([]*models.ItemDetails, int64, error)
	CreateItem(ctx context.Context, ownerID primitive.ObjectID, request *validators.CreateItemRequest) (*models.Item, error)
	CreateItemWithImages(ctx context.Context, ownerID primitive.ObjectID, request *validators.CreateItemRequest, files []*multipart.FileHeader) (*models.Item, error)
	UploadImages(ctx context.Context, ownerID primitive.ObjectID, files []*multipart.FileHeader) ([]string, error)
	GetMyItems(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Item, error)
	GetItem(ctx context.Context, id primitive.ObjectID) (*models.ItemDetails, error)
	UpdateItem(ctx context.Context, ownerID, id primitive.ObjectID, request *validators.UpdateItemRequest) (*models.Item, error)
	DeleteItem(ctx context.Context, ownerID, id primitive.ObjectID) error
}

type itemService struct {
	itemRepo    interfaces.ItemRepository
	userRepo    interfaces.UserRepository
	bookingRepo interfaces.BookingRepository
	uploads     UploadService
	geocoder    maps.Geocoder
	logger      *logger.Logger
}

// NewItemService wires the item rules. geocoder may be nil, in which case
// an address alone is not enough to place an item.
func NewItemService(
	itemRepo interfaces.ItemRepository,
	userRepo interfaces.UserRepository,
	bookingRepo interfaces.BookingRepository,
	uploads UploadService,
	geocoder maps.Geocoder,
	logger *logger.Logger,
) ItemService {
	return &itemService{
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		uploads:     uploads,
		geocoder:    geocoder,
		logger:      logger,
	}
}

func (s *itemService) ListItems(ctx context.Context, filter *models.ItemFilter, params *utils.PaginationParams) ([]*models.ItemDetails, int64, error) {
	if filter.HasLocation() && filter.RadiusMeters <= 0 {
		filter.RadiusMeters = utils.DefaultSearchRadiusMeters
	}

	items, total, err := s.itemRepo.ListAvailable(ctx, filter, params)
	if err != nil {
		return nil, 0, err
	}

	details, err := s.withOwners(ctx, items)
	if err != nil {
		return nil, 0, err
	}

	if filter.HasLocation() {
		for _, d := range details {
			km := utils.RoundTo(utils.CalculateDistance(*filter.Latitude, *filter.Longitude,
				d.Location.Latitude(), d.Location.Longitude()), 2)
			d.DistanceKm = &km
		}
	}

	return details, total, nil
}

func (s *itemService) CreateItem(ctx context.Context, ownerID primitive.ObjectID, request *validators.CreateItemRequest) (*models.Item, error) {
	if err := validators.ValidateCreateItem(request); err != nil {
		return nil, err
	}

	location, address, err := s.resolveLocation(ctx, request.Coordinates, request.Address)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		Title:       request.Title,
		Description: request.Description,
		OwnerID:     ownerID,
		Price:       request.Price,
		PriceUnit:   request.PriceUnit,
		Images:      request.Images,
		Remarks:     request.Remarks,
		Location:    location,
		Address:     address,
		Available:   true,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		s.logger.WithError(err).WithUserID(ownerID).Error("Failed to create item")
		return nil, err
	}

	s.logger.WithItemID(item.ID).WithUserID(ownerID).Info("Item listed")

	return item, nil
}

func (s *itemService) CreateItemWithImages(ctx context.Context, ownerID primitive.ObjectID, request *validators.CreateItemRequest, files []*multipart.FileHeader) (*models.Item, error) {
	if err := validators.ValidateCreateItem(request); err != nil {
		return nil, err
	}

	urls, err := s.UploadImages(ctx, ownerID, files)
	if err != nil {
		return nil, err
	}
	request.Images = append(request.Images, urls...)

	return s.CreateItem(ctx, ownerID, request)
}

func (s *itemService) UploadImages(ctx context.Context, ownerID primitive.ObjectID, files []*multipart.FileHeader) ([]string, error) {
	return s.uploads.UploadImages(ctx, files, "items/"+ownerID.Hex())
}

func (s *itemService) GetMyItems(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Item, error) {
	return s.itemRepo.GetByOwner(ctx, ownerID)
}

func (s *itemService) GetItem(ctx context.Context, id primitive.ObjectID) (*models.ItemDetails, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, utils.ErrItemNotFound)
	}

	details := &models.ItemDetails{Item: item}
	owner, err := s.userRepo.GetByID(ctx, item.OwnerID)
	if err == nil {
		details.Owner = owner.Public()
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	return details, nil
}

func (s *itemService) UpdateItem(ctx context.Context, ownerID, id primitive.ObjectID, request *validators.UpdateItemRequest) (*models.Item, error) {
	if err := validators.ValidateUpdateItem(request); err != nil {
		return nil, err
	}

	item, err := s.ownedItem(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if request.Title != nil {
		updates["title"] = validators.SanitizeInput(*request.Title)
	}
	if request.Description != nil {
		updates["description"] = *request.Description
	}
	if request.Price != nil {
		updates["price"] = *request.Price
	}
	if request.PriceUnit != nil {
		updates["price_unit"] = *request.PriceUnit
	}
	if request.Images != nil {
		updates["images"] = request.Images
	}
	if request.Remarks != nil {
		updates["remarks"] = *request.Remarks
	}
	if request.Available != nil {
		updates["available"] = *request.Available
	}

	if len(request.Coordinates) > 0 || request.Address != nil {
		address := item.Address
		if request.Address != nil {
			address = *request.Address
		}
		location, resolved, err := s.resolveLocation(ctx, request.Coordinates, address)
		if err != nil {
			return nil, err
		}
		updates["location"] = location
		updates["address"] = resolved
	}

	if len(updates) > 0 {
		if err := s.itemRepo.Update(ctx, id, updates); err != nil {
			return nil, notFound(err, utils.ErrItemNotFound)
		}
	}

	updated, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, utils.ErrItemNotFound)
	}

	return updated, nil
}

func (s *itemService) DeleteItem(ctx context.Context, ownerID, id primitive.ObjectID) error {
	if _, err := s.ownedItem(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return notFound(err, utils.ErrItemNotFound)
	}

	cancelled, err := s.bookingRepo.CancelPendingForItem(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithItemID(id).Error("Failed to cancel pending bookings for deleted item")
	} else if cancelled > 0 {
		s.logger.WithItemID(id).WithField("cancelled", cancelled).Info("Cancelled pending bookings for deleted item")
	}

	return nil
}

func (s *itemService) ownedItem(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, utils.ErrItemNotFound)
	}
	if item.OwnerID != ownerID {
		return nil, utils.NewForbiddenError(utils.ErrNotOwner)
	}
	return item, nil
}

// resolveLocation prefers explicit [lng, lat] coordinates and falls back to
// geocoding the address.
func (s *itemService) resolveLocation(ctx context.Context, coordinates []float64, address string) (models.Location, string, error) {
	if len(coordinates) == 2 {
		location := models.NewPoint(coordinates[0], coordinates[1])
		if !location.IsValid() {
			return models.Location{}, "", utils.NewBadRequestError(utils.ErrInvalidCoordinates.Error())
		}
		return location, address, nil
	}

	if address != "" && s.geocoder != nil {
		result, err := s.geocoder.Geocode(ctx, address)
		if err == nil {
			return models.NewPoint(result.Coordinates.Longitude, result.Coordinates.Latitude), result.Address, nil
		}
		s.logger.WithError(err).WithField("address", address).Warn("Geocoding failed")
	}

	return models.Location{}, "", utils.NewBadRequestError("Coordinates are required")
}

func (s *itemService) withOwners(ctx context.Context, items []*models.Item) ([]*models.ItemDetails, error) {
	ids := make([]primitive.ObjectID, len(items))
	for i, item := range items {
		ids[i] = item.OwnerID
	}

	owners, err := publicUsers(ctx, s.userRepo, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*models.ItemDetails, len(items))
	for i, item := range items {
		details[i] = &models.ItemDetails{Item: item, Owner: owners[item.OwnerID]}
	}
	return details, nil
}
