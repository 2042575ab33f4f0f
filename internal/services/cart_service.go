package services

import (
	"context"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/internal/utils"
	"rentit/internal/validators"
	"rentit/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartService interface {
	AddToCart(ctx context.Context, userID primitive.ObjectID, request *validators.CartAddRequest) (models.CartData, error)
	UpdateCart(ctx context.Context, userID primitive.ObjectID, request *validators.CartUpdateRequest) (models.CartData, error)
	GetCart(ctx context.Context, userID primitive.ObjectID) (models.CartData, error)
}

type cartService struct {
	userRepo interfaces.UserRepository
	itemRepo interfaces.ItemRepository
	logger   *logger.Logger
}

func NewCartService(userRepo interfaces.UserRepository, itemRepo interfaces.ItemRepository, logger *logger.Logger) CartService {
	return &cartService{
		userRepo: userRepo,
		itemRepo: itemRepo,
		logger:   logger,
	}
}

func (s *cartService) AddToCart(ctx context.Context, userID primitive.ObjectID, request *validators.CartAddRequest) (models.CartData, error) {
	if err := validators.ValidateCartAdd(request); err != nil {
		return nil, err
	}

	itemID, _ := primitive.ObjectIDFromHex(request.ItemID)
	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return nil, notFound(err, utils.ErrItemNotFound)
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cart[request.ItemID] == nil {
		cart[request.ItemID] = map[string]int{}
	}
	cart[request.ItemID][request.Variant]++

	if err := s.userRepo.SetCart(ctx, userID, cart); err != nil {
		return nil, notFound(err, utils.ErrUserNotFound)
	}

	return cart, nil
}

func (s *cartService) UpdateCart(ctx context.Context, userID primitive.ObjectID, request *validators.CartUpdateRequest) (models.CartData, error) {
	if err := validators.ValidateCartUpdate(request); err != nil {
		return nil, err
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if request.Quantity == 0 {
		if variants, ok := cart[request.ItemID]; ok {
			delete(variants, request.Variant)
			if len(variants) == 0 {
				delete(cart, request.ItemID)
			}
		}
	} else {
		if cart[request.ItemID] == nil {
			cart[request.ItemID] = map[string]int{}
		}
		cart[request.ItemID][request.Variant] = request.Quantity
	}

	if err := s.userRepo.SetCart(ctx, userID, cart); err != nil {
		return nil, notFound(err, utils.ErrUserNotFound)
	}

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, userID primitive.ObjectID) (models.CartData, error) {
	cart, err := s.userRepo.GetCart(ctx, userID)
	if err != nil {
		return nil, notFound(err, utils.ErrUserNotFound)
	}
	if cart == nil {
		cart = models.CartData{}
	}
	return cart, nil
}
