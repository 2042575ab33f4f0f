package services

import (
	"context"
	"errors"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/internal/utils"
	"rentit/internal/validators"
	"rentit/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingService interface {
	CreateRating(ctx context.Context, fromUserID primitive.ObjectID, request *validators.CreateRatingRequest) (*models.Rating, error)
	GetUserRatings(ctx context.Context, userID primitive.ObjectID) ([]*models.RatingWithUser, error)
	GetGivenRatings(ctx context.Context, userID primitive.ObjectID) ([]*models.RatingWithUser, error)
	CheckRating(ctx context.Context, query *validators.CheckRatingQuery) (*models.Rating, error)
	GetRatingSummary(ctx context.Context, userID primitive.ObjectID) (*models.RatingSummary, error)
}

type ratingService struct {
	ratingRepo    interfaces.RatingRepository
	userRepo      interfaces.UserRepository
	notifications NotificationService
	logger        *logger.Logger
}

func NewRatingService(
	ratingRepo interfaces.RatingRepository,
	userRepo interfaces.UserRepository,
	notifications NotificationService,
	logger *logger.Logger,
) RatingService {
	return &ratingService{
		ratingRepo:    ratingRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *ratingService) CreateRating(ctx context.Context, fromUserID primitive.ObjectID, request *validators.CreateRatingRequest) (*models.Rating, error) {
	if err := validators.ValidateCreateRating(request); err != nil {
		return nil, err
	}

	if request.FromUserID != "" && request.FromUserID != fromUserID.Hex() {
		return nil, utils.NewForbiddenError("You can only submit ratings as yourself")
	}

	toUserID, err := parseObjectID(request.ToUserID, "Invalid user ID")
	if err != nil {
		return nil, err
	}
	orderID, err := parseObjectID(request.OrderID, "Invalid order ID")
	if err != nil {
		return nil, err
	}
	if toUserID == fromUserID {
		return nil, utils.NewBadRequestError("You cannot rate yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, toUserID); err != nil {
		return nil, notFound(err, utils.ErrUserNotFound)
	}

	rating, err := s.ratingRepo.Upsert(ctx, &models.Rating{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		OrderID:    orderID,
		Rating:     request.Rating,
		Comment:    request.Comment,
		RatingType: request.RatingType,
	})
	if err != nil {
		s.logger.WithError(err).WithUserID(fromUserID).Error("Failed to save rating")
		return nil, err
	}

	// The aggregate is best effort; a failed refresh is corrected by the
	// next rating.
	stats, err := s.ratingRepo.GetStats(ctx, toUserID)
	if err == nil {
		err = s.userRepo.UpdateRatingStats(ctx, toUserID, stats)
	}
	if err != nil {
		s.logger.WithError(err).WithUserID(toUserID).Error("Failed to refresh rating aggregate")
	}

	s.notifications.Notify(ctx, toUserID, models.NotificationRatingReceived, map[string]interface{}{
		"rating_id":    rating.ID.Hex(),
		"from_user_id": fromUserID.Hex(),
		"rating":       rating.Rating,
		"rating_type":  rating.RatingType,
	})

	return rating, nil
}

func (s *ratingService) GetUserRatings(ctx context.Context, userID primitive.ObjectID) ([]*models.RatingWithUser, error) {
	ratings, err := s.ratingRepo.GetByRatedID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withUsers(ctx, ratings)
}

func (s *ratingService) GetGivenRatings(ctx context.Context, userID primitive.ObjectID) ([]*models.RatingWithUser, error) {
	ratings, err := s.ratingRepo.GetByRaterID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withUsers(ctx, ratings)
}

func (s *ratingService) CheckRating(ctx context.Context, query *validators.CheckRatingQuery) (*models.Rating, error) {
	if err := validators.ValidateCheckRating(query); err != nil {
		return nil, err
	}

	fromID, _ := primitive.ObjectIDFromHex(query.FromUserID)
	toID, _ := primitive.ObjectIDFromHex(query.ToUserID)
	orderID, _ := primitive.ObjectIDFromHex(query.OrderID)

	rating, err := s.ratingRepo.Find(ctx, fromID, toID, orderID)
	if err != nil {
		return nil, notFound(err, utils.ErrRatingNotFound)
	}
	return rating, nil
}

func (s *ratingService) GetRatingSummary(ctx context.Context, userID primitive.ObjectID) (*models.RatingSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewNotFoundError(utils.ErrUserNotFound)
		}
		return nil, err
	}

	return &models.RatingSummary{
		UserID:        user.ID,
		Name:          user.Name,
		Email:         user.Email,
		ProfileImage:  user.ProfileImage,
		Bio:           user.Bio,
		AverageRating: user.AverageRating,
		TotalRatings:  user.TotalRatings,
	}, nil
}

func (s *ratingService) withUsers(ctx context.Context, ratings []*models.Rating) ([]*models.RatingWithUser, error) {
	ids := make([]primitive.ObjectID, 0, len(ratings)*2)
	for _, r := range ratings {
		ids = append(ids, r.FromUserID, r.ToUserID)
	}

	users, err := publicUsers(ctx, s.userRepo, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*models.RatingWithUser, len(ratings))
	for i, r := range ratings {
		result[i] = &models.RatingWithUser{Rating: r, FromUser: users[r.FromUserID], ToUser: users[r.ToUserID]}
	}
	return result, nil
}
