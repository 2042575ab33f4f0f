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

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *validators.UpdateProfileRequest) (*models.User, error)
	UpdateProfileImage(ctx context.Context, userID primitive.ObjectID, file *multipart.FileHeader) (*models.User, error)
	GetPublicProfile(ctx context.Context, userID primitive.ObjectID) (*models.PublicUser, error)
}

type userService struct {
	userRepo interfaces.UserRepository
	uploads  UploadService
	logger   *logger.Logger
}

func NewUserService(userRepo interfaces.UserRepository, uploads UploadService, logger *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		uploads:  uploads,
		logger:   logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, utils.ErrUserNotFound)
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *validators.UpdateProfileRequest) (*models.User, error) {
	if err := validators.ValidateUpdateProfile(request); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if request.Name != nil {
		updates["name"] = *request.Name
	}
	if request.Bio != nil {
		updates["bio"] = *request.Bio
	}
	if request.ProfileImage != nil {
		updates["profile_image"] = *request.ProfileImage
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			return nil, notFound(err, utils.ErrUserNotFound)
		}
		s.logger.LogUserAction(userID, "update_profile", nil)
	}

	return s.GetProfile(ctx, userID)
}

func (s *userService) UpdateProfileImage(ctx context.Context, userID primitive.ObjectID, file *multipart.FileHeader) (*models.User, error) {
	url, err := s.uploads.UploadImage(ctx, file, "profiles/"+userID.Hex())
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"profile_image": url}); err != nil {
		return nil, notFound(err, utils.ErrUserNotFound)
	}

	return s.GetProfile(ctx, userID)
}

func (s *userService) GetPublicProfile(ctx context.Context, userID primitive.ObjectID) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, utils.ErrUserNotFound)
	}

	return user.Public(), nil
}

// notFound turns a repository miss into a 404 with message.
func notFound(err error, message string) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return utils.NewNotFoundError(message)
	}
	return err
}

// publicUsers loads the public profiles for ids, skipping unknown users.
func publicUsers(ctx context.Context, repo interfaces.UserRepository, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.PublicUser, error) {
	users, err := repo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}

	result := make(map[primitive.ObjectID]*models.PublicUser, len(users))
	for id, user := range users {
		result[id] = user.Public()
	}
	return result, nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func parseObjectID(raw, message string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, utils.NewBadRequestError(message)
	}
	return id, nil
}
