package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/internal/utils"
	"rentit/internal/validators"
	"rentit/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, request *validators.RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *validators.LoginRequest) (*AuthResponse, error)
	AdminLogin(ctx context.Context, request *validators.LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
}

// AttemptLimiter tracks failed logins per key.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Exceeded(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

type AuthConfig struct {
	Tokens            utils.TokenConfig
	PasswordMinLength int
	AdminEmail        string
	AdminPassword     string
}

type AuthResponse struct {
	User         *models.User `json:"user,omitempty"`
	Token        string       `json:"token"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
}

type authService struct {
	userRepo     interfaces.UserRepository
	loginLimiter AttemptLimiter
	config       AuthConfig
	logger       *logger.Logger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	loginLimiter AttemptLimiter,
	config AuthConfig,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		loginLimiter: loginLimiter,
		config:       config,
		logger:       logger,
	}
}

func (s *authService) Register(ctx context.Context, request *validators.RegisterRequest) (*AuthResponse, error) {
	if err := validators.ValidateRegister(request, s.config.PasswordMinLength); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, request.Email); err == nil {
		return nil, utils.NewConflictError(utils.ErrUserExists)
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := hashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     request.Name,
		Email:    request.Email,
		Password: hashedPassword,
		CartData: models.CartData{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, utils.NewConflictError(utils.ErrUserExists)
		}
		s.logger.WithError(err).Error("Failed to create user")
		return nil, err
	}

	s.logger.LogUserAction(user.ID, "register", nil)

	return s.issueTokens(user, string(models.UserRoleUser))
}

func (s *authService) Login(ctx context.Context, request *validators.LoginRequest) (*AuthResponse, error) {
	if err := validators.ValidateLogin(request); err != nil {
		return nil, err
	}

	if s.loginLimiter != nil {
		exceeded, err := s.loginLimiter.Exceeded(ctx, request.Email)
		if err != nil {
			s.logger.WithError(err).Warn("Login limiter unavailable")
		}
		if exceeded {
			s.logger.LogSecurityEvent("login_locked", "medium", map[string]interface{}{"email": request.Email})
			return nil, utils.NewTooManyRequestsError(utils.ErrTooManyAttempts)
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewNotFoundError("User doesn't exist")
		}
		return nil, err
	}

	if !checkPassword(request.Password, user.Password) {
		s.recordFailedLoginAttempt(ctx, request.Email)
		return nil, utils.NewUnauthorizedError(utils.ErrInvalidCredentials)
	}

	if s.loginLimiter != nil {
		if err := s.loginLimiter.Reset(ctx, request.Email); err != nil {
			s.logger.WithError(err).Warn("Failed to reset login attempts")
		}
	}

	s.logger.LogUserAction(user.ID, "login", nil)

	return s.issueTokens(user, string(models.UserRoleUser))
}

// AdminLogin checks the configured back-office credentials. There is no
// admin document; the token carries a nil user ID.
func (s *authService) AdminLogin(ctx context.Context, request *validators.LoginRequest) (*AuthResponse, error) {
	if err := validators.ValidateLogin(request); err != nil {
		return nil, err
	}

	adminEmail := utils.NormalizeEmail(s.config.AdminEmail)
	if adminEmail == "" || s.config.AdminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(request.Email), []byte(adminEmail)) != 1 ||
		subtle.ConstantTimeCompare([]byte(request.Password), []byte(s.config.AdminPassword)) != 1 {
		s.logger.LogSecurityEvent("admin_login_failed", "high", map[string]interface{}{"email": request.Email})
		return nil, utils.NewUnauthorizedError(utils.ErrInvalidCredentials)
	}

	pair, err := utils.GenerateTokenPair(primitive.NilObjectID, string(models.UserRoleAdmin), adminEmail, s.config.Tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return newAuthResponse(nil, pair), nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	pair, err := utils.RefreshAccessToken(refreshToken, s.config.Tokens)
	if err != nil {
		return nil, utils.NewUnauthorizedError(utils.ErrInvalidToken)
	}

	return newAuthResponse(nil, pair), nil
}

func (s *authService) issueTokens(user *models.User, role string) (*AuthResponse, error) {
	pair, err := utils.GenerateTokenPair(user.ID, role, user.Email, s.config.Tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return newAuthResponse(user, pair), nil
}

func newAuthResponse(user *models.User, pair *utils.TokenPair) *AuthResponse {
	return &AuthResponse{
		User:         user,
		Token:        pair.AccessToken,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}
}

func (s *authService) recordFailedLoginAttempt(ctx context.Context, email string) {
	s.logger.LogSecurityEvent("login_failed", "low", map[string]interface{}{"email": email})

	if s.loginLimiter == nil {
		return
	}
	if _, err := s.loginLimiter.Allow(ctx, email); err != nil {
		s.logger.WithError(err).Warn("Failed to record login attempt")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
