package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

var ErrTokenKind = errors.New("wrong token kind")

type JWTClaims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Role   string             `json:"role"`
	Email  string             `json:"email"`
	Kind   string             `json:"kind"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// TokenConfig carries the signing secret and lifetimes.
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (tc TokenConfig) accessTTL() time.Duration {
	if tc.AccessTTL > 0 {
		return tc.AccessTTL
	}
	return JWTAccessTokenTTL
}

func (tc TokenConfig) refreshTTL() time.Duration {
	if tc.RefreshTTL > 0 {
		return tc.RefreshTTL
	}
	return JWTRefreshTokenTTL
}

func GenerateTokenPair(userID primitive.ObjectID, role, email string, tc TokenConfig) (*TokenPair, error) {
	accessToken, err := signToken(userID, role, email, tokenKindAccess, tc.accessTTL(), tc.Secret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := signToken(userID, role, email, tokenKindRefresh, tc.refreshTTL(), tc.Secret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(tc.accessTTL().Seconds()),
		TokenType:    "Bearer",
	}, nil
}

func signToken(userID primitive.ObjectID, role, email, kind string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID: userID,
		Role:   role,
		Email:  email,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    AppName,
			Subject:   userID.Hex(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(tokenString, secretKey string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New(ErrInvalidToken)
}

// ValidateAccessToken rejects refresh tokens presented as bearer tokens.
func ValidateAccessToken(tokenString, secretKey string) (*JWTClaims, error) {
	claims, err := ValidateToken(tokenString, secretKey)
	if err != nil {
		return nil, err
	}
	if claims.Kind != tokenKindAccess {
		return nil, ErrTokenKind
	}
	return claims, nil
}

func RefreshAccessToken(refreshTokenString string, tc TokenConfig) (*TokenPair, error) {
	claims, err := ValidateToken(refreshTokenString, tc.Secret)
	if err != nil {
		return nil, err
	}
	if claims.Kind != tokenKindRefresh {
		return nil, ErrTokenKind
	}

	return GenerateTokenPair(claims.UserID, claims.Role, claims.Email, tc)
}
