package utils

import "time"

const (
	AppName    = "RentIt"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128
	LoginRateLimit     = 5
	LoginLockoutWindow = 15 * time.Minute

	// Listings
	DefaultSearchRadiusMeters = 5000.0
	DefaultRequestRadiusKM    = 25.0
	MaxRequestListLimit       = 100

	// File upload
	MaxImageSize       = 5 * 1024 * 1024 // 5MB
	MaxImagesPerItem   = 6
	ThumbnailMaxWidth  = 300
	ThumbnailMaxHeight = 300
	ThumbnailQuality   = 85
	ThumbnailPrefix    = "thumbs/"

	// Cache TTLs
	ItemCacheTTL = 10 * time.Minute
	UserCacheTTL = 15 * time.Minute
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "Invalid credentials"
	ErrUserNotFound       = "User not found"
	ErrUserExists         = "User already exists"
	ErrInvalidToken       = "invalid token"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "Not Authorized Login Again"
	ErrForbidden          = "forbidden"
	ErrValidationFailed   = "validation failed"
	ErrFileUploadFailed   = "file upload failed"
	ErrPaymentFailed      = "payment failed"
	ErrItemNotFound       = "Item not found"
	ErrRequestNotFound    = "Request not found"
	ErrBookingNotFound    = "Booking not found"
	ErrRatingNotFound     = "Rating not found"
	ErrOrderNotFound      = "Order not found"
	ErrNotOwner           = "Not owner"
	ErrTooManyAttempts    = "Too many login attempts, try again later"
	ErrTooManyRequests    = "Too many requests"
)

// Cache Keys
const (
	CacheUserPrefix      = "user:"
	CacheItemPrefix      = "item:"
	CacheRateLimitPrefix = "rate_limit:"
	CacheLoginPrefix     = "login_attempts:"
)

// Context keys set by middleware
const (
	ContextUserID    = "user_id"
	ContextUserRole  = "user_role"
	ContextRequestID = "request_id"
)

var AllowedImageTypes = []string{"jpg", "jpeg", "png", "gif", "webp"}

const EarthRadiusKM = 6371.0
