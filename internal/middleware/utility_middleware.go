package middleware

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentit/internal/utils"
	"rentit/pkg/logger"
)

// CORSMiddleware configures CORS headers
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		// credentials cannot be combined with a wildcard origin
		config.AllowAllOrigins = true
		config.AllowCredentials = false
	} else {
		config.AllowOrigins = allowedOrigins
	}

	return cors.New(config)
}

// RequestIDMiddleware adds a request ID to each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(utils.ContextRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// LoggingMiddleware writes one structured entry per request
func LoggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := log
		if requestID := c.GetString(utils.ContextRequestID); requestID != "" {
			entry = entry.WithRequestID(requestID)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		if id, ok := GetUserID(c); ok {
			entry.LogAPIRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start), &id)
			return
		}
		entry.LogAPIRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start), nil)
	}
}

// RecoveryMiddleware turns panics into a 500 envelope and logs them
func RecoveryMiddleware(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithContext(c.Request.Context()).
			WithField("panic", recovered).
			WithField("path", c.Request.URL.Path).
			Error("Recovered from panic")
		utils.InternalServerErrorResponse(c)
		c.Abort()
	})
}

// RateLimiter decides whether the caller identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimitMiddleware limits requests per client IP. Limiter errors let the
// request through.
func RateLimitMiddleware(limiter RateLimiter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.WithError(err).Warn("Rate limiter unavailable")
			c.Next()
			return
		}

		if !allowed {
			log.LogSecurityEvent("rate_limited", "low", map[string]interface{}{
				"ip":   c.ClientIP(),
				"path": c.Request.URL.Path,
			})
			c.Header("Retry-After", "60")
			utils.TooManyRequestsResponse(c, utils.ErrTooManyRequests)
			c.Abort()
			return
		}

		c.Next()
	}
}

// NotFoundHandler answers unmatched routes with the standard error envelope.
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.NotFoundResponse(c, "Route not found")
	}
}
