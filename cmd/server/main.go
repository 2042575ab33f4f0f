package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rentit/internal/config"
	"rentit/internal/handlers/admin"
	handlers "rentit/internal/handlers/shared"
	"rentit/internal/middleware"
	"rentit/internal/repositories/mongodb"
	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/pkg/cache"
	"rentit/pkg/database"
	"rentit/pkg/email"
	"rentit/pkg/logger"
	"rentit/pkg/maps"
	"rentit/pkg/payment"
	"rentit/pkg/storage"
	"rentit/pkg/websocket"
	"rentit/routes"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		Colors:     cfg.IsDevelopment(),
		AppName:    cfg.App.Name,
		Version:    cfg.App.Version,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   true,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if err := run(cfg, appLogger); err != nil {
		appLogger.WithError(err).Fatal("Server stopped")
	}
}

func run(cfg *config.Config, appLogger *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	appLogger.Info("DB Connected")

	if cfg.Database.RunMigrations {
		if err := database.NewMigrator(db.Database, appLogger).Up(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Redis is optional. Without it the process caches nothing, counts login
	// attempts in memory and delivers notifications to its own sockets only.
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return err
		}
		defer redisCache.Close()
		appLogger.Info("Redis Connected")
	}

	var (
		repoCache    mongodb.CacheService
		counter      cache.Counter = cache.NewMemoryCounter()
		publisher    services.Publisher
		requestLimit middleware.RateLimiter = cache.NewTokenBuckets(cfg.Security.RateLimitPerMinute)
	)
	if redisCache != nil {
		repoCache = redisCache
		counter = redisCache
		publisher = redisCache
		requestLimit = cache.NewWindowLimiter(redisCache, "ratelimit", cfg.Security.RateLimitPerMinute, time.Minute)
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database, repoCache)
	itemRepo := mongodb.NewItemRepository(db.Database, repoCache)
	requestRepo := mongodb.NewRentalRequestRepository(db.Database)
	bookingRepo := mongodb.NewBookingRepository(db.Database)
	ratingRepo := mongodb.NewRatingRepository(db.Database)
	orderRepo := mongodb.NewOrderRepository(db.Database)

	// External providers
	storageProvider, err := storage.NewProvider(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	geocoder, err := maps.NewGeocoder(cfg.Maps, appLogger)
	if err != nil {
		return err
	}

	var checkout payment.CheckoutProvider
	if cfg.Payment.StripeEnabled() {
		checkout = payment.NewStripeProvider(cfg.Payment.Stripe.SecretKey, cfg.Payment.Stripe.WebhookSecret, appLogger)
	} else {
		appLogger.Warn("Stripe not configured, online checkout disabled")
	}

	var mailer services.Mailer
	if m := email.NewMailer(cfg.SMTP, appLogger); m.Enabled() {
		mailer = m
	}

	hub := websocket.NewHub(appLogger)
	go hub.Run(ctx)
	if redisCache != nil {
		go hub.ListenRedis(ctx, redisCache.Subscribe(ctx, websocket.NotificationChannel))
	}

	// Services
	uploadService := services.NewUploadService(storageProvider, cfg.Storage.MaxImages, appLogger)
	notificationService := services.NewNotificationService(hub, publisher, mailer, appLogger)
	authService := services.NewAuthService(
		userRepo,
		cache.NewWindowLimiter(counter, "login", cfg.Security.MaxLoginAttempts, cfg.Security.LoginLockoutTime),
		services.AuthConfig{
			Tokens: utils.TokenConfig{
				Secret:     cfg.Security.JWTSecret,
				AccessTTL:  cfg.Security.JWTAccessTokenTTL,
				RefreshTTL: cfg.Security.JWTRefreshTokenTTL,
			},
			PasswordMinLength: cfg.Security.PasswordMinLength,
			AdminEmail:        cfg.Admin.Email,
			AdminPassword:     cfg.Admin.Password,
		},
		appLogger,
	)
	userService := services.NewUserService(userRepo, uploadService, appLogger)
	itemService := services.NewItemService(itemRepo, userRepo, bookingRepo, uploadService, geocoder, appLogger)
	requestService := services.NewRentalRequestService(requestRepo, userRepo, bookingRepo, geocoder, appLogger)
	bookingService := services.NewBookingService(bookingRepo, itemRepo, userRepo, requestRepo, notificationService, appLogger)
	ratingService := services.NewRatingService(ratingRepo, userRepo, notificationService, appLogger)
	cartService := services.NewCartService(userRepo, itemRepo, appLogger)
	orderService := services.NewOrderService(orderRepo, itemRepo, userRepo, checkout, notificationService, services.OrderConfig{
		TaxRate:     cfg.Order.TaxRate,
		ShippingFee: cfg.Order.ShippingFee,
		Currency:    cfg.Payment.Currency,
		FrontendURL: cfg.App.FrontendURL,
	}, appLogger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	// Global middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.RecoveryMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RateLimitMiddleware(requestLimit, appLogger))

	if cfg.Storage.Provider == config.StorageProviderLocal {
		router.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	api := router.Group("/api")
	routes.SetupAPIRoutes(api, &routes.Handlers{
		User:          handlers.NewUserHandler(authService, userService),
		Item:          handlers.NewItemHandler(itemService),
		RentalRequest: handlers.NewRentalRequestHandler(requestService),
		Booking:       handlers.NewBookingHandler(bookingService),
		Rating:        handlers.NewRatingHandler(ratingService),
		Cart:          handlers.NewCartHandler(cartService),
		Order:         handlers.NewOrderHandler(orderService),
		AdminOrder:    admin.NewOrderHandler(orderService),
		WebSocket:     websocket.NewHandler(hub, cfg.Security.CORSAllowedOrigins),
	}, cfg.Security.JWTSecret)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API working")
	})
	router.NoRoute(middleware.NotFoundHandler())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		checks := gin.H{"mongodb": "up"}

		if err := db.Ping(c.Request.Context()); err != nil {
			checks["mongodb"] = "down"
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		if redisCache != nil {
			checks["redis"] = "up"
			if err := redisCache.Ping(c.Request.Context()); err != nil {
				checks["redis"] = "down"
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":  status,
			"version": cfg.App.Version,
			"checks":  checks,
		})
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Infof("Server started on http://localhost:%d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	err = server.Shutdown(shutdownCtx)
	notificationService.Wait()
	return err
}
