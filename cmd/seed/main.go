package main

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"rentit/internal/config"
	"rentit/internal/models"
	"rentit/internal/repositories/mongodb"
	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/internal/validators"
	"rentit/pkg/cache"
	"rentit/pkg/database"
	"rentit/pkg/logger"
)

const demoPassword = "password"

type demoItem struct {
	title       string
	description string
	price       float64
	unit        models.PriceUnit
	lng, lat    float64
}

var demoItems = []demoItem{
	{"Power Drill", "Cordless power drill for home projects", 50, models.PriceUnitHourly, -0.1276, 51.5074},
	{"Ladder (6ft)", "Lightweight aluminum ladder", 10, models.PriceUnitDaily, -0.1276, 51.5075},
	{"Camera Tripod", "Sturdy tripod for DSLR", 15, models.PriceUnitDaily, -0.1275, 51.5076},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.InfoLevel,
		Format:  "text",
		AppName: "rentit-seed",
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seed(ctx, cfg, appLogger); err != nil {
		appLogger.WithError(err).Fatal("Seed failed")
	}
}

func seed(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) error {
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

	if err := database.NewMigrator(db.Database, appLogger).Up(ctx); err != nil {
		return err
	}

	userRepo := mongodb.NewUserRepository(db.Database, nil)
	itemRepo := mongodb.NewItemRepository(db.Database, nil)

	appLogger.Info("Seeding database...")

	titles := make([]string, len(demoItems))
	for i, item := range demoItems {
		titles[i] = regexp.QuoteMeta(item.title)
	}
	removedItems, err := itemRepo.DeleteByTitlePattern(ctx, "^("+strings.Join(titles, "|")+")$|Demo|Test")
	if err != nil {
		return err
	}
	removedUsers, err := userRepo.DeleteByEmailPattern(ctx, "demo|testuser")
	if err != nil {
		return err
	}
	appLogger.WithFields(map[string]interface{}{
		"items": removedItems,
		"users": removedUsers,
	}).Info("Removed previous demo data")

	// Registration goes through the auth service so passwords are hashed
	// exactly as they are for real sign-ups.
	auth := services.NewAuthService(
		userRepo,
		cache.NewWindowLimiter(cache.NewMemoryCounter(), "login", cfg.Security.MaxLoginAttempts, cfg.Security.LoginLockoutTime),
		services.AuthConfig{
			Tokens:            utils.TokenConfig{Secret: cfg.Security.JWTSecret},
			PasswordMinLength: len(demoPassword),
		},
		appLogger,
	)

	lender, err := auth.Register(ctx, &validators.RegisterRequest{Name: "Demo Lender", Email: "demo.lender@example.com", Password: demoPassword})
	if err != nil {
		return err
	}
	if _, err := auth.Register(ctx, &validators.RegisterRequest{Name: "Demo Borrower", Email: "demo.borrower@example.com", Password: demoPassword}); err != nil {
		return err
	}

	now := time.Now()
	items := make([]*models.Item, 0, len(demoItems))
	for _, d := range demoItems {
		items = append(items, &models.Item{
			Title:       d.title,
			Description: d.description,
			OwnerID:     lender.User.ID,
			Price:       d.price,
			PriceUnit:   d.unit,
			Images:      []string{},
			Location:    models.NewPoint(d.lng, d.lat),
			Available:   true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err := itemRepo.CreateMany(ctx, items); err != nil {
		return err
	}

	appLogger.Info("Seed complete. Users:")
	appLogger.Info("  demo.lender@example.com / " + demoPassword)
	appLogger.Info("  demo.borrower@example.com / " + demoPassword)
	return nil
}
