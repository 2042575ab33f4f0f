package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rentit/pkg/logger"
)

type Migration struct {
	Version     int
	Description string
	Up          func(context.Context, *mongo.Database) error
	Down        func(context.Context, *mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
	logger     *logger.Logger
}

func NewMigrator(db *mongo.Database, log *logger.Logger) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
		logger:     log,
	}
}

func (m *Migrator) Up(ctx context.Context) error {
	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version <= currentVersion {
			continue
		}

		m.logger.WithField("version", migration.Version).Infof("Running migration: %s", migration.Description)

		if err := migration.Up(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if err := m.updateVersion(ctx, migration.Version); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}
	}

	return nil
}

func (m *Migrator) Down(ctx context.Context, targetVersion int) error {
	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version > currentVersion || migration.Version <= targetVersion {
			continue
		}

		m.logger.WithField("version", migration.Version).Infof("Reverting migration: %s", migration.Description)

		if err := migration.Down(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
		}

		previousVersion := targetVersion
		if i > 0 {
			previousVersion = m.migrations[i-1].Version
		}

		if err := m.updateVersion(ctx, previousVersion); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}
	}

	return nil
}

func (m *Migrator) getCurrentVersion(ctx context.Context) (int, error) {
	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection(CollectionMigrations).FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(ctx context.Context, version int) error {
	_, err := m.db.Collection(CollectionMigrations).ReplaceOne(
		ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updated_at", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)

	return err
}

func dropIndexes(name string) func(context.Context, *mongo.Database) error {
	return func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(name).Indexes().DropAll(ctx)
		return err
	}
}

func createIndexes(name string, indexes []mongo.IndexModel) func(context.Context, *mongo.Database) error {
	return func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(name).Indexes().CreateMany(ctx, indexes)
		return err
	}
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create users indexes",
			Up:          createIndexes(CollectionUsers, usersIndexes()),
			Down:        dropIndexes(CollectionUsers),
		},
		{
			Version:     2,
			Description: "Create items indexes",
			Up:          createIndexes(CollectionItems, itemsIndexes()),
			Down:        dropIndexes(CollectionItems),
		},
		{
			Version:     3,
			Description: "Create rental requests indexes",
			Up:          createIndexes(CollectionRentalRequests, rentalRequestsIndexes()),
			Down:        dropIndexes(CollectionRentalRequests),
		},
		{
			Version:     4,
			Description: "Create bookings indexes",
			Up:          createIndexes(CollectionBookings, bookingsIndexes()),
			Down:        dropIndexes(CollectionBookings),
		},
		{
			Version:     5,
			Description: "Create ratings indexes",
			Up:          createIndexes(CollectionRatings, ratingsIndexes()),
			Down:        dropIndexes(CollectionRatings),
		},
		{
			Version:     6,
			Description: "Create orders indexes",
			Up:          createIndexes(CollectionOrders, ordersIndexes()),
			Down:        dropIndexes(CollectionOrders),
		},
	}
}

func usersIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}
}

func itemsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "available", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "price", Value: 1}},
		},
	}
}

func rentalRequestsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "requester", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "desired_end", Value: 1}},
		},
	}
}

func bookingsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "item", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "requester", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
}

func ratingsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "from_user_id", Value: 1},
				{Key: "to_user_id", Value: 1},
				{Key: "order_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "to_user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "from_user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
}

func ordersIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "stripe_session_id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
}
