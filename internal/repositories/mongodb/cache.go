package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"rentit/internal/repositories/interfaces"
)

// CacheService is the read-through cache used by repositories. A nil cache
// disables caching.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// mapError translates driver errors into repository errors.
func mapError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return interfaces.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return interfaces.ErrDuplicate
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor, what string) ([]*T, error) {
	defer cursor.Close(ctx)

	results := make([]*T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", what, err)
		}
		results = append(results, &doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", what, err)
	}

	return results, nil
}
