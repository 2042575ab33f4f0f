package mongodb

import (
	"context"
	"fmt"
	"time"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/internal/utils"
	"rentit/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewUserRepository(db *mongo.Database, cache CacheService) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection(database.CollectionUsers),
		cache:      cache,
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.CartData == nil {
		user.CartData = models.CartData{}
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return mapError(err, "create user")
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if user := r.getUserFromCache(ctx, id); user != nil {
		return user, nil
	}

	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, mapError(err, "get user")
	}

	r.cacheUser(ctx, &user)

	return &user, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	users := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	list, err := decodeAll[models.User](ctx, cursor, "user")
	if err != nil {
		return nil, err
	}
	for _, user := range list {
		users[user.ID] = user
	}

	return users, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, mapError(err, "get user by email")
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return mapError(err, "update user")
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateUserCache(ctx, id)

	return nil
}

func (r *userRepository) DeleteByEmailPattern(ctx context.Context, pattern string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"email": bson.M{"$regex": pattern}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete users: %w", err)
	}

	return result.DeletedCount, nil
}

func (r *userRepository) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats *models.RatingStats) error {
	return r.Update(ctx, id, map[string]interface{}{
		"average_rating": stats.AverageRating,
		"total_ratings":  stats.TotalRatings,
	})
}

func (r *userRepository) GetCart(ctx context.Context, id primitive.ObjectID) (models.CartData, error) {
	var doc struct {
		CartData models.CartData `bson:"cart_data"`
	}

	opts := options.FindOne().SetProjection(bson.M{"cart_data": 1})
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc); err != nil {
		return nil, mapError(err, "get cart")
	}

	if doc.CartData == nil {
		doc.CartData = models.CartData{}
	}
	return doc.CartData, nil
}

func (r *userRepository) SetCart(ctx context.Context, id primitive.ObjectID, cart models.CartData) error {
	if cart == nil {
		cart = models.CartData{}
	}
	return r.Update(ctx, id, map[string]interface{}{"cart_data": cart})
}

// Cache operations
func (r *userRepository) cacheUser(ctx context.Context, user *models.User) {
	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheUserPrefix+user.ID.Hex(), user, utils.UserCacheTTL)
	}
}

func (r *userRepository) getUserFromCache(ctx context.Context, id primitive.ObjectID) *models.User {
	if r.cache == nil {
		return nil
	}

	var user models.User
	if err := r.cache.Get(ctx, utils.CacheUserPrefix+id.Hex(), &user); err != nil {
		return nil
	}

	return &user
}

func (r *userRepository) invalidateUserCache(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheUserPrefix+id.Hex())
	}
}
