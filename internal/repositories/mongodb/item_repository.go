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

// earthRadiusMeters converts a distance into radians for $centerSphere.
const earthRadiusMeters = 6378100.0

type itemRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewItemRepository(db *mongo.Database, cache CacheService) interfaces.ItemRepository {
	return &itemRepository{
		collection: db.Collection(database.CollectionItems),
		cache:      cache,
	}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	prepareItem(item)

	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return mapError(err, "create item")
	}

	return nil
}

func (r *itemRepository) CreateMany(ctx context.Context, items []*models.Item) error {
	if len(items) == 0 {
		return nil
	}

	docs := make([]interface{}, len(items))
	for i, item := range items {
		prepareItem(item)
		docs[i] = item
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return mapError(err, "create items")
	}

	return nil
}

func prepareItem(item *models.Item) {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	if item.Images == nil {
		item.Images = []string{}
	}
}

func (r *itemRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error) {
	if r.cache != nil {
		var cached models.Item
		if err := r.cache.Get(ctx, utils.CacheItemPrefix+id.Hex(), &cached); err == nil {
			return &cached, nil
		}
	}

	var item models.Item
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, mapError(err, "get item")
	}

	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheItemPrefix+id.Hex(), &item, utils.ItemCacheTTL)
	}

	return &item, nil
}

func (r *itemRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Item, error) {
	items := make(map[primitive.ObjectID]*models.Item, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find items: %w", err)
	}

	list, err := decodeAll[models.Item](ctx, cursor, "item")
	if err != nil {
		return nil, err
	}
	for _, item := range list {
		items[item.ID] = item
	}

	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return mapError(err, "update item")
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err, "delete item")
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *itemRepository) DeleteByTitlePattern(ctx context.Context, pattern string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"title": bson.M{"$regex": pattern}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete items: %w", err)
	}

	return result.DeletedCount, nil
}

func (r *itemRepository) ListAvailable(ctx context.Context, filter *models.ItemFilter, params *utils.PaginationParams) ([]*models.Item, int64, error) {
	query := buildItemQuery(filter)
	countQuery := bson.M{}
	for k, v := range query {
		countQuery[k] = v
	}

	opts := options.Find().
		SetSkip(int64(params.GetSkip())).
		SetLimit(int64(params.GetLimit()))

	if filter.HasLocation() {
		point := bson.M{"type": "Point", "coordinates": []float64{*filter.Longitude, *filter.Latitude}}
		query["location"] = bson.M{"$near": bson.M{
			"$geometry":    point,
			"$maxDistance": filter.RadiusMeters,
		}}
		// $near is not allowed in count queries.
		countQuery["location"] = bson.M{"$geoWithin": bson.M{
			"$centerSphere": bson.A{
				[]float64{*filter.Longitude, *filter.Latitude},
				filter.RadiusMeters / earthRadiusMeters,
			},
		}}
	} else {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	total, err := r.collection.CountDocuments(ctx, countQuery)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find items: %w", err)
	}

	items, err := decodeAll[models.Item](ctx, cursor, "item")
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func buildItemQuery(filter *models.ItemFilter) bson.M {
	query := bson.M{"available": true}

	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	if filter.PriceUnit != "" {
		query["price_unit"] = filter.PriceUnit
	}

	if filter.Search != "" {
		search := utils.NewPaginationParams(1, utils.DefaultPageSize, "", "", filter.Search)
		for k, v := range search.GetSearchFilter([]string{"title", "description"}) {
			query[k] = v
		}
	}

	return query
}

func (r *itemRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find owner items: %w", err)
	}

	return decodeAll[models.Item](ctx, cursor, "item")
}

func (r *itemRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheItemPrefix+id.Hex())
	}
}
