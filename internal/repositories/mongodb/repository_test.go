package mongodb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
)

func TestMapError(t *testing.T) {
	require.NoError(t, mapError(nil, "x"))
	require.ErrorIs(t, mapError(mongo.ErrNoDocuments, "get item"), interfaces.ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	require.ErrorIs(t, mapError(dup, "create user"), interfaces.ErrDuplicate)

	err := mapError(errors.New("socket closed"), "update order")
	require.EqualError(t, err, "failed to update order: socket closed")
}

func TestBuildItemQuery(t *testing.T) {
	min, max := 5.0, 50.0
	query := buildItemQuery(&models.ItemFilter{
		MinPrice:  &min,
		MaxPrice:  &max,
		PriceUnit: models.PriceUnitDaily,
		Search:    "drill (18v)",
	})

	require.Equal(t, true, query["available"])
	require.Equal(t, bson.M{"$gte": 5.0, "$lte": 50.0}, query["price"])
	require.Equal(t, models.PriceUnitDaily, query["price_unit"])

	or, ok := query["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	require.Equal(t, bson.M{"$regex": `drill \(18v\)`, "$options": "i"}, or[0]["title"])
}

func TestBuildItemQueryOnlyAvailable(t *testing.T) {
	require.Equal(t, bson.M{"available": true}, buildItemQuery(&models.ItemFilter{}))
}

func TestRequestSort(t *testing.T) {
	require.Equal(t, bson.D{{Key: "created_at", Value: -1}}, requestSort(""))
	require.Equal(t, bson.D{{Key: "created_at", Value: -1}}, requestSort("newest"))
	require.Equal(t, bson.D{{Key: "created_at", Value: 1}}, requestSort("oldest"))
	require.Equal(t, bson.D{{Key: "desired_end", Value: 1}}, requestSort("expiring"))
}
