package store

import (
	"testing"
	"time"

	"github.com/UmangSachdeva/SalesX/helpers"
	"github.com/UmangSachdeva/SalesX/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMatchDocumentEmptyFilterMatchesAll(t *testing.T) {
	assert.Equal(t, bson.M{}, MatchDocument(models.TransactionFilter{}))
}

func TestMatchDocumentSearch(t *testing.T) {
	match := MatchDocument(helpers.SearchFilter("1.5"))

	or, ok := match["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)

	assert.Equal(t, bson.M{"title": bson.M{"$regex": `1\.5`, "$options": "i"}}, or[0])
	assert.Equal(t, bson.M{"description": bson.M{"$regex": `1\.5`, "$options": "i"}}, or[1])
	assert.Equal(t, bson.M{"$expr": bson.M{"$regexMatch": bson.M{
		"input":   bson.M{"$toString": "$price"},
		"regex":   `1\.5`,
		"options": "i",
	}}}, or[2])
}

func TestMatchDocumentMonthAndSold(t *testing.T) {
	r, err := helpers.MonthRange("April", 2024)
	require.NoError(t, err)

	match := MatchDocument(helpers.SoldFilter(r, false))

	assert.Equal(t, false, match["sold"])
	assert.Equal(t, bson.M{
		"$gte": time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		"$lt":  time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
	}, match["dateOfSale"])
	assert.NotContains(t, match, "$or")
}

func TestMatchDocumentPriceBuckets(t *testing.T) {
	r, err := helpers.MonthRange("March", 2024)
	require.NoError(t, err)
	buckets := helpers.PriceBuckets()

	first := MatchDocument(helpers.PriceFilter(r, buckets[0]))
	assert.Equal(t, bson.M{"$gte": 0.0, "$lte": 100.0}, first["price"])

	second := MatchDocument(helpers.PriceFilter(r, buckets[1]))
	assert.Equal(t, bson.M{"$gt": 100.0, "$lte": 200.0}, second["price"])

	last := MatchDocument(helpers.PriceFilter(r, buckets[9]))
	assert.Equal(t, bson.M{"$gt": 900.0}, last["price"])
}

func TestPipelines(t *testing.T) {
	filter := models.TransactionFilter{}

	sum := SumPipeline(filter, models.FieldPrice)
	require.Len(t, sum, 2)
	assert.Equal(t, "$match", sum[0][0].Key)
	assert.Equal(t, bson.D{
		{Key: "_id", Value: nil},
		{Key: "total", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}, sum[1][0].Value)

	group := GroupPipeline(filter, models.FieldCategory)
	require.Len(t, group, 3)
	assert.Equal(t, "$group", group[1][0].Key)
	assert.Equal(t, "$category", group[1][0].Value.(bson.D)[0].Value)
	assert.Equal(t, "$sort", group[2][0].Key)
}
