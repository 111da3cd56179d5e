package store

import (
	"context"
	"fmt"
	"regexp"

	"github.com/UmangSachdeva/SalesX/helpers"
	"github.com/UmangSachdeva/SalesX/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{collection: client.Database(database).Collection(collection)}
}

// EnsureIndexes indexes dateOfSale, which every monthly report filters on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: models.FieldDateOfSale, Value: 1}},
		Options: options.Index().SetName("dateOfSale_1"),
	}
	if _, err := s.collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("create dateOfSale index: %w", err)
	}
	return nil
}

func (s *MongoStore) Count(ctx context.Context, filter models.TransactionFilter) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, MatchDocument(filter))
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

func (s *MongoStore) Find(ctx context.Context, filter models.TransactionFilter, skip, limit int64) ([]models.Transaction, error) {
	opts := helpers.NewMongoPaginate(limit, skip).BuildFindOptions()

	cursor, err := s.collection.Find(ctx, MatchDocument(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cursor.Close(ctx)

	transactions := []models.Transaction{}
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return transactions, nil
}

func (s *MongoStore) AggregateSum(ctx context.Context, filter models.TransactionFilter, field string) (*models.SumResult, error) {
	if err := checkSumField(field); err != nil {
		return nil, err
	}

	var rows []struct {
		Total float64 `bson:"total"`
		Count int64   `bson:"count"`
	}
	if err := s.aggregate(ctx, SumPipeline(filter, field), &rows); err != nil {
		return nil, fmt.Errorf("sum %s: %w", field, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &models.SumResult{Total: rows[0].Total, Count: rows[0].Count}, nil
}

func (s *MongoStore) AggregateGroupBy(ctx context.Context, filter models.TransactionFilter, field string) ([]models.GroupCount, error) {
	if err := checkGroupField(field); err != nil {
		return nil, err
	}

	var rows []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := s.aggregate(ctx, GroupPipeline(filter, field), &rows); err != nil {
		return nil, fmt.Errorf("group by %s: %w", field, err)
	}

	groups := make([]models.GroupCount, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, models.GroupCount{Key: row.Key, Count: row.Count})
	}
	return groups, nil
}

func (s *MongoStore) ReplaceAll(ctx context.Context, records []models.Transaction) error {
	if _, err := s.collection.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("delete existing transactions: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(records))
	for _, record := range records {
		docs = append(docs, record)
	}
	result, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		inserted := 0
		if result != nil {
			inserted = len(result.InsertedIDs)
		}
		return fmt.Errorf("insert transactions (%d of %d stored): %w", inserted, len(records), err)
	}
	return nil
}

func (s *MongoStore) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// MatchDocument translates a filter into a Mongo query document.
func MatchDocument(filter models.TransactionFilter) bson.M {
	match := bson.M{}

	if filter.Search != "" {
		pattern := regexp.QuoteMeta(filter.Search)
		match["$or"] = bson.A{
			bson.M{models.FieldTitle: bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{models.FieldDescription: bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"$expr": bson.M{"$regexMatch": bson.M{
				"input":   bson.M{"$toString": "$" + models.FieldPrice},
				"regex":   pattern,
				"options": "i",
			}}},
		}
	}

	if filter.From != nil || filter.Until != nil {
		window := bson.M{}
		if filter.From != nil {
			window["$gte"] = *filter.From
		}
		if filter.Until != nil {
			window["$lt"] = *filter.Until
		}
		match[models.FieldDateOfSale] = window
	}

	if filter.Sold != nil {
		match[models.FieldSold] = *filter.Sold
	}

	if filter.Price != nil {
		bounds := bson.M{}
		if filter.Price.MinExclusive {
			bounds["$gt"] = filter.Price.Min
		} else {
			bounds["$gte"] = filter.Price.Min
		}
		if filter.Price.Max != nil {
			bounds["$lte"] = *filter.Price.Max
		}
		match[models.FieldPrice] = bounds
	}

	return match
}

func SumPipeline(filter models.TransactionFilter, field string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: MatchDocument(filter)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + field}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

func GroupPipeline(filter models.TransactionFilter, field string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: MatchDocument(filter)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}
