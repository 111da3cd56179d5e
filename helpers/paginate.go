package helpers

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPaginate struct {
	limit int64
	skip  int64
	sort  bson.D
}

// NewMongoPaginate orders by _id unless SortQuery overrides it, so pages
// stay consistent for a fixed filter.
func NewMongoPaginate(limit, skip int64) *mongoPaginate {
	return &mongoPaginate{
		limit: limit,
		skip:  skip,
		sort:  bson.D{{Key: "_id", Value: 1}},
	}
}

func (mp *mongoPaginate) SortQuery(sort bson.D) *mongoPaginate {
	if sort != nil {
		mp.sort = sort
	}
	return mp
}

func (mp *mongoPaginate) BuildFindOptions() *options.FindOptions {
	opts := options.Find().SetSort(mp.sort).SetSkip(mp.skip)
	// Mongo treats a zero limit as "no limit".
	if mp.limit > 0 {
		opts.SetLimit(mp.limit)
	}
	return opts
}
