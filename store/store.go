package store

import (
	"context"
	"fmt"

	"github.com/UmangSachdeva/SalesX/models"
)

// Store is typed access to the transaction collection.
type Store interface {
	Count(ctx context.Context, filter models.TransactionFilter) (int64, error)
	Find(ctx context.Context, filter models.TransactionFilter, skip, limit int64) ([]models.Transaction, error)
	// AggregateSum returns nil when no record matches.
	AggregateSum(ctx context.Context, filter models.TransactionFilter, field string) (*models.SumResult, error)
	// AggregateGroupBy returns one entry per distinct value, ordered by key.
	AggregateGroupBy(ctx context.Context, filter models.TransactionFilter, field string) ([]models.GroupCount, error)
	// ReplaceAll deletes every record and inserts records in their place.
	// Callers must not run two replacements at once.
	ReplaceAll(ctx context.Context, records []models.Transaction) error
}

var summableFields = map[string]bool{
	models.FieldPrice: true,
}

var groupableFields = map[string]bool{
	models.FieldTitle:       true,
	models.FieldDescription: true,
	models.FieldCategory:    true,
}

func checkSumField(field string) error {
	if !summableFields[field] {
		return fmt.Errorf("field %q cannot be summed", field)
	}
	return nil
}

func checkGroupField(field string) error {
	if !groupableFields[field] {
		return fmt.Errorf("field %q cannot be grouped", field)
	}
	return nil
}
