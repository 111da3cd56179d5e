package store

import (
	"context"
	"sort"
	"sync"

	"github.com/UmangSachdeva/SalesX/helpers"
	"github.com/UmangSachdeva/SalesX/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps transactions in insertion order and applies the same
// filter semantics as MongoStore. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Count(ctx context.Context, filter models.TransactionFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, tx := range s.records {
		if Matches(tx, filter) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) Find(ctx context.Context, filter models.TransactionFilter, skip, limit int64) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := []models.Transaction{}
	var seen int64
	for _, tx := range s.records {
		if !Matches(tx, filter) {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		found = append(found, tx)
		if limit > 0 && int64(len(found)) == limit {
			break
		}
	}
	return found, nil
}

func (s *MemoryStore) AggregateSum(ctx context.Context, filter models.TransactionFilter, field string) (*models.SumResult, error) {
	if err := checkSumField(field); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	var count int64
	for _, tx := range s.records {
		if Matches(tx, filter) {
			total = total.Add(decimal.NewFromFloat(tx.Price))
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	return &models.SumResult{Total: total.InexactFloat64(), Count: count}, nil
}

func (s *MemoryStore) AggregateGroupBy(ctx context.Context, filter models.TransactionFilter, field string) ([]models.GroupCount, error) {
	if err := checkGroupField(field); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int64{}
	for _, tx := range s.records {
		if Matches(tx, filter) {
			counts[groupKey(tx, field)]++
		}
	}

	groups := make([]models.GroupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, models.GroupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups, nil
}

func (s *MemoryStore) ReplaceAll(ctx context.Context, records []models.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fresh := make([]models.Transaction, len(records))
	for i, record := range records {
		record.ID = primitive.NewObjectID()
		fresh[i] = record
	}

	s.mu.Lock()
	s.records = fresh
	s.mu.Unlock()
	return nil
}

// Matches reports whether tx satisfies every constraint of filter.
func Matches(tx models.Transaction, filter models.TransactionFilter) bool {
	if !helpers.MatchesSearch(tx, filter.Search) {
		return false
	}
	if filter.From != nil && tx.DateOfSale.Before(*filter.From) {
		return false
	}
	if filter.Until != nil && !tx.DateOfSale.Before(*filter.Until) {
		return false
	}
	if filter.Sold != nil && tx.Sold != *filter.Sold {
		return false
	}
	if filter.Price != nil && !filter.Price.Contains(tx.Price) {
		return false
	}
	return true
}

func groupKey(tx models.Transaction, field string) string {
	switch field {
	case models.FieldTitle:
		return tx.Title
	case models.FieldDescription:
		return tx.Description
	default:
		return tx.Category
	}
}
