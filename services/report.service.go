package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/UmangSachdeva/SalesX/helpers"
	"github.com/UmangSachdeva/SalesX/models"
	"github.com/UmangSachdeva/SalesX/store"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

var ErrInvalidPagination = errors.New("page and perPage must be positive")

// ListingParams are the inputs of a transaction listing. Zero Page or
// PerPage select the defaults.
type ListingParams struct {
	Search  string
	Page    int64
	PerPage int64
}

// ReportService assembles every report from a single store handle.
type ReportService struct {
	store store.Store
	now   func() time.Time
}

func NewReportService(s store.Store) *ReportService {
	return &ReportService{store: s, now: time.Now}
}

// WithClock replaces the clock used to pick the default report year.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

func (s *ReportService) Listing(ctx context.Context, params ListingParams) (models.TransactionPage, error) {
	if params.Page == 0 {
		params.Page = DefaultPage
	}
	if params.PerPage == 0 {
		params.PerPage = DefaultPerPage
	}
	if params.Page < 1 || params.PerPage < 1 {
		return models.TransactionPage{}, ErrInvalidPagination
	}

	filter := helpers.SearchFilter(params.Search)

	transactions, err := s.store.Find(ctx, filter, pageOffset(params.Page, params.PerPage), params.PerPage)
	if err != nil {
		return models.TransactionPage{}, err
	}
	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return models.TransactionPage{}, err
	}

	return models.TransactionPage{Transactions: transactions, Total: total}, nil
}

// Statistics reports revenue and number of sold items, and the number of
// unsold items, for a month. A year of 0 selects the current year.
func (s *ReportService) Statistics(ctx context.Context, month string, year int) (models.Statistics, error) {
	window, err := s.monthRange(month, year)
	if err != nil {
		return models.Statistics{}, err
	}

	sales, err := s.store.AggregateSum(ctx, helpers.SoldFilter(window, true), models.FieldPrice)
	if err != nil {
		return models.Statistics{}, err
	}
	unsold, err := s.store.Count(ctx, helpers.SoldFilter(window, false))
	if err != nil {
		return models.Statistics{}, err
	}

	stats := models.Statistics{TotalUnsoldItems: unsold}
	if sales != nil {
		stats.TotalSales = models.SalesTotal{TotalAmount: sales.Total, TotalSoldItems: sales.Count}
	}
	return stats, nil
}

// Histogram counts the month's records in each price bucket. Bucket counts
// are queried concurrently and returned in bucket order.
func (s *ReportService) Histogram(ctx context.Context, month string, year int) ([]models.PriceBucketCount, error) {
	window, err := s.monthRange(month, year)
	if err != nil {
		return nil, err
	}

	buckets := helpers.PriceBuckets()
	results := make([]models.PriceBucketCount, len(buckets))

	g, gctx := errgroup.WithContext(ctx)
	for i, bucket := range buckets {
		g.Go(func() error {
			count, err := s.store.Count(gctx, helpers.PriceFilter(window, bucket))
			if err != nil {
				return fmt.Errorf("bucket %s: %w", bucket.Label, err)
			}
			results[i] = models.PriceBucketCount{Range: bucket.Label, Count: count}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CategoryBreakdown counts the month's records, sold or not, per category.
func (s *ReportService) CategoryBreakdown(ctx context.Context, month string, year int) ([]models.CategoryCount, error) {
	window, err := s.monthRange(month, year)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.AggregateGroupBy(ctx, helpers.MonthFilter(window), models.FieldCategory)
	if err != nil {
		return nil, err
	}

	categories := make([]models.CategoryCount, 0, len(groups))
	for _, group := range groups {
		categories = append(categories, models.CategoryCount{Category: group.Key, Count: group.Count})
	}
	return categories, nil
}

// Combined runs the four reports concurrently and merges them. The listing
// part always uses default pagination without search and ignores the month.
// Any failing report fails the whole result.
func (s *ReportService) Combined(ctx context.Context, month string, year int) (models.Combined, error) {
	var combined models.Combined

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.Listing(gctx, ListingParams{})
		if err != nil {
			return fmt.Errorf("listing: %w", err)
		}
		combined.Transactions = page
		return nil
	})
	g.Go(func() error {
		stats, err := s.Statistics(gctx, month, year)
		if err != nil {
			return fmt.Errorf("statistics: %w", err)
		}
		combined.Statistics = stats
		return nil
	})
	g.Go(func() error {
		bars, err := s.Histogram(gctx, month, year)
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		combined.BarChart = bars
		return nil
	})
	g.Go(func() error {
		pie, err := s.CategoryBreakdown(gctx, month, year)
		if err != nil {
			return fmt.Errorf("pie chart: %w", err)
		}
		combined.PieChart = pie
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.Combined{}, err
	}
	return combined, nil
}

// pageOffset is the number of records before page. Offsets past the int64
// range are clamped, which still yields an empty page.
func pageOffset(page, perPage int64) int64 {
	if page-1 > math.MaxInt64/perPage {
		return math.MaxInt64
	}
	return (page - 1) * perPage
}

func (s *ReportService) monthRange(month string, year int) (helpers.DateRange, error) {
	if year == 0 {
		year = helpers.CurrentYear(s.now())
	}
	return helpers.MonthRange(month, year)
}
