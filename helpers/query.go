package helpers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/UmangSachdeva/SalesX/models"
	"github.com/shopspring/decimal"
)

var ErrUnknownMonth = errors.New("unknown month")

// DateRange is a half-open [Start, Until) window over dateOfSale.
type DateRange struct {
	Start time.Time
	Until time.Time
}

// SearchFilter returns a match-all filter for empty search text.
func SearchFilter(search string) models.TransactionFilter {
	return models.TransactionFilter{Search: search}
}

// FormatPrice renders a price as its shortest decimal text, without exponent
// or trailing zeros: 105 -> "105", 10.50 -> "10.5".
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).String()
}

// MatchesSearch applies the search semantics of a TransactionFilter to a
// single record.
func MatchesSearch(tx models.Transaction, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(tx.Title), needle) ||
		strings.Contains(strings.ToLower(tx.Description), needle) ||
		strings.Contains(strings.ToLower(FormatPrice(tx.Price)), needle)
}

// ParseMonth accepts a full English month name or its three letter
// abbreviation, in any case.
func ParseMonth(name string) (time.Month, error) {
	name = strings.TrimSpace(name)
	if len(name) >= 3 {
		for m := time.January; m <= time.December; m++ {
			full := m.String()
			if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
				return m, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, name)
}

// MonthRange computes the report window for a month of the given year.
//
// The window runs from the 1st at 00:00 UTC through the end of "day 31" of
// the month. Day 31 is taken literally, so for shorter months it overflows
// into the following month: April ends after May 1, February after March 3
// (or March 2 in leap years).
//
// Until is exclusive and falls at 00:00 of "day 32", so the whole of day 31
// is inside the window. This is one day later than a "<= day 31 00:00"
// bound and makes 31-day months covered exactly.
func MonthRange(month string, year int) (DateRange, error) {
	m, err := ParseMonth(month)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{
		Start: time.Date(year, m, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(year, m, 32, 0, 0, 0, 0, time.UTC),
	}, nil
}

// CurrentYear is the default year for month reports.
func CurrentYear(now time.Time) int {
	return now.UTC().Year()
}

// ParseYear reads an optional year parameter, falling back to def when empty.
func ParseYear(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 || year > 9999 {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return year, nil
}

func MonthFilter(r DateRange) models.TransactionFilter {
	start, until := r.Start, r.Until
	return models.TransactionFilter{From: &start, Until: &until}
}

func SoldFilter(r DateRange, sold bool) models.TransactionFilter {
	f := MonthFilter(r)
	f.Sold = &sold
	return f
}

type PriceBucket struct {
	Label string
	Range models.PriceRange
}

var bucketBounds = []float64{100, 200, 300, 400, 500, 600, 700, 800, 900}

// PriceBuckets returns the ten histogram buckets in display order:
// 0-100, 101-200, ..., 801-900, 901-Infinity.
//
// Every bucket after the first starts just above the previous maximum, so
// fractional prices such as 100.5 land in 101-200 and the buckets cover
// every non-negative price exactly once.
func PriceBuckets() []PriceBucket {
	buckets := make([]PriceBucket, 0, len(bucketBounds)+1)
	lower := 0.0
	for i, upper := range bucketBounds {
		ceiling := upper
		label := fmt.Sprintf("%d-%d", displayMin(i, lower), int(upper))
		buckets = append(buckets, PriceBucket{
			Label: label,
			Range: models.PriceRange{Min: lower, MinExclusive: i > 0, Max: &ceiling},
		})
		lower = upper
	}
	buckets = append(buckets, PriceBucket{
		Label: fmt.Sprintf("%d-Infinity", displayMin(len(bucketBounds), lower)),
		Range: models.PriceRange{Min: lower, MinExclusive: true},
	})
	return buckets
}

func PriceFilter(r DateRange, bucket PriceBucket) models.TransactionFilter {
	f := MonthFilter(r)
	price := bucket.Range
	f.Price = &price
	return f
}

func displayMin(i int, lower float64) int {
	if i == 0 {
		return int(lower)
	}
	return int(lower) + 1
}
