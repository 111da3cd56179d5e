package models

import "time"

// TransactionFilter is a store independent predicate over transactions.
// The zero value matches every record.
type TransactionFilter struct {
	// Search matches title or description case-insensitively, or the
	// decimal text of price, as a plain substring.
	Search string

	// DateOfSale window, From inclusive and Until exclusive.
	From  *time.Time
	Until *time.Time

	Sold  *bool
	Price *PriceRange
}

// PriceRange bounds price. A nil Max means unbounded.
type PriceRange struct {
	Min          float64
	MinExclusive bool
	Max          *float64
}

// Contains reports whether price lies within the range.
func (p PriceRange) Contains(price float64) bool {
	if p.MinExclusive {
		if price <= p.Min {
			return false
		}
	} else if price < p.Min {
		return false
	}
	return p.Max == nil || price <= *p.Max
}
