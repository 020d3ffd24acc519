package core

import (
	"errors"
	"fmt"
)

var (
	ErrZeroDate = errors.New("date cannot be zero")
)

type (
	// DiaryEntry is the record of one calendar day: free-text notes plus a
	// spend amount per category. The date is the unique key; saving again
	// for the same date replaces the whole entry.
	DiaryEntry struct {
		Date  Date
		Notes string
		Spend map[Category]Money
	}

	// BudgetRecord is the monthly setup for one month key: the income and
	// the monthly allocation per category.
	BudgetRecord struct {
		Income      Money
		Allocations map[Category]Money
	}
)

// NewBudgetRecord returns the documented zero default for an unset month:
// income 0, every allocation 0.
func NewBudgetRecord() BudgetRecord {
	alloc := make(map[Category]Money, len(categories))
	for _, c := range categories {
		alloc[c] = Money{}
	}
	return BudgetRecord{Allocations: alloc}
}

// SpendFor returns the spend for a category, zero when unset.
func (e DiaryEntry) SpendFor(c Category) Money {
	return e.Spend[c]
}

// TotalSpend sums the entry's spend across all categories.
func (e DiaryEntry) TotalSpend() Money {
	var total Money
	for _, c := range categories {
		total = total.Add(e.Spend[c])
	}
	return total
}

func (e DiaryEntry) Validate() error {
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	for c, m := range e.Spend {
		if _, err := ParseCategory(string(c)); err != nil {
			return err
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("spend for %s: %w", c, err)
		}
	}
	return nil
}

// AllocationFor returns the monthly allocation for a category, zero when
// unset.
func (b BudgetRecord) AllocationFor(c Category) Money {
	return b.Allocations[c]
}

// TotalAllocated sums the allocations across all categories.
func (b BudgetRecord) TotalAllocated() Money {
	var total Money
	for _, c := range categories {
		total = total.Add(b.Allocations[c])
	}
	return total
}

// Unallocated is income minus the total allocations; negative means the
// month is over-allocated.
func (b BudgetRecord) Unallocated() Money {
	return b.Income.Sub(b.TotalAllocated())
}

func (b BudgetRecord) Validate() error {
	if err := b.Income.Validate(); err != nil {
		return fmt.Errorf("income: %w", err)
	}
	for c, m := range b.Allocations {
		if _, err := ParseCategory(string(c)); err != nil {
			return err
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("allocation for %s: %w", c, err)
		}
	}
	return nil
}
