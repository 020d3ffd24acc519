// Package store defines the ports the diary and budget persistence
// backends implement. The file backend is the compatibility contract;
// the sqlite backend exists for long histories.
package store

import (
	"context"

	"spenddiary/internal/core"
)

type (
	// DiaryStore owns the DiaryEntry records: one per calendar date,
	// replaced wholesale on save.
	DiaryStore interface {
		// Load returns every entry sorted ascending by date. A missing
		// backing store is auto-initialized and reads as empty.
		Load(ctx context.Context) ([]core.DiaryEntry, error)
		// Upsert replaces any existing entry for the same date and
		// persists the full set, sorted by date. Last write wins.
		Upsert(ctx context.Context, e core.DiaryEntry) error
	}

	// BudgetStore owns the BudgetRecord records, one per month key.
	BudgetStore interface {
		// Load returns the full month-key mapping; missing backing store
		// reads as empty.
		Load(ctx context.Context) (map[core.MonthKey]core.BudgetRecord, error)
		// Get returns the record for a month, or the zero-valued default
		// when the month is unset. It never reports a not-found error.
		Get(ctx context.Context, key core.MonthKey) (core.BudgetRecord, error)
		// Upsert replaces the record wholesale for that key and persists
		// the entire mapping.
		Upsert(ctx context.Context, key core.MonthKey, rec core.BudgetRecord) error
	}
)
