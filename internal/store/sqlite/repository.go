// Package sqlite implements the diary and budget stores on a local SQLite
// database. It honors the same contracts as the file backend and exists
// for diaries that have outgrown whole-file rewrites.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spenddiary/internal/core"
	"spenddiary/internal/store"

	_ "modernc.org/sqlite"
)

// Repository implements store.DiaryStore and store.BudgetStore on one
// SQLite database file.
type Repository struct {
	db *sql.DB
}

var _ store.DiaryStore = (*Repository)(nil)

// Diary returns the repository as a store.DiaryStore.
func (r *Repository) Diary() store.DiaryStore { return r }

// Budgets returns a store.BudgetStore view of the repository. The budget
// methods carry distinct names on Repository, so a thin facade adapts
// them to the port.
func (r *Repository) Budgets() store.BudgetStore { return budgetStore{r} }

type budgetStore struct{ r *Repository }

var _ store.BudgetStore = budgetStore{}

func (b budgetStore) Load(ctx context.Context) (map[core.MonthKey]core.BudgetRecord, error) {
	return b.r.LoadBudgets(ctx)
}

func (b budgetStore) Get(ctx context.Context, key core.MonthKey) (core.BudgetRecord, error) {
	return b.r.Get(ctx, key)
}

func (b budgetStore) Upsert(ctx context.Context, key core.MonthKey, rec core.BudgetRecord) error {
	return b.r.UpsertBudget(ctx, key, rec)
}

// NewRepository opens (creating if needed) the database at dbPath and runs
// the embedded migrations.
func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements store.DiaryStore.
func (r *Repository) Load(ctx context.Context) ([]core.DiaryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, notes FROM diary_entries ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("query diary entries: %w", err)
	}
	defer rows.Close()

	var entries []core.DiaryEntry
	index := make(map[string]int)
	for rows.Next() {
		var rawDate, notes string
		if err := rows.Scan(&rawDate, &notes); err != nil {
			return nil, fmt.Errorf("scan diary entry: %w", err)
		}
		date, err := core.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("diary entry: %w", err)
		}
		index[rawDate] = len(entries)
		entries = append(entries, core.DiaryEntry{
			Date:  date,
			Notes: notes,
			Spend: make(map[core.Category]core.Money, len(core.Categories())),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diary entries: %w", err)
	}

	spends, err := r.db.QueryContext(ctx,
		`SELECT date, category, amount_cents FROM diary_spends`)
	if err != nil {
		return nil, fmt.Errorf("query diary spends: %w", err)
	}
	defer spends.Close()
	for spends.Next() {
		var rawDate, rawCat string
		var cents int64
		if err := spends.Scan(&rawDate, &rawCat, &cents); err != nil {
			return nil, fmt.Errorf("scan diary spend: %w", err)
		}
		i, ok := index[rawDate]
		if !ok {
			continue
		}
		c, err := core.ParseCategory(rawCat)
		if err != nil {
			slog.WarnContext(ctx, "Skipping spend for unknown category",
				"date", rawDate, "category", rawCat)
			continue
		}
		entries[i].Spend[c] = core.Money{Cents: cents}
	}
	if err := spends.Err(); err != nil {
		return nil, fmt.Errorf("iterate diary spends: %w", err)
	}
	return entries, nil
}

// Upsert implements store.DiaryStore: delete-then-insert inside one
// transaction keeps the full-overwrite-per-date semantics.
func (r *Repository) Upsert(ctx context.Context, e core.DiaryEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin diary upsert: %w", err)
	}
	defer tx.Rollback()

	date := e.Date.String()
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM diary_spends WHERE date = ?`, date); err != nil {
		return fmt.Errorf("clear diary spends: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM diary_entries WHERE date = ?`, date); err != nil {
		return fmt.Errorf("clear diary entry: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO diary_entries (date, notes) VALUES (?, ?)`, date, e.Notes); err != nil {
		return fmt.Errorf("insert diary entry: %w", err)
	}
	for _, c := range core.Categories() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO diary_spends (date, category, amount_cents) VALUES (?, ?, ?)`,
			date, string(c), e.SpendFor(c).Cents); err != nil {
			return fmt.Errorf("insert diary spend %s: %w", c, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit diary upsert: %w", err)
	}

	slog.InfoContext(ctx, "Diary entry saved to SQLite",
		"date", date, "total_cents", e.TotalSpend().Cents)
	return nil
}

// LoadBudgets implements store.BudgetStore.Load.
func (r *Repository) LoadBudgets(ctx context.Context) (map[core.MonthKey]core.BudgetRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT month_key, income_cents FROM budgets`)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	out := make(map[core.MonthKey]core.BudgetRecord)
	for rows.Next() {
		var rawKey string
		var income int64
		if err := rows.Scan(&rawKey, &income); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		key, err := core.ParseMonthKey(rawKey)
		if err != nil {
			return nil, fmt.Errorf("budget record: %w", err)
		}
		rec := core.NewBudgetRecord()
		rec.Income = core.Money{Cents: income}
		out[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}

	allocs, err := r.db.QueryContext(ctx,
		`SELECT month_key, category, amount_cents FROM budget_allocations`)
	if err != nil {
		return nil, fmt.Errorf("query budget allocations: %w", err)
	}
	defer allocs.Close()
	for allocs.Next() {
		var rawKey, rawCat string
		var cents int64
		if err := allocs.Scan(&rawKey, &rawCat, &cents); err != nil {
			return nil, fmt.Errorf("scan budget allocation: %w", err)
		}
		rec, ok := out[core.MonthKey(rawKey)]
		if !ok {
			continue
		}
		c, err := core.ParseCategory(rawCat)
		if err != nil {
			slog.WarnContext(ctx, "Skipping allocation for unknown category",
				"month_key", rawKey, "category", rawCat)
			continue
		}
		rec.Allocations[c] = core.Money{Cents: cents}
	}
	if err := allocs.Err(); err != nil {
		return nil, fmt.Errorf("iterate budget allocations: %w", err)
	}
	return out, nil
}

// Get implements store.BudgetStore: absent months read as the zero
// default, never an error.
func (r *Repository) Get(ctx context.Context, key core.MonthKey) (core.BudgetRecord, error) {
	rec := core.NewBudgetRecord()
	err := r.db.QueryRowContext(ctx,
		`SELECT income_cents FROM budgets WHERE month_key = ?`, string(key)).
		Scan(&rec.Income.Cents)
	if err == sql.ErrNoRows {
		return rec, nil
	}
	if err != nil {
		return core.BudgetRecord{}, fmt.Errorf("query budget %s: %w", key, err)
	}

	allocs, err := r.db.QueryContext(ctx,
		`SELECT category, amount_cents FROM budget_allocations WHERE month_key = ?`, string(key))
	if err != nil {
		return core.BudgetRecord{}, fmt.Errorf("query allocations %s: %w", key, err)
	}
	defer allocs.Close()
	for allocs.Next() {
		var rawCat string
		var cents int64
		if err := allocs.Scan(&rawCat, &cents); err != nil {
			return core.BudgetRecord{}, fmt.Errorf("scan allocation: %w", err)
		}
		c, err := core.ParseCategory(rawCat)
		if err != nil {
			continue
		}
		rec.Allocations[c] = core.Money{Cents: cents}
	}
	if err := allocs.Err(); err != nil {
		return core.BudgetRecord{}, fmt.Errorf("iterate allocations: %w", err)
	}
	return rec, nil
}

// UpsertBudget implements store.BudgetStore.Upsert with the same
// wholesale-replace semantics as the file backend.
func (r *Repository) UpsertBudget(ctx context.Context, key core.MonthKey, rec core.BudgetRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin budget upsert: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM budget_allocations WHERE month_key = ?`, string(key)); err != nil {
		return fmt.Errorf("clear allocations: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM budgets WHERE month_key = ?`, string(key)); err != nil {
		return fmt.Errorf("clear budget: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO budgets (month_key, income_cents) VALUES (?, ?)`,
		string(key), rec.Income.Cents); err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	for _, c := range core.Categories() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO budget_allocations (month_key, category, amount_cents) VALUES (?, ?, ?)`,
			string(key), string(c), rec.AllocationFor(c).Cents); err != nil {
			return fmt.Errorf("insert allocation %s: %w", c, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit budget upsert: %w", err)
	}

	slog.InfoContext(ctx, "Monthly budget saved to SQLite",
		"month_key", string(key), "income_cents", rec.Income.Cents)
	return nil
}
