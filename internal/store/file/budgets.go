package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"spenddiary/internal/core"
)

// BudgetStore persists the month-key to budget mapping as a single JSON
// document: {"YYYY-MM": {"income": n, "allocations": {"<category>": n}}}.
type BudgetStore struct {
	path string
}

// NewBudgetStore returns a store backed by the JSON file at path.
func NewBudgetStore(path string) *BudgetStore {
	return &BudgetStore{path: path}
}

// budgetJSON is the wire form; amounts are decimal numbers, not cents.
type budgetJSON struct {
	Income      float64            `json:"income"`
	Allocations map[string]float64 `json:"allocations"`
}

// Load returns the full mapping. A missing file is auto-initialized to an
// empty document and reads as an empty map.
func (s *BudgetStore) Load(ctx context.Context) (map[core.MonthKey]core.BudgetRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.writeAll(nil); err != nil {
			return nil, err
		}
		return map[core.MonthKey]core.BudgetRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read budgets file: %w", err)
	}

	var doc map[string]budgetJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode budgets file %s: %w", s.path, err)
	}

	out := make(map[core.MonthKey]core.BudgetRecord, len(doc))
	for rawKey, b := range doc {
		key, err := core.ParseMonthKey(rawKey)
		if err != nil {
			return nil, fmt.Errorf("budgets file %s: %w", s.path, err)
		}
		rec := core.NewBudgetRecord()
		rec.Income = core.MoneyFromFloat(b.Income)
		for rawCat, v := range b.Allocations {
			c, err := core.ParseCategory(rawCat)
			if err != nil {
				// A category removed from the fixed set: its allocation no
				// longer participates in any summary.
				slog.WarnContext(ctx, "Dropping allocation for unknown category",
					"month_key", rawKey, "category", rawCat)
				continue
			}
			rec.Allocations[c] = core.MoneyFromFloat(v)
		}
		out[key] = rec
	}
	return out, nil
}

// Get returns the stored record for key, or the zero-valued default when
// the month is unset. Absence is not an error.
func (s *BudgetStore) Get(ctx context.Context, key core.MonthKey) (core.BudgetRecord, error) {
	all, err := s.Load(ctx)
	if err != nil {
		return core.BudgetRecord{}, err
	}
	if rec, ok := all[key]; ok {
		return rec, nil
	}
	return core.NewBudgetRecord(), nil
}

// Upsert replaces the record for key wholesale and persists the entire
// mapping.
func (s *BudgetStore) Upsert(ctx context.Context, key core.MonthKey, rec core.BudgetRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	all, err := s.Load(ctx)
	if err != nil {
		return err
	}
	all[key] = rec
	if err := s.writeAll(all); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Monthly budget saved",
		"month_key", string(key),
		"income_cents", rec.Income.Cents,
		"allocated_cents", rec.TotalAllocated().Cents)
	return nil
}

func (s *BudgetStore) writeAll(all map[core.MonthKey]core.BudgetRecord) error {
	doc := make(map[string]budgetJSON, len(all))
	for key, rec := range all {
		b := budgetJSON{
			Income:      rec.Income.Float(),
			Allocations: make(map[string]float64, len(core.Categories())),
		}
		for _, c := range core.Categories() {
			b.Allocations[string(c)] = rec.AllocationFor(c).Float()
		}
		doc[string(key)] = b
	}

	// Deterministic output: encoding/json sorts map keys, so identical
	// state produces an identical file.
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode budgets: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create budgets directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write budgets file: %w", err)
	}
	return nil
}

// sortedKeys is used by tests and debugging helpers.
func sortedKeys(all map[core.MonthKey]core.BudgetRecord) []core.MonthKey {
	keys := make([]core.MonthKey, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
