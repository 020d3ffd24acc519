// Package file implements the diary and budget stores on the two local
// files that are the compatibility contract with any UI shell: a CSV
// spending diary and a JSON budgets map.
package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"spenddiary/internal/core"
)

// DiaryStore persists one CSV row per calendar date. Columns are
// date, notes, then one <category>_spend column per category in the
// fixed order. Every write rewrites the whole file.
type DiaryStore struct {
	path string
}

// NewDiaryStore returns a store backed by the CSV file at path. The file
// is created with its header on first load if missing.
func NewDiaryStore(path string) *DiaryStore {
	return &DiaryStore{path: path}
}

func diaryHeader() []string {
	header := []string{"date", "notes"}
	for _, c := range core.Categories() {
		header = append(header, c.SpendColumn())
	}
	return header
}

// Load reads every entry sorted ascending by date. A missing file is
// auto-initialized with the schema header and reads as empty. Malformed
// numeric cells coerce to zero; the row is kept and the coercion logged.
func (s *DiaryStore) Load(ctx context.Context) ([]core.DiaryEntry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.init(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open diary file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read diary file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Columns are located by header name so a file written with an older
	// category set still loads; missing columns read as zero.
	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	dateIdx, ok := col["date"]
	if !ok {
		return nil, fmt.Errorf("diary file %s: missing date column", s.path)
	}

	entries := make([]core.DiaryEntry, 0, len(records)-1)
	for _, rec := range records[1:] {
		date, err := core.ParseDate(cell(rec, dateIdx))
		if err != nil {
			return nil, fmt.Errorf("diary file %s: %w", s.path, err)
		}
		e := core.DiaryEntry{
			Date:  date,
			Spend: make(map[core.Category]core.Money, len(core.Categories())),
		}
		if i, ok := col["notes"]; ok {
			e.Notes = cell(rec, i)
		}
		for _, c := range core.Categories() {
			i, ok := col[c.SpendColumn()]
			if !ok {
				e.Spend[c] = core.Money{}
				continue
			}
			raw := cell(rec, i)
			cents := core.CoerceDecimalToCents(raw)
			if cents == 0 && raw != "" && raw != "0" && raw != "0.0" && raw != "0.00" {
				slog.WarnContext(ctx, "Coerced malformed spend cell to zero",
					"date", date.String(), "category", string(c), "raw", raw)
			}
			e.Spend[c] = core.Money{Cents: cents}
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Compare(entries[j].Date) < 0
	})
	return entries, nil
}

// Upsert replaces any entry with the same date and persists the full set
// sorted by date. The load-modify-store cycle is not atomic: two
// concurrent writers race and the later write wins.
func (s *DiaryStore) Upsert(ctx context.Context, e core.DiaryEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, old := range entries {
		if old.Date.Equal(e.Date.Time) {
			continue
		}
		kept = append(kept, old)
	}
	kept = append(kept, e)
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Date.Compare(kept[j].Date) < 0
	})

	if err := s.writeAll(kept); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Diary entry saved",
		"date", e.Date.String(), "total_cents", e.TotalSpend().Cents, "rows", len(kept))
	return nil
}

func (s *DiaryStore) init() error {
	return s.writeAll(nil)
}

func (s *DiaryStore) writeAll(entries []core.DiaryEntry) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create diary directory: %w", err)
		}
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create diary file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(diaryHeader()); err != nil {
		f.Close()
		return fmt.Errorf("write diary header: %w", err)
	}
	for _, e := range entries {
		row := []string{e.Date.String(), e.Notes}
		for _, c := range core.Categories() {
			row = append(row, e.SpendFor(c).FormatDecimal())
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write diary row %s: %w", e.Date, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush diary file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close diary file: %w", err)
	}
	return nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
