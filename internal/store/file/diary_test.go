package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spenddiary/internal/core"
)

func newDiary(t *testing.T) (*DiaryStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spending_diary.csv")
	return NewDiaryStore(path), path
}

func testEntry(t *testing.T, date string, groceries int64) core.DiaryEntry {
	t.Helper()
	d, err := core.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return core.DiaryEntry{
		Date:  d,
		Notes: "note for " + date,
		Spend: map[core.Category]core.Money{core.Groceries: {Cents: groceries}},
	}
}

func TestLoadMissingFileAutoInitializes(t *testing.T) {
	s, path := newDiary(t)
	entries, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(entries))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file should exist after first load: %v", err)
	}
	if !strings.HasPrefix(string(data), "date,notes,groceries_spend") {
		t.Fatalf("missing schema header: %q", string(data))
	}
}

func TestUpsertRoundTrip(t *testing.T) {
	s, _ := newDiary(t)
	ctx := context.Background()

	saved := core.DiaryEntry{
		Date:  core.NewDate(2024, 2, 10),
		Notes: "market day",
		Spend: map[core.Category]core.Money{
			core.Groceries: {Cents: 5050},
			core.Coffee:    {Cents: 325},
		},
	}
	if err := s.Upsert(ctx, saved); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	entries, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0]
	if !got.Date.Equal(saved.Date.Time) || got.Notes != saved.Notes {
		t.Errorf("got %s %q, want %s %q", got.Date, got.Notes, saved.Date, saved.Notes)
	}
	if got.SpendFor(core.Groceries).Cents != 5050 || got.SpendFor(core.Coffee).Cents != 325 {
		t.Errorf("spends = %v", got.Spend)
	}
	if got.SpendFor(core.Rent).Cents != 0 {
		t.Errorf("unset category should read as zero, got %d", got.SpendFor(core.Rent).Cents)
	}
}

func TestUpsertOverwritesSameDate(t *testing.T) {
	s, _ := newDiary(t)
	ctx := context.Background()

	if err := s.Upsert(ctx, testEntry(t, "2024-02-10", 5000)); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.Upsert(ctx, testEntry(t, "2024-02-10", 99900)); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	entries, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one row for the date, got %d", len(entries))
	}
	if got := entries[0].SpendFor(core.Groceries).Cents; got != 99900 {
		t.Errorf("groceries = %d, want 99900 (old value gone)", got)
	}
}

func TestLoadSortsByDate(t *testing.T) {
	s, _ := newDiary(t)
	ctx := context.Background()
	for _, date := range []string{"2024-02-12", "2024-02-05", "2024-02-10"} {
		if err := s.Upsert(ctx, testEntry(t, date, 100)); err != nil {
			t.Fatalf("upsert %s: %v", date, err)
		}
	}
	entries, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"2024-02-05", "2024-02-10", "2024-02-12"}
	for i, w := range want {
		if entries[i].Date.String() != w {
			t.Errorf("position %d = %s, want %s", i, entries[i].Date, w)
		}
	}
}

func TestLoadCoercesMalformedNumbers(t *testing.T) {
	s, path := newDiary(t)
	csv := "date,notes,groceries_spend,coffee_spend,transport_spend,pilates_spend,miscellaneous_spend,stocks_spend,savings_spend,rent_spend\n" +
		"2024-02-10,bad cells,not-a-number,3.50,,-2.00,0.00,0.00,0.00,0.00\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	entries, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("lenient load should not fail: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("row with bad cells must not vanish, got %d rows", len(entries))
	}
	e := entries[0]
	if e.SpendFor(core.Groceries).Cents != 0 {
		t.Errorf("malformed cell = %d, want 0", e.SpendFor(core.Groceries).Cents)
	}
	if e.SpendFor(core.Coffee).Cents != 350 {
		t.Errorf("valid cell = %d, want 350", e.SpendFor(core.Coffee).Cents)
	}
	if e.SpendFor(core.Transport).Cents != 0 {
		t.Errorf("empty cell = %d, want 0", e.SpendFor(core.Transport).Cents)
	}
	if e.SpendFor(core.Pilates).Cents != 0 {
		t.Errorf("negative cell = %d, want 0", e.SpendFor(core.Pilates).Cents)
	}
}

func TestLoadToleratesMissingCategoryColumn(t *testing.T) {
	s, path := newDiary(t)
	csv := "date,notes,groceries_spend\n2024-02-10,old schema,12.00\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	entries, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if entries[0].SpendFor(core.Groceries).Cents != 1200 {
		t.Errorf("groceries = %d", entries[0].SpendFor(core.Groceries).Cents)
	}
	if entries[0].SpendFor(core.Rent).Cents != 0 {
		t.Errorf("missing column should read zero, got %d", entries[0].SpendFor(core.Rent).Cents)
	}
}

func TestUpsertRejectsInvalidEntry(t *testing.T) {
	s, _ := newDiary(t)
	err := s.Upsert(context.Background(), core.DiaryEntry{})
	if err == nil {
		t.Fatal("zero-date entry should be rejected")
	}
}
