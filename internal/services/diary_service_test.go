package services

import (
	"context"
	"errors"
	"testing"

	"spenddiary/internal/core"
)

type fakeDiaryStore struct {
	entries []core.DiaryEntry
	loadErr error
}

func (f *fakeDiaryStore) Load(context.Context) ([]core.DiaryEntry, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]core.DiaryEntry(nil), f.entries...), nil
}

func (f *fakeDiaryStore) Upsert(_ context.Context, e core.DiaryEntry) error {
	for i, existing := range f.entries {
		if existing.Date.Compare(e.Date) == 0 {
			f.entries[i] = e
			return nil
		}
	}
	f.entries = append(f.entries, e)
	return nil
}

type fakeBudgetStore struct {
	records map[core.MonthKey]core.BudgetRecord
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{records: map[core.MonthKey]core.BudgetRecord{}}
}

func (f *fakeBudgetStore) Load(context.Context) (map[core.MonthKey]core.BudgetRecord, error) {
	return f.records, nil
}

func (f *fakeBudgetStore) Get(_ context.Context, key core.MonthKey) (core.BudgetRecord, error) {
	if rec, ok := f.records[key]; ok {
		return rec, nil
	}
	return core.NewBudgetRecord(), nil
}

func (f *fakeBudgetStore) Upsert(_ context.Context, key core.MonthKey, rec core.BudgetRecord) error {
	f.records[key] = rec
	return nil
}

type fakePublisher struct {
	published []core.Date
	publishEr error
	closed    bool
}

func (f *fakePublisher) PublishEntrySync(_ context.Context, date core.Date) error {
	if f.publishEr != nil {
		return f.publishEr
	}
	f.published = append(f.published, date)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func TestDiaryService_SaveEntry(t *testing.T) {
	diary := &fakeDiaryStore{}
	pub := &fakePublisher{}
	svc := NewDiaryService(diary, newFakeBudgetStore(), pub)

	entry := core.DiaryEntry{
		Date:  core.NewDate(2024, 2, 10),
		Notes: "market day",
		Spend: map[core.Category]core.Money{core.Groceries: {Cents: 1250}},
	}

	if err := svc.SaveEntry(context.Background(), entry); err != nil {
		t.Fatalf("SaveEntry() error = %v", err)
	}

	if len(diary.entries) != 1 {
		t.Fatalf("store has %d entries, want 1", len(diary.entries))
	}
	if len(pub.published) != 1 || pub.published[0].Compare(entry.Date) != 0 {
		t.Errorf("published dates = %v, want [%v]", pub.published, entry.Date)
	}
}

func TestDiaryService_SaveEntry_PublishFailureIsNonFatal(t *testing.T) {
	diary := &fakeDiaryStore{}
	pub := &fakePublisher{publishEr: errors.New("broker down")}
	svc := NewDiaryService(diary, newFakeBudgetStore(), pub)

	entry := core.DiaryEntry{Date: core.NewDate(2024, 2, 10)}

	if err := svc.SaveEntry(context.Background(), entry); err != nil {
		t.Fatalf("SaveEntry() error = %v, want nil when only publish fails", err)
	}
	if len(diary.entries) != 1 {
		t.Error("entry should be saved even when publish fails")
	}
}

func TestDiaryService_SaveEntry_NoPublisher(t *testing.T) {
	diary := &fakeDiaryStore{}
	svc := NewDiaryService(diary, newFakeBudgetStore(), nil)

	entry := core.DiaryEntry{Date: core.NewDate(2024, 2, 10)}
	if err := svc.SaveEntry(context.Background(), entry); err != nil {
		t.Fatalf("SaveEntry() error = %v", err)
	}
}

func TestDiaryService_Entry(t *testing.T) {
	date := core.NewDate(2024, 2, 10)
	diary := &fakeDiaryStore{entries: []core.DiaryEntry{
		{Date: date, Notes: "found me"},
	}}
	svc := NewDiaryService(diary, newFakeBudgetStore(), nil)

	got, ok, err := svc.Entry(context.Background(), date)
	if err != nil {
		t.Fatalf("Entry() error = %v", err)
	}
	if !ok {
		t.Fatal("Entry() ok = false, want true")
	}
	if got.Notes != "found me" {
		t.Errorf("Entry().Notes = %q, want %q", got.Notes, "found me")
	}

	_, ok, err = svc.Entry(context.Background(), core.NewDate(2024, 3, 1))
	if err != nil {
		t.Fatalf("Entry() error = %v", err)
	}
	if ok {
		t.Error("Entry() ok = true for a missing date, want false")
	}
}

func TestDiaryService_Overview(t *testing.T) {
	ref := core.NewDate(2024, 2, 10)
	diary := &fakeDiaryStore{entries: []core.DiaryEntry{
		{
			Date:  ref,
			Spend: map[core.Category]core.Money{core.Groceries: {Cents: 5000}},
		},
		{
			Date:  core.NewDate(2024, 2, 20),
			Spend: map[core.Category]core.Money{core.Groceries: {Cents: 3000}},
		},
	}}
	budgets := newFakeBudgetStore()
	rec := core.NewBudgetRecord()
	rec.Income = core.Money{Cents: 200000}
	rec.Allocations[core.Groceries] = core.Money{Cents: 40000}
	budgets.records[core.MonthKey("2024-02")] = rec

	svc := NewDiaryService(diary, budgets, nil)

	ov, err := svc.Overview(context.Background(), ref)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	if ov.NumWeeks != 5 {
		t.Errorf("NumWeeks = %d, want 5", ov.NumWeeks)
	}
	var groceries *core.SummaryRow
	for i := range ov.Rows {
		if ov.Rows[i].Category == core.Groceries {
			groceries = &ov.Rows[i]
		}
	}
	if groceries == nil {
		t.Fatal("no groceries row in overview")
	}
	if groceries.SpentThisWeek.Cents != 5000 {
		t.Errorf("SpentThisWeek = %d, want 5000", groceries.SpentThisWeek.Cents)
	}
	if groceries.SpentThisMonth.Cents != 8000 {
		t.Errorf("SpentThisMonth = %d, want 8000", groceries.SpentThisMonth.Cents)
	}
	if groceries.WeeklyBudget.Cents != 8000 {
		t.Errorf("WeeklyBudget = %d, want 8000", groceries.WeeklyBudget.Cents)
	}
}

func TestDiaryService_Overview_MissingBudgetDefaultsToZero(t *testing.T) {
	svc := NewDiaryService(&fakeDiaryStore{}, newFakeBudgetStore(), nil)

	ov, err := svc.Overview(context.Background(), core.NewDate(2024, 2, 10))
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if ov.Income.Cents != 0 || ov.TotalAllocated.Cents != 0 {
		t.Error("missing budget should produce all-zero budget figures")
	}
	if len(ov.Rows) != len(core.Categories()) {
		t.Errorf("Rows = %d, want one per category", len(ov.Rows))
	}
}

func TestDiaryService_Close(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewDiaryService(&fakeDiaryStore{}, newFakeBudgetStore(), pub)

	if err := svc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !pub.closed {
		t.Error("Close() should close the publisher")
	}

	svcNoPub := NewDiaryService(&fakeDiaryStore{}, newFakeBudgetStore(), nil)
	if err := svcNoPub.Close(); err != nil {
		t.Fatalf("Close() without publisher error = %v", err)
	}
}
