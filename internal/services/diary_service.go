package services

import (
	"context"
	"fmt"
	"log/slog"

	"spenddiary/internal/core"
	"spenddiary/internal/store"
)

// EntrySyncPublisher notifies the sync worker that a diary entry changed.
type EntrySyncPublisher interface {
	PublishEntrySync(ctx context.Context, date core.Date) error
	Close() error
}

// DiaryService orchestrates diary and budget operations across the store
// and the optional AMQP sync channel.
type DiaryService struct {
	diary     store.DiaryStore
	budgets   store.BudgetStore
	publisher EntrySyncPublisher
}

func NewDiaryService(diary store.DiaryStore, budgets store.BudgetStore, publisher EntrySyncPublisher) *DiaryService {
	return &DiaryService{
		diary:     diary,
		budgets:   budgets,
		publisher: publisher,
	}
}

// SaveEntry writes a diary entry and publishes a sync message. The save is
// the source of truth, publish failures are logged and swallowed.
func (s *DiaryService) SaveEntry(ctx context.Context, e core.DiaryEntry) error {
	if err := s.diary.Upsert(ctx, e); err != nil {
		return fmt.Errorf("save diary entry: %w", err)
	}

	if err := s.publishSyncMessage(ctx, e.Date); err != nil {
		slog.ErrorContext(ctx, "failed to publish sync message",
			"date", e.Date.String(), "error", err)
	}

	return nil
}

// Entry returns the diary entry for a date, reporting whether one exists.
func (s *DiaryService) Entry(ctx context.Context, date core.Date) (core.DiaryEntry, bool, error) {
	entries, err := s.diary.Load(ctx)
	if err != nil {
		return core.DiaryEntry{}, false, fmt.Errorf("load diary: %w", err)
	}
	for _, e := range entries {
		if e.Date.Compare(date) == 0 {
			return e, true, nil
		}
	}
	return core.DiaryEntry{}, false, nil
}

// SaveBudget replaces the budget record for a month.
func (s *DiaryService) SaveBudget(ctx context.Context, key core.MonthKey, rec core.BudgetRecord) error {
	if err := s.budgets.Upsert(ctx, key, rec); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}

// Budget returns the budget record for a month, defaulting to zeros when
// none is stored.
func (s *DiaryService) Budget(ctx context.Context, key core.MonthKey) (core.BudgetRecord, error) {
	rec, err := s.budgets.Get(ctx, key)
	if err != nil {
		return core.BudgetRecord{}, fmt.Errorf("load budget: %w", err)
	}
	return rec, nil
}

// Overview builds the budget-versus-actual view for the week and month that
// contain the reference date.
func (s *DiaryService) Overview(ctx context.Context, ref core.Date) (core.Overview, error) {
	entries, err := s.diary.Load(ctx)
	if err != nil {
		return core.Overview{}, fmt.Errorf("load diary: %w", err)
	}

	budget, err := s.budgets.Get(ctx, core.MonthKeyOf(ref))
	if err != nil {
		return core.Overview{}, fmt.Errorf("load budget: %w", err)
	}

	return core.BuildOverview(ref, entries, budget), nil
}

func (s *DiaryService) publishSyncMessage(ctx context.Context, date core.Date) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "sync publisher not configured, skipping sync message")
		return nil
	}
	return s.publisher.PublishEntrySync(ctx, date)
}

// Close releases the sync channel. Stores are closed by their backend.
func (s *DiaryService) Close() error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return fmt.Errorf("close sync publisher: %w", err)
		}
	}
	return nil
}
