package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spenddiary/internal/amqp"
	applog "spenddiary/internal/log"
	"spenddiary/internal/mirror"
	"spenddiary/internal/store"
)

// SyncWorker keeps the diary mirror in step with the store. It reacts to
// entry sync messages and periodically rewrites the mirror as a backstop
// for lost messages.
type SyncWorker struct {
	diary  store.DiaryStore
	mirror mirror.DiaryMirror
}

func NewSyncWorker(diary store.DiaryStore, mirror mirror.DiaryMirror) *SyncWorker {
	return &SyncWorker{
		diary:  diary,
		mirror: mirror,
	}
}

// HandleSyncMessage refreshes the mirror after an entry changed. A save
// overwrites the whole day, so the worker rewrites the full snapshot rather
// than patching a single row.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.EntrySyncMessage) error {
	date, err := msg.EntryDate()
	if err != nil {
		return fmt.Errorf("invalid sync message date %q: %w", msg.Date, err)
	}

	slog.InfoContext(ctx, "processing entry sync message",
		applog.FieldOperation, applog.OpSync,
		applog.FieldDate, date.String())

	return w.Resync(ctx)
}

// Resync copies the full diary into the mirror.
func (w *SyncWorker) Resync(ctx context.Context) error {
	entries, err := w.diary.Load(ctx)
	if err != nil {
		return fmt.Errorf("load diary: %w", err)
	}

	if err := w.mirror.Replace(ctx, entries); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}

	slog.InfoContext(ctx, "mirror resynced",
		applog.FieldOperation, applog.OpResync,
		applog.FieldRows, len(entries))
	return nil
}

// RunResyncLoop rewrites the mirror on a fixed interval until the context
// is cancelled. Errors are logged, the loop keeps going.
func (w *SyncWorker) RunResyncLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// One pass right away so a restart does not wait a whole interval.
	if err := w.Resync(ctx); err != nil {
		slog.ErrorContext(ctx, "initial resync failed", applog.FieldError, err)
	}

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "stopping resync loop", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.Resync(ctx); err != nil {
				slog.ErrorContext(ctx, "periodic resync failed", applog.FieldError, err)
			}
		}
	}
}
