package mirror

import (
	"context"

	"spenddiary/internal/core"
)

// DiaryMirror receives a full copy of the diary. Saves overwrite the entry
// for a date in place, so the mirror is rewritten wholesale rather than
// appended to.
type DiaryMirror interface {
	Replace(ctx context.Context, entries []core.DiaryEntry) error
}
