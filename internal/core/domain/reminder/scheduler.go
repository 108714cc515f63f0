package reminder

import (
	"context"
	"somenotes/internal/core/domain/note"
	"time"
)

type Result struct {
	Registration Registration
	// Degraded is set when the exact-wake facility is unavailable and the
	// wake was armed with best-effort timing instead.
	Degraded bool
}

type Scheduler interface {
	// Schedule atomically replaces any live registration for the note and
	// arms a wake for fireAt. ErrFireAtNotInFuture if fireAt <= now.
	Schedule(ctx context.Context, noteID note.ID, fireAt time.Time, payload string) (Result, error)
	// Cancel disarms the note's wake. Not an error if none is armed.
	Cancel(ctx context.Context, noteID note.ID) error
}

// WakeTimer is the timer boundary. Armed wakes must survive process restarts.
// Disarming is logical: a superseded or cancelled wake is detected by its Seq
// at fire time and dropped.
type WakeTimer interface {
	ArmWake(ctx context.Context, w Wake) (degraded bool, err error)
}
