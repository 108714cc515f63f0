package notification

import (
	"context"
	"somenotes/internal/core/domain/note"
)

// Alert is what the user sees. Line is the collapsed one-line view, Body the
// full payload. Tapping routes to the note identified by NoteID.
type Alert struct {
	NoteID note.ID
	Title  string
	Line   string
	Body   string
}

// Dispatcher shows and withdraws user-visible alerts keyed by note id. A
// second Deliver for the same note replaces the visible alert. It must be
// callable from a fire-time context with no live application state beyond
// its own construction parameters.
type Dispatcher interface {
	Deliver(ctx context.Context, noteID note.ID, payload string) error
	// Withdraw removes a visible alert, absent is not an error.
	Withdraw(ctx context.Context, noteID note.ID) error
}
