package reminder

import (
	"context"
	"somenotes/internal/core/domain/note"
	"time"
)

type PutInput struct {
	NoteID  note.ID
	FireAt  time.Time
	Payload string
}

type RegistrationRepository interface {
	// Put inserts the registration or atomically replaces an existing one,
	// assigning a fresh Seq either way. Seq values are never reused, not
	// even after a Delete. At most one registration per note id can exist.
	Put(ctx context.Context, input PutInput) (Registration, error)
	GetByNoteID(ctx context.Context, noteID note.ID) (Registration, error)
	// Delete removes the note's registration, absent is not an error.
	Delete(ctx context.Context, noteID note.ID) error
	ReadAll(ctx context.Context) ([]Registration, error)
}
