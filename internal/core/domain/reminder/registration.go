package reminder

import (
	"somenotes/internal/core/domain/note"
	"time"
)

// Registration is the single live wake registration of a note. Every atomic
// replace assigns a fresh, never-reused Seq, so a wake carrying any other
// Seq is stale.
type Registration struct {
	NoteID  note.ID
	FireAt  time.Time
	Payload string
	Seq     int64
}

// Wake is the self-contained fire-time message. It carries everything the
// fire path needs, no live application state is read at fire time.
type Wake struct {
	NoteID  note.ID
	Seq     int64
	FireAt  time.Time
	Payload string
}
