package response

import (
	"somenotes/internal/core/domain/note"
	"time"
)

type Note struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// ReminderAt is epoch milliseconds, absent when no reminder is set.
	ReminderAt *int64 `json:"reminder_at"`
}

func (n *Note) FromDomainType(dn note.Note) {
	n.ID = int64(dn.ID)
	n.Content = dn.Content
	n.CreatedAt = dn.CreatedAt
	n.UpdatedAt = dn.UpdatedAt
	if dn.ReminderAt.IsPresent {
		reminderAt := dn.ReminderAt.Value.UnixMilli()
		n.ReminderAt = &reminderAt
	}
}

func NotesFromDomainType(dns []note.Note) []Note {
	notes := make([]Note, 0, len(dns))
	for _, dn := range dns {
		n := Note{}
		n.FromDomainType(dn)
		notes = append(notes, n)
	}
	return notes
}

// SchedulingWarnings translates non-fatal scheduling outcomes for 2xx
// responses. The note itself was saved either way.
func SchedulingWarnings(degraded bool, schedulingErr error) []string {
	warnings := []string{}
	if degraded {
		warnings = append(warnings, "scheduling degraded")
	}
	if schedulingErr != nil {
		warnings = append(warnings, "reminder could not be armed, it will be retried")
	}
	return warnings
}
