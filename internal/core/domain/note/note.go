package note

import (
	c "somenotes/internal/core/domain/common"
	"time"
)

type ID int64

// Note is owned by the store; every other component works with copies.
type Note struct {
	ID         ID
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReminderAt c.Optional[time.Time]
}
