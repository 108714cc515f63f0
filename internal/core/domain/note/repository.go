package note

import (
	"context"
	c "somenotes/internal/core/domain/common"
	"time"
)

type CreateInput struct {
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReminderAt c.Optional[time.Time]
}

type UpdateInput struct {
	ID         ID
	Content    string
	UpdatedAt  time.Time
	ReminderAt c.Optional[time.Time]
}

type ReadOptions struct {
	WithReminderOnly bool
	OrderBy          OrderBy
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Note, error)
	// Update bumps UpdatedAt and replaces content and reminder state,
	// CreatedAt is never touched. Returns ErrNoteDoesNotExist for unknown ids.
	Update(ctx context.Context, input UpdateInput) (Note, error)
	Delete(ctx context.Context, id ID) error
	GetByID(ctx context.Context, id ID) (Note, error)
	Read(ctx context.Context, options ReadOptions) ([]Note, error)
}
