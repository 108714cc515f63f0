package uow

import (
	"context"
	"somenotes/internal/core/domain/note"
)

type Context interface {
	Notes() note.Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
