package uow

import (
	"context"
	"somenotes/internal/core/domain/note"
	"sync"
)

type FakeUnitOfWorkContext struct {
	notes      *note.FakeRepository
	Committed  int
	RolledBack int
	lock       sync.Mutex
}

func (c *FakeUnitOfWorkContext) Notes() note.Repository {
	return c.notes
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Committed++
	return nil
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.RolledBack++
	return nil
}

type FakeUnitOfWork struct {
	BeginError error
	Context    *FakeUnitOfWorkContext
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: &FakeUnitOfWorkContext{notes: note.NewFakeRepository()},
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginError != nil {
		return nil, u.BeginError
	}
	return u.Context, nil
}

func (u *FakeUnitOfWork) Notes() *note.FakeRepository {
	return u.Context.notes
}
