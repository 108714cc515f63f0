package notification

import (
	"context"
	"somenotes/internal/core/domain/note"
	"sync"
)

type FakeDispatcher struct {
	DeliverError  error
	WithdrawError error

	Delivered []Alert
	Withdrawn []note.ID
	Calls     []string
	lock      sync.Mutex
}

func NewFakeDispatcher() *FakeDispatcher {
	return &FakeDispatcher{}
}

func (d *FakeDispatcher) Deliver(ctx context.Context, noteID note.ID, payload string) error {
	if d.DeliverError != nil {
		return d.DeliverError
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.Delivered = append(d.Delivered, Alert{NoteID: noteID, Body: payload})
	d.Calls = append(d.Calls, "deliver")
	return nil
}

func (d *FakeDispatcher) Withdraw(ctx context.Context, noteID note.ID) error {
	if d.WithdrawError != nil {
		return d.WithdrawError
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.Withdrawn = append(d.Withdrawn, noteID)
	d.Calls = append(d.Calls, "withdraw")
	return nil
}
