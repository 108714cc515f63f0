package note

import (
	"context"
	"sort"
	"sync"
)

// FakeRepository is an in-memory Repository for service tests.
type FakeRepository struct {
	CreateError error
	UpdateError error
	DeleteError error
	GetError    error
	ReadError   error

	notes  map[ID]Note
	nextID ID
	lock   sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{notes: make(map[ID]Note), nextID: 1}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (n Note, err error) {
	if r.CreateError != nil {
		return n, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	n = Note{
		ID:         r.nextID,
		Content:    input.Content,
		CreatedAt:  input.CreatedAt,
		UpdatedAt:  input.UpdatedAt,
		ReminderAt: input.ReminderAt,
	}
	r.notes[n.ID] = n
	r.nextID++
	return n, nil
}

func (r *FakeRepository) Update(ctx context.Context, input UpdateInput) (n Note, err error) {
	if r.UpdateError != nil {
		return n, r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	n, ok := r.notes[input.ID]
	if !ok {
		return n, ErrNoteDoesNotExist
	}
	n.Content = input.Content
	n.UpdatedAt = input.UpdatedAt
	n.ReminderAt = input.ReminderAt
	r.notes[n.ID] = n
	return n, nil
}

func (r *FakeRepository) Delete(ctx context.Context, id ID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.notes[id]; !ok {
		return ErrNoteDoesNotExist
	}
	delete(r.notes, id)
	return nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (n Note, err error) {
	if r.GetError != nil {
		return n, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	n, ok := r.notes[id]
	if !ok {
		return n, ErrNoteDoesNotExist
	}
	return n, nil
}

func (r *FakeRepository) Read(ctx context.Context, options ReadOptions) ([]Note, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	notes := make([]Note, 0, len(r.notes))
	for _, n := range r.notes {
		if options.WithReminderOnly && !n.ReminderAt.IsPresent {
			continue
		}
		notes = append(notes, n)
	}
	switch options.OrderBy {
	case OrderByReminderAtAsc:
		sort.Slice(notes, func(i, j int) bool {
			return notes[i].ReminderAt.Value.Before(notes[j].ReminderAt.Value)
		})
	default:
		sort.Slice(notes, func(i, j int) bool {
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		})
	}
	return notes, nil
}

func (r *FakeRepository) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.notes)
}
