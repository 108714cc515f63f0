package reminder

import (
	"context"
	"somenotes/internal/core/domain/note"
	"sync"
	"time"
)

// FakeRegistrationRepository keeps registrations in memory with real
// replace-bumps-seq semantics.
type FakeRegistrationRepository struct {
	PutError    error
	GetError    error
	DeleteError error
	ReadError   error

	registrations map[note.ID]Registration
	lastSeq       int64
	lock          sync.Mutex
}

func NewFakeRegistrationRepository() *FakeRegistrationRepository {
	return &FakeRegistrationRepository{registrations: make(map[note.ID]Registration)}
}

func (r *FakeRegistrationRepository) Put(ctx context.Context, input PutInput) (reg Registration, err error) {
	if r.PutError != nil {
		return reg, r.PutError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	// Seq values are never reused, matching the DB sequence backing the
	// real repository.
	r.lastSeq++
	reg = Registration{NoteID: input.NoteID, FireAt: input.FireAt, Payload: input.Payload, Seq: r.lastSeq}
	r.registrations[input.NoteID] = reg
	return reg, nil
}

func (r *FakeRegistrationRepository) GetByNoteID(ctx context.Context, noteID note.ID) (reg Registration, err error) {
	if r.GetError != nil {
		return reg, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	reg, ok := r.registrations[noteID]
	if !ok {
		return reg, ErrRegistrationDoesNotExist
	}
	return reg, nil
}

func (r *FakeRegistrationRepository) Delete(ctx context.Context, noteID note.ID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.registrations, noteID)
	return nil
}

func (r *FakeRegistrationRepository) ReadAll(ctx context.Context) ([]Registration, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	registrations := make([]Registration, 0, len(r.registrations))
	for _, reg := range r.registrations {
		registrations = append(registrations, reg)
	}
	return registrations, nil
}

func (r *FakeRegistrationRepository) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.registrations)
}

type FakeWakeTimer struct {
	Armed    []Wake
	Degraded bool
	Error    error
	lock     sync.Mutex
}

func NewFakeWakeTimer() *FakeWakeTimer {
	return &FakeWakeTimer{}
}

func (t *FakeWakeTimer) ArmWake(ctx context.Context, w Wake) (bool, error) {
	if t.Error != nil {
		return false, t.Error
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	t.Armed = append(t.Armed, w)
	return t.Degraded, nil
}

// FakeScheduler records Schedule and Cancel calls for coordinator tests.
type FakeScheduler struct {
	ScheduleError error
	Degraded      bool

	Scheduled map[note.ID]Registration
	Canceled  []note.ID
	Calls     []string
	lastSeq   int64
	lock      sync.Mutex
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{Scheduled: make(map[note.ID]Registration)}
}

func (s *FakeScheduler) Schedule(
	ctx context.Context,
	noteID note.ID,
	fireAt time.Time,
	payload string,
) (result Result, err error) {
	if s.ScheduleError != nil {
		return result, s.ScheduleError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.lastSeq++
	reg := Registration{NoteID: noteID, FireAt: fireAt, Payload: payload, Seq: s.lastSeq}
	s.Scheduled[noteID] = reg
	s.Calls = append(s.Calls, "schedule")
	return Result{Registration: reg, Degraded: s.Degraded}, nil
}

func (s *FakeScheduler) Cancel(ctx context.Context, noteID note.ID) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.Scheduled, noteID)
	s.Canceled = append(s.Canceled, noteID)
	s.Calls = append(s.Calls, "cancel")
	return nil
}
