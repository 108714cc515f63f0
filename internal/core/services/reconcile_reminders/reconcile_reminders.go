package reconcilereminders

import (
	"context"
	"errors"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/reminder"
	"somenotes/internal/core/services"
	"time"
)

// The service repairs divergence between the note store and the scheduler:
// notes with a future reminder but no live registration get re-armed, and
// registrations whose owning note is gone, lost its reminder, or moved it
// are cancelled. It runs at startup and periodically.
type Input struct{}

type Result struct {
	Armed    int
	Canceled int
}

type service struct {
	log            logging.Logger
	noteRepository note.Repository
	registrations  reminder.RegistrationRepository
	scheduler      reminder.Scheduler
	now            func() time.Time
}

func New(
	log logging.Logger,
	noteRepository note.Repository,
	registrations reminder.RegistrationRepository,
	scheduler reminder.Scheduler,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if noteRepository == nil {
		panic(e.NewNilArgumentError("noteRepository"))
	}
	if registrations == nil {
		panic(e.NewNilArgumentError("registrations"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		noteRepository: noteRepository,
		registrations:  registrations,
		scheduler:      scheduler,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()

	reminderNotes, err := s.noteRepository.Read(ctx, note.ReadOptions{
		WithReminderOnly: true,
		OrderBy:          note.OrderByReminderAtAsc,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	registrations, err := s.registrations.ReadAll(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	wantFireAt := make(map[note.ID]time.Time, len(reminderNotes))
	for _, n := range reminderNotes {
		wantFireAt[n.ID] = n.ReminderAt.Value
	}
	registered := make(map[note.ID]reminder.Registration, len(registrations))
	for _, reg := range registrations {
		registered[reg.NoteID] = reg
	}

	for _, reg := range registrations {
		fireAt, ok := wantFireAt[reg.NoteID]
		if ok && fireAt.Equal(reg.FireAt) {
			continue
		}
		// Orphan: the note is gone, the reminder was cleared, or it moved.
		// A moved reminder is re-armed below, cancelling first keeps the
		// at-most-one invariant visible in the registration table.
		if !ok {
			if err := s.scheduler.Cancel(ctx, reg.NoteID); err != nil {
				logging.Error(ctx, s.log, err, logging.Entry("noteID", reg.NoteID))
				return result, err
			}
			result.Canceled++
		}
	}

	for _, n := range reminderNotes {
		if !n.ReminderAt.Value.After(now) {
			// Missed while down, the broker replays its own copy if one is
			// still queued. Nothing to re-arm.
			continue
		}
		if reg, ok := registered[n.ID]; ok && reg.FireAt.Equal(n.ReminderAt.Value) {
			continue
		}
		if _, err := s.scheduler.Schedule(ctx, n.ID, n.ReminderAt.Value, n.Content); err != nil {
			if errors.Is(err, reminder.ErrSchedulingFailed) {
				s.log.Warning(ctx, "Could not re-arm reminder.", logging.Entry("noteID", n.ID), logging.Entry("err", err))
				continue
			}
			logging.Error(ctx, s.log, err, logging.Entry("noteID", n.ID))
			return result, err
		}
		result.Armed++
	}

	if result.Armed > 0 || result.Canceled > 0 {
		s.log.Info(
			ctx,
			"Reminders reconciled.",
			logging.Entry("armed", result.Armed),
			logging.Entry("canceled", result.Canceled),
		)
	}
	return result, nil
}
