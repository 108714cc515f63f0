// Package reminderscheduler composes the registration repository and the
// wake timer into the scheduler the note services depend on.
package reminderscheduler

import (
	"context"
	"fmt"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/reminder"
	"time"
)

type Scheduler struct {
	log           logging.Logger
	registrations reminder.RegistrationRepository
	wakeTimer     reminder.WakeTimer
	now           func() time.Time
}

func New(
	log logging.Logger,
	registrations reminder.RegistrationRepository,
	wakeTimer reminder.WakeTimer,
	now func() time.Time,
) *Scheduler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if registrations == nil {
		panic(e.NewNilArgumentError("registrations"))
	}
	if wakeTimer == nil {
		panic(e.NewNilArgumentError("wakeTimer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Scheduler{log: log, registrations: registrations, wakeTimer: wakeTimer, now: now}
}

func (s *Scheduler) Schedule(
	ctx context.Context,
	noteID note.ID,
	fireAt time.Time,
	payload string,
) (result reminder.Result, err error) {
	if !fireAt.After(s.now()) {
		return result, reminder.ErrFireAtNotInFuture
	}

	registration, err := s.registrations.Put(ctx, reminder.PutInput{
		NoteID:  noteID,
		FireAt:  fireAt,
		Payload: payload,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("noteID", noteID))
		return result, err
	}

	degraded, err := s.wakeTimer.ArmWake(ctx, reminder.Wake{
		NoteID:  registration.NoteID,
		Seq:     registration.Seq,
		FireAt:  registration.FireAt,
		Payload: registration.Payload,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("noteID", noteID))
		// The registration must not outlive a wake that was never armed,
		// otherwise reconciliation would consider the note covered.
		if delErr := s.registrations.Delete(ctx, noteID); delErr != nil {
			logging.Error(ctx, s.log, delErr, logging.Entry("noteID", noteID))
		}
		return result, fmt.Errorf("%w: %v", reminder.ErrSchedulingFailed, err)
	}
	if degraded {
		s.log.Warning(
			ctx,
			"Exact wake timing is unavailable, armed a best-effort wake.",
			logging.Entry("noteID", noteID),
			logging.Entry("fireAt", fireAt),
		)
	}

	s.log.Info(
		ctx,
		"Reminder wake armed.",
		logging.Entry("noteID", noteID),
		logging.Entry("fireAt", fireAt),
		logging.Entry("seq", registration.Seq),
	)
	return reminder.Result{Registration: registration, Degraded: degraded}, nil
}

func (s *Scheduler) Cancel(ctx context.Context, noteID note.ID) error {
	if err := s.registrations.Delete(ctx, noteID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("noteID", noteID))
		return err
	}
	s.log.Info(ctx, "Reminder wake cancelled.", logging.Entry("noteID", noteID))
	return nil
}
