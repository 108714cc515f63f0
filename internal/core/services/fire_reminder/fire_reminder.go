package firereminder

import (
	"context"
	"errors"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/notification"
	"somenotes/internal/core/domain/reminder"
	"somenotes/internal/core/services"
	"time"
)

// Input mirrors the wake message. Payload is the content captured when the
// wake was armed, it is delivered as-is even if the note changed since.
type Input struct {
	NoteID  note.ID
	Seq     int64
	FireAt  time.Time
	Payload string
}

type Result struct {
	Delivered bool
}

type service struct {
	log           logging.Logger
	registrations reminder.RegistrationRepository
	dispatcher    notification.Dispatcher
}

func New(
	log logging.Logger,
	registrations reminder.RegistrationRepository,
	dispatcher notification.Dispatcher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if registrations == nil {
		panic(e.NewNilArgumentError("registrations"))
	}
	if dispatcher == nil {
		panic(e.NewNilArgumentError("dispatcher"))
	}
	return &service{log: log, registrations: registrations, dispatcher: dispatcher}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	registration, err := s.registrations.GetByNoteID(ctx, input.NoteID)
	if errors.Is(err, reminder.ErrRegistrationDoesNotExist) {
		// Cancelled or superseded after the wake left for the broker.
		s.log.Info(ctx, "Dropping stale wake, no live registration.", logging.Entry("noteID", input.NoteID))
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if registration.Seq != input.Seq {
		s.log.Info(
			ctx,
			"Dropping superseded wake.",
			logging.Entry("noteID", input.NoteID),
			logging.Entry("wakeSeq", input.Seq),
			logging.Entry("liveSeq", registration.Seq),
		)
		return result, nil
	}

	if err := s.dispatcher.Deliver(ctx, input.NoteID, input.Payload); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	// One-shot: the registration dies with the delivery.
	if err := s.registrations.Delete(ctx, input.NoteID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("noteID", input.NoteID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder delivered.",
		logging.Entry("noteID", input.NoteID),
		logging.Entry("fireAt", input.FireAt),
	)
	result.Delivered = true
	return result, nil
}
