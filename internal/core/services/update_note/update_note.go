package updatenote

import (
	"context"
	c "somenotes/internal/core/domain/common"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/notification"
	"somenotes/internal/core/domain/reminder"
	uow "somenotes/internal/core/domain/unit_of_work"
	"somenotes/internal/core/services"
	"strings"
	"time"
)

type Input struct {
	NoteID     note.ID
	Content    string
	ReminderAt c.Optional[time.Time]
}

type Result struct {
	Note               note.Note
	SchedulingDegraded bool
	SchedulingError    error
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	scheduler  reminder.Scheduler
	dispatcher notification.Dispatcher
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	scheduler reminder.Scheduler,
	dispatcher notification.Dispatcher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if dispatcher == nil {
		panic(e.NewNilArgumentError("dispatcher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		scheduler:  scheduler,
		dispatcher: dispatcher,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return result, note.ErrContentEmpty
	}
	if input.ReminderAt.IsPresent && !input.ReminderAt.Value.After(now) {
		return result, note.ErrReminderNotInFuture
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	existing, err := uow.Notes().GetByID(ctx, input.NoteID)
	if err != nil {
		if err != note.ErrNoteDoesNotExist {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	updatedNote, err := uow.Notes().Update(ctx, note.UpdateInput{
		ID:         input.NoteID,
		Content:    content,
		UpdatedAt:  now,
		ReminderAt: input.ReminderAt,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("note", updatedNote))
		return result, err
	}
	result.Note = updatedNote

	if existing.ReminderAt.IsPresent {
		// Cancel only when the reminder goes away. A reschedule goes
		// through Schedule's atomic replace instead, which bumps seq so an
		// in-flight wake for the old registration cannot masquerade as the
		// new one.
		if !input.ReminderAt.IsPresent {
			if err := s.scheduler.Cancel(ctx, existing.ID); err != nil {
				logging.Error(ctx, s.log, err, logging.Entry("noteID", existing.ID))
			}
		}
		// The old reminder may have fired already and still be on screen.
		if err := s.dispatcher.Withdraw(ctx, existing.ID); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("noteID", existing.ID))
		}
	}
	if input.ReminderAt.IsPresent {
		scheduled, err := s.scheduler.Schedule(ctx, updatedNote.ID, input.ReminderAt.Value, content)
		if err != nil {
			s.log.Warning(
				ctx,
				"Note saved but its wake could not be armed.",
				logging.Entry("noteID", updatedNote.ID),
				logging.Entry("err", err),
			)
			result.SchedulingError = err
			return result, nil
		}
		result.SchedulingDegraded = scheduled.Degraded
	}

	s.log.Info(ctx, "Note successfully updated.", logging.Entry("note", updatedNote))
	return result, nil
}
