package deletenote

import (
	"context"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/notification"
	"somenotes/internal/core/domain/reminder"
	uow "somenotes/internal/core/domain/unit_of_work"
	"somenotes/internal/core/services"
)

type Input struct {
	NoteID note.ID
}

type Result struct {
	Note note.Note
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	scheduler  reminder.Scheduler
	dispatcher notification.Dispatcher
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	scheduler reminder.Scheduler,
	dispatcher notification.Dispatcher,
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
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		scheduler:  scheduler,
		dispatcher: dispatcher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
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

	// Disarm before the row goes away so no wake can ever fire for a note
	// that no longer exists.
	if existing.ReminderAt.IsPresent {
		if err := s.scheduler.Cancel(ctx, existing.ID); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("noteID", existing.ID))
			return result, err
		}
		if err := s.dispatcher.Withdraw(ctx, existing.ID); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("noteID", existing.ID))
		}
	}

	if err := uow.Notes().Delete(ctx, input.NoteID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(ctx, "Note successfully deleted.", logging.Entry("noteID", existing.ID))
	result.Note = existing
	return result, nil
}
