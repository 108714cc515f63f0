package createnote

import (
	"context"
	c "somenotes/internal/core/domain/common"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/reminder"
	uow "somenotes/internal/core/domain/unit_of_work"
	"somenotes/internal/core/services"
	"strings"
	"time"
)

type Input struct {
	Content    string
	ReminderAt c.Optional[time.Time]
}

type Result struct {
	Note note.Note
	// SchedulingDegraded reports that the wake was armed with best-effort
	// timing only.
	SchedulingDegraded bool
	// SchedulingError is set when the note was saved but the wake could not
	// be armed. The save itself still succeeded, reconciliation re-arms the
	// reminder later.
	SchedulingError error
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	scheduler  reminder.Scheduler
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	scheduler reminder.Scheduler,
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
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		scheduler:  scheduler,
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

	createdNote, err := uow.Notes().Create(ctx, note.CreateInput{
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
		ReminderAt: input.ReminderAt,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("note", createdNote))
		return result, err
	}
	result.Note = createdNote

	if input.ReminderAt.IsPresent {
		scheduled, err := s.scheduler.Schedule(ctx, createdNote.ID, input.ReminderAt.Value, content)
		if err != nil {
			s.log.Warning(
				ctx,
				"Note saved but its wake could not be armed.",
				logging.Entry("noteID", createdNote.ID),
				logging.Entry("err", err),
			)
			result.SchedulingError = err
			return result, nil
		}
		result.SchedulingDegraded = scheduled.Degraded
	}

	s.log.Info(ctx, "Note successfully created.", logging.Entry("note", createdNote))
	return result, nil
}
