package getnote

import (
	"context"
	c "somenotes/internal/core/domain/common"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/services"
)

type Input struct {
	NoteID note.ID
}

// Result carries an absent Note rather than an error for unknown ids.
type Result struct {
	Note c.Optional[note.Note]
}

type service struct {
	log            logging.Logger
	noteRepository note.Repository
}

func New(log logging.Logger, noteRepository note.Repository) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if noteRepository == nil {
		panic(e.NewNilArgumentError("noteRepository"))
	}
	return &service{log: log, noteRepository: noteRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	n, err := s.noteRepository.GetByID(ctx, input.NoteID)
	if err == note.ErrNoteDoesNotExist {
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.Note = c.NewOptional(n, true)
	return result, nil
}
