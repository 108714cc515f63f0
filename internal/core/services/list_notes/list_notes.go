package listnotes

import (
	"context"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/services"
)

type Input struct{}

type Result struct {
	Notes []note.Note
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
	notes, err := s.noteRepository.Read(ctx, note.ReadOptions{OrderBy: note.OrderByUpdatedAtDesc})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	result.Notes = notes
	return result, nil
}
