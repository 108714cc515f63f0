package refreshsnapshots

import (
	"context"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/livequery"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/services"
)

// service decorates a mutating note service: after every successful run it
// re-reads both orderings and pushes complete snapshots to the live-query
// streams. On a read failure the previous snapshot simply stands, an empty
// snapshot is never fabricated.
type service[T any, S any] struct {
	log            logging.Logger
	noteRepository note.Repository
	allNotes       *livequery.Stream[[]note.Note]
	reminderNotes  *livequery.Stream[[]note.Note]
	wrapped        services.Service[T, S]
}

func WithSnapshotRefresh[T any, S any](
	log logging.Logger,
	noteRepository note.Repository,
	allNotes *livequery.Stream[[]note.Note],
	reminderNotes *livequery.Stream[[]note.Note],
	wrapped services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if noteRepository == nil {
		panic(e.NewNilArgumentError("noteRepository"))
	}
	if allNotes == nil {
		panic(e.NewNilArgumentError("allNotes"))
	}
	if reminderNotes == nil {
		panic(e.NewNilArgumentError("reminderNotes"))
	}
	if wrapped == nil {
		panic(e.NewNilArgumentError("wrapped"))
	}
	return &service[T, S]{
		log:            log,
		noteRepository: noteRepository,
		allNotes:       allNotes,
		reminderNotes:  reminderNotes,
		wrapped:        wrapped,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	result, err = s.wrapped.Run(ctx, input)
	if err != nil {
		return result, err
	}

	notes, readErr := s.noteRepository.Read(ctx, note.ReadOptions{OrderBy: note.OrderByUpdatedAtDesc})
	if readErr != nil {
		logging.Error(ctx, s.log, readErr)
		return result, nil
	}
	s.allNotes.Publish(notes)

	reminderNotes, readErr := s.noteRepository.Read(ctx, note.ReadOptions{
		WithReminderOnly: true,
		OrderBy:          note.OrderByReminderAtAsc,
	})
	if readErr != nil {
		logging.Error(ctx, s.log, readErr)
		return result, nil
	}
	s.reminderNotes.Publish(reminderNotes)

	return result, nil
}
