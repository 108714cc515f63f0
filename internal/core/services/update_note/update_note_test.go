package updatenote

import (
	"context"
	c "somenotes/internal/core/domain/common"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/notification"
	"somenotes/internal/core/domain/reminder"
	uow "somenotes/internal/core/domain/unit_of_work"
	"somenotes/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	unitOfWork *uow.FakeUnitOfWork
	scheduler  *reminder.FakeScheduler
	dispatcher *notification.FakeDispatcher
	service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.unitOfWork = uow.NewFakeUnitOfWork()
	suite.scheduler = reminder.NewFakeScheduler()
	suite.dispatcher = notification.NewFakeDispatcher()
	suite.service = New(
		suite.logger,
		suite.unitOfWork,
		suite.scheduler,
		suite.dispatcher,
		func() time.Time { return Now },
	)
}

func TestUpdateNoteService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createNote(content string, reminderAt c.Optional[time.Time]) note.Note {
	n, err := s.unitOfWork.Notes().Create(context.Background(), note.CreateInput{
		Content:    content,
		CreatedAt:  Now.Add(-time.Hour),
		UpdatedAt:  Now.Add(-time.Hour),
		ReminderAt: reminderAt,
	})
	s.Require().Nil(err)
	if reminderAt.IsPresent {
		_, err := s.scheduler.Schedule(context.Background(), n.ID, reminderAt.Value, content)
		s.Require().Nil(err)
	}
	return n
}

func (s *testSuite) TestUpdateBumpsUpdatedAtOnly() {
	n := s.createNote("before", c.Optional[time.Time]{})

	result, err := s.service.Run(context.Background(), Input{NoteID: n.ID, Content: "after"})

	s.Nil(err)
	s.Equal("after", result.Note.Content)
	s.Equal(n.CreatedAt, result.Note.CreatedAt)
	s.Equal(Now, result.Note.UpdatedAt)
}

func (s *testSuite) TestUnknownNoteFails() {
	_, err := s.service.Run(context.Background(), Input{NoteID: note.ID(404), Content: "nope"})

	s.ErrorIs(err, note.ErrNoteDoesNotExist)
}

func (s *testSuite) TestRescheduleLeavesExactlyOneRegistration() {
	t1 := Now.Add(time.Hour)
	t2 := Now.Add(2 * time.Hour)
	n := s.createNote("shifting", c.NewOptional(t1, true))

	_, err := s.service.Run(context.Background(), Input{
		NoteID:     n.ID,
		Content:    "shifting",
		ReminderAt: c.NewOptional(t2, true),
	})

	s.Nil(err)
	s.Len(s.scheduler.Scheduled, 1)
	s.Equal(t2, s.scheduler.Scheduled[n.ID].FireAt)
	// Atomic replace, never cancel-then-schedule: the bumped seq is what
	// invalidates the wake armed for t1.
	s.Equal([]string{"schedule", "schedule"}, s.scheduler.Calls)
	s.Len(s.scheduler.Canceled, 0)
	s.Equal(int64(2), s.scheduler.Scheduled[n.ID].Seq)
	s.Equal([]note.ID{n.ID}, s.dispatcher.Withdrawn)
}

func (s *testSuite) TestClearingReminderCancelsAndWithdraws() {
	n := s.createNote("no more alarm", c.NewOptional(Now.Add(time.Hour), true))

	result, err := s.service.Run(context.Background(), Input{NoteID: n.ID, Content: "no more alarm"})

	s.Nil(err)
	s.False(result.Note.ReminderAt.IsPresent)
	s.Len(s.scheduler.Scheduled, 0)
	s.Equal([]note.ID{n.ID}, s.scheduler.Canceled)
	s.Equal([]note.ID{n.ID}, s.dispatcher.Withdrawn)
}

func (s *testSuite) TestAddingReminderToPlainNoteSchedulesOnly() {
	n := s.createNote("plain", c.Optional[time.Time]{})
	fireAt := Now.Add(time.Hour)

	_, err := s.service.Run(context.Background(), Input{
		NoteID:     n.ID,
		Content:    "plain",
		ReminderAt: c.NewOptional(fireAt, true),
	})

	s.Nil(err)
	s.Len(s.scheduler.Canceled, 0)
	s.Len(s.dispatcher.Withdrawn, 0)
	s.Equal(fireAt, s.scheduler.Scheduled[n.ID].FireAt)
}

func (s *testSuite) TestPastReminderFailsWithoutMutation() {
	n := s.createNote("unchanged", c.Optional[time.Time]{})

	_, err := s.service.Run(context.Background(), Input{
		NoteID:     n.ID,
		Content:    "changed",
		ReminderAt: c.NewOptional(Now.Add(-time.Minute), true),
	})

	s.ErrorIs(err, note.ErrReminderNotInFuture)
	stored, getErr := s.unitOfWork.Notes().GetByID(context.Background(), n.ID)
	s.Nil(getErr)
	s.Equal("unchanged", stored.Content)
	s.Len(s.scheduler.Scheduled, 0)
}

func (s *testSuite) TestEmptyContentFails() {
	n := s.createNote("keep me", c.Optional[time.Time]{})

	_, err := s.service.Run(context.Background(), Input{NoteID: n.ID, Content: " \t "})

	s.ErrorIs(err, note.ErrContentEmpty)
	stored, getErr := s.unitOfWork.Notes().GetByID(context.Background(), n.ID)
	s.Nil(getErr)
	s.Equal("keep me", stored.Content)
}
