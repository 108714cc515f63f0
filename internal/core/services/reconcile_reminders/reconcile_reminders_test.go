package reconcilereminders

import (
	"context"
	c "somenotes/internal/core/domain/common"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/reminder"
	"somenotes/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger        *logging.FakeLogger
	notes         *note.FakeRepository
	registrations *reminder.FakeRegistrationRepository
	scheduler     *reminder.FakeScheduler
	service       services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.notes = note.NewFakeRepository()
	suite.registrations = reminder.NewFakeRegistrationRepository()
	suite.scheduler = reminder.NewFakeScheduler()
	suite.service = New(
		suite.logger,
		suite.notes,
		suite.registrations,
		suite.scheduler,
		func() time.Time { return Now },
	)
}

func TestReconcileRemindersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createNote(reminderAt c.Optional[time.Time]) note.Note {
	n, err := s.notes.Create(context.Background(), note.CreateInput{
		Content:    "reconciled",
		CreatedAt:  Now,
		UpdatedAt:  Now,
		ReminderAt: reminderAt,
	})
	s.Require().Nil(err)
	return n
}

func (s *testSuite) TestUnarmedFutureReminderIsRearmed() {
	fireAt := Now.Add(time.Hour)
	n := s.createNote(c.NewOptional(fireAt, true))

	result, err := s.service.Run(context.Background(), Input{})

	s.Nil(err)
	s.Equal(1, result.Armed)
	s.Equal(fireAt, s.scheduler.Scheduled[n.ID].FireAt)
}

func (s *testSuite) TestOrphanRegistrationIsCancelled() {
	// A registration without any owning note, e.g. a delete that crashed
	// between cancel and commit on a previous run.
	_, err := s.registrations.Put(context.Background(), reminder.PutInput{
		NoteID: note.ID(99), FireAt: Now.Add(time.Hour), Payload: "ghost",
	})
	s.Require().Nil(err)

	result, err := s.service.Run(context.Background(), Input{})

	s.Nil(err)
	s.Equal(1, result.Canceled)
	s.Equal([]note.ID{note.ID(99)}, s.scheduler.Canceled)
}

func (s *testSuite) TestMovedReminderIsRearmedAtNewTime() {
	newFireAt := Now.Add(2 * time.Hour)
	n := s.createNote(c.NewOptional(newFireAt, true))
	_, err := s.registrations.Put(context.Background(), reminder.PutInput{
		NoteID: n.ID, FireAt: Now.Add(time.Hour), Payload: "old time",
	})
	s.Require().Nil(err)

	result, err := s.service.Run(context.Background(), Input{})

	s.Nil(err)
	s.Equal(1, result.Armed)
	s.Equal(newFireAt, s.scheduler.Scheduled[n.ID].FireAt)
}

func (s *testSuite) TestMatchingRegistrationIsLeftAlone() {
	fireAt := Now.Add(time.Hour)
	n := s.createNote(c.NewOptional(fireAt, true))
	_, err := s.registrations.Put(context.Background(), reminder.PutInput{
		NoteID: n.ID, FireAt: fireAt, Payload: "reconciled",
	})
	s.Require().Nil(err)

	result, err := s.service.Run(context.Background(), Input{})

	s.Nil(err)
	s.Equal(0, result.Armed)
	s.Equal(0, result.Canceled)
	s.Len(s.scheduler.Calls, 0)
}

func (s *testSuite) TestPastReminderIsNotRearmed() {
	s.createNote(c.NewOptional(Now.Add(-time.Hour), true))

	result, err := s.service.Run(context.Background(), Input{})

	s.Nil(err)
	s.Equal(0, result.Armed)
	s.Len(s.scheduler.Scheduled, 0)
}
