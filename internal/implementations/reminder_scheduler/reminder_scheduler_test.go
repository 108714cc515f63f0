package reminderscheduler

import (
	"context"
	"errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/reminder"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

const noteID = note.ID(1)

type testSuite struct {
	suite.Suite
	logger        *logging.FakeLogger
	registrations *reminder.FakeRegistrationRepository
	wakeTimer     *reminder.FakeWakeTimer
	scheduler     *Scheduler
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.registrations = reminder.NewFakeRegistrationRepository()
	suite.wakeTimer = reminder.NewFakeWakeTimer()
	suite.scheduler = New(
		suite.logger,
		suite.registrations,
		suite.wakeTimer,
		func() time.Time { return Now },
	)
}

func TestReminderScheduler(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestScheduleArmsWake() {
	fireAt := Now.Add(time.Hour)

	result, err := s.scheduler.Schedule(context.Background(), noteID, fireAt, "water the plants")

	s.Nil(err)
	s.False(result.Degraded)
	s.Equal(int64(1), result.Registration.Seq)
	s.Require().Len(s.wakeTimer.Armed, 1)
	s.Equal(reminder.Wake{NoteID: noteID, Seq: 1, FireAt: fireAt, Payload: "water the plants"}, s.wakeTimer.Armed[0])
}

func (s *testSuite) TestScheduleTwiceLeavesOneRegistrationAtLatestTime() {
	t1 := Now.Add(time.Hour)
	t2 := Now.Add(2 * time.Hour)

	_, err := s.scheduler.Schedule(context.Background(), noteID, t1, "v1")
	s.Require().Nil(err)
	result, err := s.scheduler.Schedule(context.Background(), noteID, t2, "v2")
	s.Require().Nil(err)

	s.Equal(1, s.registrations.Count())
	s.Equal(int64(2), result.Registration.Seq)
	stored, err := s.registrations.GetByNoteID(context.Background(), noteID)
	s.Nil(err)
	s.Equal(t2, stored.FireAt)
	s.Equal("v2", stored.Payload)
	// Both wakes were armed, only the second carries the live seq.
	s.Require().Len(s.wakeTimer.Armed, 2)
	s.Equal(int64(2), s.wakeTimer.Armed[1].Seq)
}

func (s *testSuite) TestPastFireAtIsRejected() {
	for name, fireAt := range map[string]time.Time{
		"past":    Now.Add(-time.Minute),
		"present": Now,
	} {
		s.Run(name, func() {
			_, err := s.scheduler.Schedule(context.Background(), noteID, fireAt, "late")

			s.ErrorIs(err, reminder.ErrFireAtNotInFuture)
			s.Equal(0, s.registrations.Count())
			s.Len(s.wakeTimer.Armed, 0)
		})
	}
}

func (s *testSuite) TestArmFailureRemovesRegistration() {
	s.wakeTimer.Error = errors.New("broker unavailable")

	_, err := s.scheduler.Schedule(context.Background(), noteID, Now.Add(time.Hour), "p")

	s.ErrorIs(err, reminder.ErrSchedulingFailed)
	s.Equal(0, s.registrations.Count())
}

func (s *testSuite) TestDegradedTimerIsReported() {
	s.wakeTimer.Degraded = true

	result, err := s.scheduler.Schedule(context.Background(), noteID, Now.Add(time.Hour), "p")

	s.Nil(err)
	s.True(result.Degraded)
	s.Equal(1, s.registrations.Count())
}

func (s *testSuite) TestCancelRemovesRegistration() {
	_, err := s.scheduler.Schedule(context.Background(), noteID, Now.Add(time.Hour), "p")
	s.Require().Nil(err)

	s.Nil(s.scheduler.Cancel(context.Background(), noteID))

	s.Equal(0, s.registrations.Count())
}

func (s *testSuite) TestCancelWithoutRegistrationIsNoOp() {
	s.Nil(s.scheduler.Cancel(context.Background(), noteID))
}
