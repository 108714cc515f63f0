package refreshsnapshots

import (
	"context"
	c "somenotes/internal/core/domain/common"
	"somenotes/internal/core/domain/livequery"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeInner struct {
	Error error
	Runs  int
}

func (f *fakeInner) Run(ctx context.Context, input struct{}) (struct{}, error) {
	f.Runs++
	return struct{}{}, f.Error
}

type testSuite struct {
	suite.Suite
	logger        *logging.FakeLogger
	notes         *note.FakeRepository
	allNotes      *livequery.Stream[[]note.Note]
	reminderNotes *livequery.Stream[[]note.Note]
	inner         *fakeInner
	service       services.Service[struct{}, struct{}]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.notes = note.NewFakeRepository()
	suite.allNotes = livequery.NewStream[[]note.Note]()
	suite.reminderNotes = livequery.NewStream[[]note.Note]()
	suite.inner = &fakeInner{}
	suite.service = WithSnapshotRefresh[struct{}, struct{}](
		suite.logger,
		suite.notes,
		suite.allNotes,
		suite.reminderNotes,
		suite.inner,
	)
}

func TestSnapshotRefreshDecorator(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) receive(stream *livequery.Stream[[]note.Note]) ([]note.Note, bool) {
	sub := stream.Subscribe()
	defer sub.Close()
	received := make(chan []note.Note, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sub.Collect(ctx, func(_ context.Context, snapshot []note.Note) {
		received <- snapshot
	})
	select {
	case snapshot := <-received:
		return snapshot, true
	case <-time.After(100 * time.Millisecond):
		return nil, false
	}
}

func (s *testSuite) TestPublishesBothSnapshotsAfterSuccess() {
	_, err := s.notes.Create(context.Background(), note.CreateInput{
		Content:    "with reminder",
		CreatedAt:  Now,
		UpdatedAt:  Now,
		ReminderAt: c.NewOptional(Now.Add(time.Hour), true),
	})
	s.Require().Nil(err)
	_, err = s.notes.Create(context.Background(), note.CreateInput{
		Content:   "plain",
		CreatedAt: Now,
		UpdatedAt: Now.Add(time.Minute),
	})
	s.Require().Nil(err)

	_, err = s.service.Run(context.Background(), struct{}{})
	s.Nil(err)

	all, ok := s.receive(s.allNotes)
	s.Require().True(ok)
	s.Require().Len(all, 2)
	s.Equal("plain", all[0].Content, "queryAll is ordered by updatedAt descending")

	withReminder, ok := s.receive(s.reminderNotes)
	s.Require().True(ok)
	s.Require().Len(withReminder, 1)
	s.Equal("with reminder", withReminder[0].Content)
}

func (s *testSuite) TestNoSnapshotOnInnerFailure() {
	s.inner.Error = note.ErrContentEmpty

	_, err := s.service.Run(context.Background(), struct{}{})

	s.NotNil(err)
	_, ok := s.receive(s.allNotes)
	s.False(ok)
}

func (s *testSuite) TestNoFabricatedSnapshotOnReadFailure() {
	s.notes.ReadError = context.DeadlineExceeded

	_, err := s.service.Run(context.Background(), struct{}{})

	s.Nil(err, "a stale view is tolerated, the mutation itself succeeded")
	s.Equal(1, s.inner.Runs)
	_, ok := s.receive(s.allNotes)
	s.False(ok)
}
