package note

import (
	"context"
	"os"
	c "somenotes/internal/core/domain/common"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxNoteRepository(t *testing.T) {
	if os.Getenv("TEST_POSTGRESQL_URL") == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set.")
	}
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) create(content string, updatedAt time.Time, reminderAt c.Optional[time.Time]) note.Note {
	n, err := suite.repo.Create(context.Background(), note.CreateInput{
		Content:    content,
		CreatedAt:  NOW,
		UpdatedAt:  updatedAt,
		ReminderAt: reminderAt,
	})
	suite.Require().Nil(err)
	return n
}

func (suite *testSuite) TestCreateAndGet() {
	reminderAt := c.NewOptional(NOW.Add(time.Hour), true)
	created := suite.create("groceries", NOW, reminderAt)

	got, err := suite.repo.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, got.ID)
	assert.Equal("groceries", got.Content)
	assert.True(got.ReminderAt.IsPresent)
	assert.True(reminderAt.Value.Equal(got.ReminderAt.Value))
}

func (suite *testSuite) TestGetUnknownID() {
	_, err := suite.repo.GetByID(context.Background(), note.ID(404))

	suite.Require().ErrorIs(err, note.ErrNoteDoesNotExist)
}

func (suite *testSuite) TestUpdateReplacesContentAndReminder() {
	created := suite.create("before", NOW, c.NewOptional(NOW.Add(time.Hour), true))

	updated, err := suite.repo.Update(context.Background(), note.UpdateInput{
		ID:        created.ID,
		Content:   "after",
		UpdatedAt: NOW.Add(time.Minute),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("after", updated.Content)
	assert.True(created.CreatedAt.Equal(updated.CreatedAt))
	assert.False(updated.ReminderAt.IsPresent)
}

func (suite *testSuite) TestUpdateUnknownID() {
	_, err := suite.repo.Update(context.Background(), note.UpdateInput{
		ID:        note.ID(404),
		Content:   "nope",
		UpdatedAt: NOW,
	})

	suite.Require().ErrorIs(err, note.ErrNoteDoesNotExist)
}

func (suite *testSuite) TestDelete() {
	created := suite.create("gone soon", NOW, c.Optional[time.Time]{})

	err := suite.repo.Delete(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	_, err = suite.repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(err, note.ErrNoteDoesNotExist)
}

func (suite *testSuite) TestDeleteUnknownID() {
	err := suite.repo.Delete(context.Background(), note.ID(404))

	suite.Require().ErrorIs(err, note.ErrNoteDoesNotExist)
}

func (suite *testSuite) TestReadOrdersByUpdatedAtDesc() {
	older := suite.create("older", NOW.Add(-time.Hour), c.Optional[time.Time]{})
	newer := suite.create("newer", NOW, c.Optional[time.Time]{})

	notes, err := suite.repo.Read(context.Background(), note.ReadOptions{
		OrderBy: note.OrderByUpdatedAtDesc,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Len(notes, 2)
	assert.Equal(newer.ID, notes[0].ID)
	assert.Equal(older.ID, notes[1].ID)
}

func (suite *testSuite) TestReadWithReminderOnlyOrdersByReminderAtAsc() {
	suite.create("plain", NOW, c.Optional[time.Time]{})
	later := suite.create("later", NOW, c.NewOptional(NOW.Add(2*time.Hour), true))
	sooner := suite.create("sooner", NOW, c.NewOptional(NOW.Add(time.Hour), true))

	notes, err := suite.repo.Read(context.Background(), note.ReadOptions{
		WithReminderOnly: true,
		OrderBy:          note.OrderByReminderAtAsc,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Len(notes, 2)
	assert.Equal(sooner.ID, notes[0].ID)
	assert.Equal(later.ID, notes[1].ID)
}
