package registration

import (
	"context"
	"os"
	c "somenotes/internal/core/domain/common"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/reminder"
	"somenotes/internal/db"
	dbnote "somenotes/internal/db/note"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	notes *dbnote.PgxRepository
	repo  *PgxRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.notes = dbnote.NewPgxRepository(suite.pool)
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxRegistrationRepository(t *testing.T) {
	if os.Getenv("TEST_POSTGRESQL_URL") == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set.")
	}
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createNote() note.Note {
	n, err := suite.notes.Create(context.Background(), note.CreateInput{
		Content:    "with reminder",
		CreatedAt:  NOW,
		UpdatedAt:  NOW,
		ReminderAt: c.NewOptional(NOW.Add(time.Hour), true),
	})
	suite.Require().Nil(err)
	return n
}

func (suite *testSuite) TestPutInserts() {
	n := suite.createNote()

	reg, err := suite.repo.Put(context.Background(), reminder.PutInput{
		NoteID:  n.ID,
		FireAt:  NOW.Add(time.Hour),
		Payload: "water the plants",
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(n.ID, reg.NoteID)
	assert.Greater(reg.Seq, int64(0))
	assert.Equal("water the plants", reg.Payload)
}

func (suite *testSuite) TestPutReplacesWithFreshSeq() {
	n := suite.createNote()
	t1 := NOW.Add(time.Hour)
	t2 := NOW.Add(2 * time.Hour)

	first, err := suite.repo.Put(context.Background(), reminder.PutInput{NoteID: n.ID, FireAt: t1, Payload: "v1"})
	suite.Require().Nil(err)
	reg, err := suite.repo.Put(context.Background(), reminder.PutInput{NoteID: n.ID, FireAt: t2, Payload: "v2"})

	assert := suite.Require()
	assert.Nil(err)
	assert.Greater(reg.Seq, first.Seq)
	assert.True(t2.Equal(reg.FireAt))
	assert.Equal("v2", reg.Payload)

	all, err := suite.repo.ReadAll(context.Background())
	assert.Nil(err)
	assert.Len(all, 1)
}

func (suite *testSuite) TestSeqIsNeverReusedAfterDelete() {
	n := suite.createNote()
	first, err := suite.repo.Put(context.Background(), reminder.PutInput{
		NoteID:  n.ID,
		FireAt:  NOW.Add(time.Hour),
		Payload: "v1",
	})
	suite.Require().Nil(err)
	suite.Require().Nil(suite.repo.Delete(context.Background(), n.ID))

	second, err := suite.repo.Put(context.Background(), reminder.PutInput{
		NoteID:  n.ID,
		FireAt:  NOW.Add(2 * time.Hour),
		Payload: "v2",
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Greater(second.Seq, first.Seq)
}

func (suite *testSuite) TestGetByNoteID() {
	n := suite.createNote()
	_, err := suite.repo.Put(context.Background(), reminder.PutInput{
		NoteID:  n.ID,
		FireAt:  NOW.Add(time.Hour),
		Payload: "p",
	})
	suite.Require().Nil(err)

	reg, err := suite.repo.GetByNoteID(context.Background(), n.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(n.ID, reg.NoteID)

	_, err = suite.repo.GetByNoteID(context.Background(), note.ID(404))
	assert.ErrorIs(err, reminder.ErrRegistrationDoesNotExist)
}

func (suite *testSuite) TestDeleteIsIdempotent() {
	n := suite.createNote()
	_, err := suite.repo.Put(context.Background(), reminder.PutInput{
		NoteID:  n.ID,
		FireAt:  NOW.Add(time.Hour),
		Payload: "p",
	})
	suite.Require().Nil(err)

	assert := suite.Require()
	assert.Nil(suite.repo.Delete(context.Background(), n.ID))
	assert.Nil(suite.repo.Delete(context.Background(), n.ID))
	_, err = suite.repo.GetByNoteID(context.Background(), n.ID)
	assert.ErrorIs(err, reminder.ErrRegistrationDoesNotExist)
}

func (suite *testSuite) TestReadAllOrdersByFireAt() {
	n1 := suite.createNote()
	n2 := suite.createNote()
	_, err := suite.repo.Put(context.Background(), reminder.PutInput{
		NoteID:  n1.ID,
		FireAt:  NOW.Add(2 * time.Hour),
		Payload: "later",
	})
	suite.Require().Nil(err)
	_, err = suite.repo.Put(context.Background(), reminder.PutInput{
		NoteID:  n2.ID,
		FireAt:  NOW.Add(time.Hour),
		Payload: "sooner",
	})
	suite.Require().Nil(err)

	all, err := suite.repo.ReadAll(context.Background())

	assert := suite.Require()
	assert.Nil(err)
	assert.Len(all, 2)
	assert.Equal(n2.ID, all[0].NoteID)
	assert.Equal(n1.ID, all[1].NoteID)
}

func (suite *testSuite) TestDeletingNoteCascades() {
	n := suite.createNote()
	_, err := suite.repo.Put(context.Background(), reminder.PutInput{
		NoteID:  n.ID,
		FireAt:  NOW.Add(time.Hour),
		Payload: "p",
	})
	suite.Require().Nil(err)

	suite.Require().Nil(suite.notes.Delete(context.Background(), n.ID))

	_, err = suite.repo.GetByNoteID(context.Background(), n.ID)
	suite.Require().ErrorIs(err, reminder.ErrRegistrationDoesNotExist)
}
