package note

import (
	"context"
	"errors"
	c "somenotes/internal/core/domain/common"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/db"
	"time"

	"github.com/jackc/pgx/v4"
)

type PgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxRepository{db: db}
}

func (r *PgxRepository) Create(ctx context.Context, input note.CreateInput) (n note.Note, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO note (content, created_at, updated_at, reminder_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, content, created_at, updated_at, reminder_at`,
		input.Content,
		input.CreatedAt,
		input.UpdatedAt,
		nullableTime(input.ReminderAt),
	)
	return scanNote(row)
}

func (r *PgxRepository) Update(ctx context.Context, input note.UpdateInput) (n note.Note, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE note
		 SET content = $2, updated_at = $3, reminder_at = $4
		 WHERE id = $1
		 RETURNING id, content, created_at, updated_at, reminder_at`,
		int64(input.ID),
		input.Content,
		input.UpdatedAt,
		nullableTime(input.ReminderAt),
	)
	n, err = scanNote(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return n, note.ErrNoteDoesNotExist
	}
	return n, err
}

func (r *PgxRepository) Delete(ctx context.Context, id note.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM note WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return note.ErrNoteDoesNotExist
	}
	return nil
}

func (r *PgxRepository) GetByID(ctx context.Context, id note.ID) (n note.Note, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, content, created_at, updated_at, reminder_at FROM note WHERE id = $1`,
		int64(id),
	)
	n, err = scanNote(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return n, note.ErrNoteDoesNotExist
	}
	return n, err
}

func (r *PgxRepository) Read(ctx context.Context, options note.ReadOptions) (notes []note.Note, err error) {
	query := `SELECT id, content, created_at, updated_at, reminder_at FROM note`
	if options.WithReminderOnly {
		query += ` WHERE reminder_at IS NOT NULL`
	}
	switch options.OrderBy {
	case note.OrderByReminderAtAsc:
		query += ` ORDER BY reminder_at ASC`
	default:
		query += ` ORDER BY updated_at DESC`
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notes, nil
		}
		return notes, err
	}
	defer rows.Close()

	notes = make([]note.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return notes, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func scanNote(row pgx.Row) (n note.Note, err error) {
	var id int64
	var reminderAt *time.Time
	err = row.Scan(&id, &n.Content, &n.CreatedAt, &n.UpdatedAt, &reminderAt)
	if err != nil {
		return n, err
	}
	n.ID = note.ID(id)
	if reminderAt != nil {
		n.ReminderAt = c.NewOptional(*reminderAt, true)
	}
	return n, nil
}

func nullableTime(t c.Optional[time.Time]) *time.Time {
	if !t.IsPresent {
		return nil
	}
	return &t.Value
}
