package registration

import (
	"context"
	"errors"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/reminder"
	"somenotes/internal/db"

	"github.com/jackc/pgtype"
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

// payload is kept as a JSONB document so fire-time data can grow fields
// without a schema migration.
type payloadDoc struct {
	Body string `json:"body"`
}

func (r *PgxRepository) Put(ctx context.Context, input reminder.PutInput) (reg reminder.Registration, err error) {
	payload := pgtype.JSONB{}
	if err := payload.Set(payloadDoc{Body: input.Payload}); err != nil {
		return reg, err
	}

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO reminder_registration (note_id, fire_at, payload)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (note_id) DO UPDATE
		 SET fire_at = EXCLUDED.fire_at,
		     payload = EXCLUDED.payload,
		     seq = nextval('reminder_registration_seq')
		 RETURNING note_id, fire_at, payload, seq`,
		int64(input.NoteID),
		input.FireAt,
		payload,
	)
	return scanRegistration(row)
}

func (r *PgxRepository) GetByNoteID(ctx context.Context, noteID note.ID) (reg reminder.Registration, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT note_id, fire_at, payload, seq FROM reminder_registration WHERE note_id = $1`,
		int64(noteID),
	)
	reg, err = scanRegistration(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return reg, reminder.ErrRegistrationDoesNotExist
	}
	return reg, err
}

func (r *PgxRepository) Delete(ctx context.Context, noteID note.ID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM reminder_registration WHERE note_id = $1`, int64(noteID))
	return err
}

func (r *PgxRepository) ReadAll(ctx context.Context) (registrations []reminder.Registration, err error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT note_id, fire_at, payload, seq FROM reminder_registration ORDER BY fire_at ASC`,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return registrations, nil
		}
		return registrations, err
	}
	defer rows.Close()

	registrations = make([]reminder.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return registrations, err
		}
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}

func scanRegistration(row pgx.Row) (reg reminder.Registration, err error) {
	var noteID int64
	payload := pgtype.JSONB{}
	err = row.Scan(&noteID, &reg.FireAt, &payload, &reg.Seq)
	if err != nil {
		return reg, err
	}
	doc := payloadDoc{}
	if err := payload.AssignTo(&doc); err != nil {
		return reg, err
	}
	reg.NoteID = note.ID(noteID)
	reg.Payload = doc.Body
	return reg, nil
}
