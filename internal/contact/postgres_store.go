package contact

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/landing/pkg/pg"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the goose migrations for PostgresStore. Pass it to
// pg.Migrate with MigrationsDir set to "migrations".
func Migrations() fs.FS {
	return migrationsFS
}

// DB is the subset of *pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps records in the contact_submissions table.
type PostgresStore struct {
	db  DB
	now func() time.Time
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

const insertSubmission = `
INSERT INTO contact_submissions
	(id, name, email, message, locale, ip, request_id, user_agent, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`

func (s *PostgresStore) Create(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx, insertSubmission,
		rec.ID, rec.Name, rec.Email, rec.Message,
		rec.Locale, rec.IP, rec.RequestID, rec.UserAgent,
		string(rec.Status), rec.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

const updateSubmissionStatus = `
UPDATE contact_submissions SET status = $2, updated_at = $3 WHERE id = $1`

func (s *PostgresStore) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := s.db.Exec(ctx, updateSubmissionStatus, id, string(status), s.now().UTC())
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const selectSubmission = `
SELECT id, name, email, message, locale, ip, request_id, user_agent, status, created_at, updated_at
FROM contact_submissions WHERE id = $1`

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	var (
		rec    Record
		status string
	)
	err := s.db.QueryRow(ctx, selectSubmission, id).Scan(
		&rec.ID, &rec.Name, &rec.Email, &rec.Message,
		&rec.Locale, &rec.IP, &rec.RequestID, &rec.UserAgent,
		&status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Record{}, ErrNotFound
		}
		return Record{}, errors.Join(ErrStoreFailed, err)
	}
	rec.Status = Status(status)
	return rec, nil
}
