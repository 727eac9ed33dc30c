// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/campus-elections/election"
	"github.com/danielhkuo/campus-elections/models"
)

const defaultTimeout = 5 * time.Second

// Store runs election operations against the relational store. Every
// mutation happens inside one transaction; reads used for tallying never do.
type Store struct {
	db      *sql.DB
	timeout time.Duration
	now     func() time.Time
}

type Option func(*Store)

// WithTimeout bounds every operation at the data-access boundary.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock overrides the time source used for "not in the past" checks
// and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, timeout: defaultTimeout, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) clock() time.Time {
	return s.now().UTC()
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// withTx runs fn in a transaction, rolling back on any error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const electionColumns = `
	id, election_type_id, name, description, start_date, end_date, status,
	is_active, results_published, results_published_at, created_by, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanElection(row scanner) (models.Election, error) {
	var e models.Election
	var status string
	err := row.Scan(
		&e.ID, &e.ElectionTypeID, &e.Name, &e.Description, &e.StartDate, &e.EndDate, &status,
		&e.IsActive, &e.ResultsPublished, &e.ResultsPublishedAt, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return models.Election{}, err
	}
	if e.Status, err = models.ParseElectionStatus(status); err != nil {
		return models.Election{}, err
	}
	normalizeElection(&e)
	return e, nil
}

func normalizeElection(e *models.Election) {
	e.StartDate = e.StartDate.UTC()
	e.EndDate = e.EndDate.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	if e.ResultsPublishedAt != nil {
		t := e.ResultsPublishedAt.UTC()
		e.ResultsPublishedAt = &t
	}
}

func getElection(ctx context.Context, q querier, op, id string) (models.Election, error) {
	e, err := scanElection(q.QueryRowContext(ctx, `SELECT `+electionColumns+` FROM election WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Election{}, election.NotFound(op, "election")
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}
	return e, nil
}

// lockElection takes the row lock on an election still in the expected
// status. A zero-row result means another request moved it first.
func lockElection(ctx context.Context, tx *sql.Tx, op, id string, status models.ElectionStatus) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE election SET updated_at = updated_at
		WHERE id = $1 AND status = $2
	`, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to lock election: %w", err)
	}
	return requireRow(res, election.State(op, "election was modified concurrently and is no longer %s", status))
}

// lockElectionType serializes scheduling decisions for one election type.
func lockElectionType(ctx context.Context, tx *sql.Tx, op, typeID string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE election_type SET lock_seq = lock_seq + 1
		WHERE id = $1 AND is_active = $2
	`, typeID, true)
	if err != nil {
		return fmt.Errorf("failed to lock election type: %w", err)
	}
	return requireRow(res, election.Validation(op, "election type %q does not exist or is inactive", typeID))
}

func requireRow(res sql.Result, zero error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return zero
	}
	return nil
}

func countRows(ctx context.Context, q querier, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

func voteCount(ctx context.Context, q querier, electionID string) (int, error) {
	return countRows(ctx, q, `SELECT COUNT(*) FROM vote WHERE election_id = $1`, electionID)
}

// isUniqueViolation detects unique-constraint failures from either driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE"))
	}
	return false
}
