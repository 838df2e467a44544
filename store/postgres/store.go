package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrEthical07/goCred/store"
)

const uniqueViolationCode = "23505"

// Store defines a public type used by goCred APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	pool *pgxpool.Pool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, errors.New("postgres: pool must not be nil")
	}
	return &Store{pool: pool}, nil
}

// Migrate describes the migrate operation and its observable behavior.
//
// Migrate may return an error when input validation, dependency calls, or security checks fail.
// Migrate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS credentials (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	roles         TEXT[] NOT NULL DEFAULT '{}',
	created_at    TIMESTAMPTZ NOT NULL
)`

	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

// Insert describes the insert operation and its observable behavior.
//
// Insert may return an error when input validation, dependency calls, or security checks fail.
// Insert does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Insert(ctx context.Context, record *store.Record) error {
	const query = `
INSERT INTO credentials (id, username, password_hash, roles, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := s.pool.Exec(ctx, query,
		record.ID,
		record.Username,
		record.PasswordHash,
		record.Roles,
		time.Unix(record.CreatedAt, 0).UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return store.ErrDuplicateUsername
		}
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return nil
}

// FindByUsername describes the findbyusername operation and its observable behavior.
//
// FindByUsername may return an error when input validation, dependency calls, or security checks fail.
// FindByUsername does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) FindByUsername(ctx context.Context, username string) (*store.Record, error) {
	const query = `
SELECT id, username, password_hash, roles, created_at
FROM credentials
WHERE username = $1`

	var (
		record    store.Record
		createdAt time.Time
	)

	err := s.pool.QueryRow(ctx, query, username).Scan(
		&record.ID,
		&record.Username,
		&record.PasswordHash,
		&record.Roles,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	record.CreatedAt = createdAt.Unix()
	return &record, nil
}

// UpdatePasswordHash describes the updatepasswordhash operation and its observable behavior.
//
// UpdatePasswordHash may return an error when input validation, dependency calls, or security checks fail.
// UpdatePasswordHash does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) UpdatePasswordHash(ctx context.Context, username string, passwordHash string) error {
	const query = `
UPDATE credentials
SET password_hash = $2
WHERE username = $1`

	tag, err := s.pool.Exec(ctx, query, username, passwordHash)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

// Delete describes the delete operation and its observable behavior.
//
// Delete may return an error when input validation, dependency calls, or security checks fail.
// Delete does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Delete(ctx context.Context, username string) error {
	const query = `DELETE FROM credentials WHERE username = $1`

	tag, err := s.pool.Exec(ctx, query, username)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}
