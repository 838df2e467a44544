package store

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateUsername is an exported constant or variable used by the credential engine.
	ErrDuplicateUsername = errors.New("store: username already exists")
	// ErrNotFound is an exported constant or variable used by the credential engine.
	ErrNotFound = errors.New("store: record not found")
	// ErrUnavailable is an exported constant or variable used by the credential engine.
	ErrUnavailable = errors.New("store: backend unavailable")
	// ErrCorruptRecord is an exported constant or variable used by the credential engine.
	ErrCorruptRecord = errors.New("store: corrupt record")
)

// Record defines a public type used by goCred APIs.
//
// Record instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Record struct {
	ID           string
	Username     string
	PasswordHash string
	Roles        []string
	CreatedAt    int64
}

// Store defines a public type used by goCred APIs.
//
// Store implementations must be safe for concurrent use. Insert fails with
// [ErrDuplicateUsername] when the username is already present; FindByUsername
// and UpdatePasswordHash fail with [ErrNotFound] when it is not.
type Store interface {
	Insert(ctx context.Context, record *Record) error
	FindByUsername(ctx context.Context, username string) (*Record, error)
	UpdatePasswordHash(ctx context.Context, username string, passwordHash string) error
	Delete(ctx context.Context, username string) error
}
