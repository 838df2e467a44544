//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrEthical07/goCred/store"
)

// Run with:
//
//	GOCRED_POSTGRES_DSN=postgres://... go test -tags integration ./store/postgres
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("GOCRED_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("GOCRED_POSTGRES_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pgxpool.New failed: %v", err)
	}
	t.Cleanup(pool.Close)

	s, err := New(pool)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE credentials"); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}

	return s
}

func TestPostgresRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := &store.Record{
		ID:           "00000000-0000-0000-0000-000000000001",
		Username:     "alice",
		PasswordHash: "$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		Roles:        []string{"member"},
		CreatedAt:    time.Now().Unix(),
	}

	if err := s.Insert(ctx, record); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := s.Insert(ctx, record); !errors.Is(err, store.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got: %v", err)
	}

	got, err := s.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername failed: %v", err)
	}
	if got.PasswordHash != record.PasswordHash {
		t.Fatalf("hash mismatch: got %q", got.PasswordHash)
	}

	next := "$argon2id$v=19$m=16384,t=2,p=1$bmV3$bmV3"
	if err := s.UpdatePasswordHash(ctx, "alice", next); err != nil {
		t.Fatalf("UpdatePasswordHash failed: %v", err)
	}
	got, err = s.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername failed: %v", err)
	}
	if got.PasswordHash != next {
		t.Fatalf("hash not updated: got %q", got.PasswordHash)
	}

	if err := s.Delete(ctx, "alice"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.FindByUsername(ctx, "alice"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestPostgresUnknownUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.FindByUsername(ctx, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := s.UpdatePasswordHash(ctx, "ghost", "x"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := s.Delete(ctx, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
