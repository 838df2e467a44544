package goCred

import (
	"context"
	"errors"

	"github.com/MrEthical07/goCred/store"
)

// MaybeRehash describes the mayberehash operation and its observable behavior.
//
// MaybeRehash verifies plaintext against storedHash and, when the hash was
// produced under parameters that differ from the current policy, re-hashes
// the plaintext and persists the replacement. It reports whether a rehash
// was applied.
//
// MaybeRehash may return an error when input validation, dependency calls, or security checks fail.
// MaybeRehash does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MaybeRehash(ctx context.Context, username, plaintext, storedHash string) (bool, error) {
	if e == nil || e.hasher == nil || e.store == nil {
		return false, ErrEngineNotReady
	}

	match, stale, err := e.hasher.Verify(plaintext, storedHash)
	if err != nil || !match {
		return false, ErrInvalidCredentials
	}
	if !stale {
		return false, nil
	}

	if err := e.rehash(ctx, username, plaintext); err != nil {
		e.metricInc(MetricRehashFailed)
		e.emitAudit(ctx, auditEventRehashFailed, false, username, "", err, nil)
		return false, err
	}

	return true, nil
}

func (e *Engine) rehash(ctx context.Context, username, plaintext string) error {
	hash, err := e.hasher.Hash(plaintext)
	if err != nil {
		return ErrHashingUnavailable
	}

	if err := e.store.UpdatePasswordHash(ctx, username, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrStoreUnavailable
	}

	e.metricInc(MetricRehashApplied)
	e.emitAudit(ctx, auditEventRehashApplied, true, username, "", nil, nil)
	return nil
}
