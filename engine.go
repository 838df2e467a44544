package goCred

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/MrEthical07/goCred/password"
	"github.com/MrEthical07/goCred/store"
)

// Engine defines a public type used by goCred APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config  Config
	store   store.Store
	hasher  *password.Hasher
	audit   *auditDispatcher
	metrics *Metrics

	// decoy is a real hash of a fixed throwaway value. Verify burns a compare
	// against it for unknown usernames so lookup misses cost as much as
	// password mismatches.
	decoy string
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}

// Verify describes the verify operation and its observable behavior.
//
// Verify collapses unknown usernames, password mismatches, and malformed
// stored hashes into the same [OutcomeFailure] with a nil error, so callers
// cannot distinguish which condition occurred. Store outages are the only
// failure reported as an error.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Verify(ctx context.Context, username, plaintext string) (Outcome, error) {
	if e == nil || e.hasher == nil || e.store == nil {
		return OutcomeFailure, ErrEngineNotReady
	}

	if username == "" || plaintext == "" {
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventVerifyFailure, false, username, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "empty_input",
			}
		})
		return OutcomeFailure, nil
	}

	record, err := e.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Equalize timing with the password-mismatch path.
			_, _, _ = e.hasher.Verify(plaintext, e.decoy)
			e.metricInc(MetricVerifyFailure)
			e.emitAudit(ctx, auditEventVerifyFailure, false, username, "", ErrInvalidCredentials, func() map[string]string {
				return map[string]string{
					"reason": "unknown_user",
				}
			})
			return OutcomeFailure, nil
		}

		e.metricInc(MetricStoreUnavailable)
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventVerifyFailure, false, username, "", ErrStoreUnavailable, nil)
		return OutcomeFailure, ErrStoreUnavailable
	}

	start := time.Now()
	match, stale, err := e.hasher.Verify(plaintext, record.PasswordHash)
	e.metricObserve(MetricHashLatency, time.Since(start))

	if err != nil {
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventVerifyFailure, false, username, record.ID, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "malformed_hash",
			}
		})
		return OutcomeFailure, nil
	}
	if !match {
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventVerifyFailure, false, username, record.ID, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "password_mismatch",
			}
		})
		return OutcomeFailure, nil
	}

	if e.config.Password.UpgradeOnLogin && stale {
		// Rehash is best-effort and must not block a successful verification.
		if err := e.rehash(ctx, username, plaintext); err != nil {
			log.Print("goCred: password rehash after verify failed")
			e.metricInc(MetricRehashFailed)
			e.emitAudit(ctx, auditEventRehashFailed, false, username, record.ID, err, nil)
		}
	}
	plaintext = ""

	e.metricInc(MetricVerifySuccess)
	e.emitAudit(ctx, auditEventVerifySuccess, true, username, record.ID, nil, nil)
	return OutcomeSuccess, nil
}
