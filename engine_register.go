package goCred

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrEthical07/goCred/password"
	"github.com/MrEthical07/goCred/store"
)

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if e == nil || e.hasher == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	if !e.config.Registration.Enabled {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, req.Username, "", ErrRegistrationDisabled, nil)
		return nil, ErrRegistrationDisabled
	}
	if req.Username == "" {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", "", ErrRegistrationInvalid, func() map[string]string {
			return map[string]string{
				"reason": "empty_username",
			}
		})
		return nil, ErrRegistrationInvalid
	}
	if req.Password == "" {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, req.Username, "", ErrPasswordPolicy, func() map[string]string {
			return map[string]string{
				"reason": "empty_password",
			}
		})
		return nil, ErrPasswordPolicy
	}

	roles := cloneStrings(req.Roles)
	if len(roles) == 0 {
		roles = cloneStrings(e.config.Registration.DefaultRoles)
	}

	start := time.Now()
	hash, err := e.hasher.Hash(req.Password)
	e.metricObserve(MetricHashLatency, time.Since(start))
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		if errors.Is(err, password.ErrPasswordEmpty) || errors.Is(err, password.ErrPasswordTooLong) {
			e.emitAudit(ctx, auditEventRegisterFailure, false, req.Username, "", ErrPasswordPolicy, func() map[string]string {
				return map[string]string{
					"reason": "password_policy",
				}
			})
			return nil, ErrPasswordPolicy
		}
		e.emitAudit(ctx, auditEventRegisterFailure, false, req.Username, "", ErrHashingUnavailable, nil)
		return nil, ErrHashingUnavailable
	}

	record := &store.Record{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    time.Now().UTC().Unix(),
	}

	if err := e.store.Insert(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			e.metricInc(MetricRegisterDuplicate)
			e.emitAudit(ctx, auditEventRegisterDuplicate, false, req.Username, "", ErrDuplicateUser, nil)
			return nil, ErrDuplicateUser
		}
		e.metricInc(MetricStoreUnavailable)
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, req.Username, "", ErrStoreUnavailable, nil)
		return nil, ErrStoreUnavailable
	}
	req.Password = ""

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, record.Username, record.ID, nil, func() map[string]string {
		return map[string]string{
			"roles": strings.Join(record.Roles, ","),
		}
	})

	return &RegisterResult{
		ID:        record.ID,
		Username:  record.Username,
		Roles:     cloneStrings(record.Roles),
		CreatedAt: time.Unix(record.CreatedAt, 0).UTC(),
	}, nil
}
