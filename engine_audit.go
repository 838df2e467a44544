package goCred

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventRegisterSuccess   = "register_success"
	auditEventRegisterDuplicate = "register_duplicate"
	auditEventRegisterFailure   = "register_failure"
	auditEventVerifySuccess     = "verify_success"
	auditEventVerifyFailure     = "verify_failure"
	auditEventRehashApplied     = "rehash_applied"
	auditEventRehashFailed      = "rehash_failed"
)

// AuditErrorCode defines a public type used by goCred APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrInvalidCredentials  AuditErrorCode = "invalid_credentials"
	auditErrUserNotFound        AuditErrorCode = "user_not_found"
	auditErrDuplicate           AuditErrorCode = "duplicate"
	auditErrPasswordPolicy      AuditErrorCode = "password_policy"
	auditErrRegistrationClosed  AuditErrorCode = "registration_disabled"
	auditErrRegistrationInvalid AuditErrorCode = "registration_invalid"
	auditErrUnavailable         AuditErrorCode = "backend_unavailable"
	auditErrHashing             AuditErrorCode = "hashing_unavailable"
	auditErrInternal            AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	username string,
	recordID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Username:  username,
		RecordID:  recordID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrUserNotFound):
		return auditErrUserNotFound
	case errors.Is(err, ErrDuplicateUser):
		return auditErrDuplicate
	case errors.Is(err, ErrPasswordPolicy):
		return auditErrPasswordPolicy
	case errors.Is(err, ErrRegistrationDisabled):
		return auditErrRegistrationClosed
	case errors.Is(err, ErrRegistrationInvalid):
		return auditErrRegistrationInvalid
	case errors.Is(err, ErrStoreUnavailable):
		return auditErrUnavailable
	case errors.Is(err, ErrHashingUnavailable):
		return auditErrHashing
	default:
		return auditErrInternal
	}
}
