package goCred

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventPasswordGenerated = "password_generated"
	auditEventCredentialStored  = "credential_stored"
	auditEventCredentialChecked = "credential_checked"
	auditEventCredentialRotated = "credential_rotated"
	auditEventBreachChecked     = "breach_checked"
)

// AuditErrorCode defines a public type used by goCred APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrPasswordPolicy       AuditErrorCode = "password_policy"
	auditErrInvalidUsername      AuditErrorCode = "invalid_username"
	auditErrUnknownUser          AuditErrorCode = "unknown_user"
	auditErrOldPasswordIncorrect AuditErrorCode = "old_password_incorrect"
	auditErrGenerationExhausted  AuditErrorCode = "generation_exhausted"
	auditErrStoreUnavailable     AuditErrorCode = "store_unavailable"
	auditErrBreachUnavailable    AuditErrorCode = "breach_unavailable"
	auditErrEngineNotReady       AuditErrorCode = "engine_not_ready"
	auditErrInternal             AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	username string,
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
	case errors.Is(err, ErrPasswordPolicy):
		return auditErrPasswordPolicy
	case errors.Is(err, ErrInvalidUsername):
		return auditErrInvalidUsername
	case errors.Is(err, ErrUnknownUser):
		return auditErrUnknownUser
	case errors.Is(err, ErrOldPasswordIncorrect):
		return auditErrOldPasswordIncorrect
	case errors.Is(err, ErrGenerationExhausted):
		return auditErrGenerationExhausted
	case errors.Is(err, ErrStoreUnavailable):
		return auditErrStoreUnavailable
	case errors.Is(err, ErrBreachUnavailable),
		errors.Is(err, ErrBreachDisabled):
		return auditErrBreachUnavailable
	case errors.Is(err, ErrEngineNotReady):
		return auditErrEngineNotReady
	default:
		return auditErrInternal
	}
}
