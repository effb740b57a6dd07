package goCred

import (
	"errors"

	"github.com/MrEthical07/goCred/policy"
)

var (
	// ErrPasswordPolicy is an exported constant or variable used by the credential engine.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrInvalidUsername is an exported constant or variable used by the credential engine.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrUnknownUser is an exported constant or variable used by the credential engine.
	ErrUnknownUser = errors.New("unknown user")
	// ErrOldPasswordIncorrect is an exported constant or variable used by the credential engine.
	ErrOldPasswordIncorrect = errors.New("old password incorrect")
	// ErrStoreUnavailable is an exported constant or variable used by the credential engine.
	ErrStoreUnavailable = errors.New("credential store unavailable")
	// ErrBreachUnavailable is an exported constant or variable used by the credential engine.
	ErrBreachUnavailable = errors.New("breach corpus unavailable")
	// ErrBreachDisabled is an exported constant or variable used by the credential engine.
	ErrBreachDisabled = errors.New("breach lookup disabled")
	// ErrRecordNotFound is an exported constant or variable used by the credential engine.
	ErrRecordNotFound = errors.New("credential record not found")
	// ErrRotationConflict is an exported constant or variable used by the credential engine.
	ErrRotationConflict = errors.New("credential rotation conflict")
	// ErrEngineNotReady is an exported constant or variable used by the credential engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// ErrGenerationExhausted is an exported constant or variable used by the credential engine.
//
// It aliases the generator's sentinel so callers can match it without
// importing the policy package.
var ErrGenerationExhausted = policy.ErrGenerationExhausted

// PolicyViolationError defines a public type used by goCred APIs.
//
// PolicyViolationError instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PolicyViolationError struct {
	Reason policy.Reason
}

// Error describes the error operation and its observable behavior.
//
// Error may return an error when input validation, dependency calls, or security checks fail.
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *PolicyViolationError) Error() string {
	return "password policy violation: " + e.Reason.String()
}

// Is describes the is operation and its observable behavior.
//
// Is may return an error when input validation, dependency calls, or security checks fail.
// Is does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *PolicyViolationError) Is(target error) bool {
	return target == ErrPasswordPolicy
}
