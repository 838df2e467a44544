package goCred

import "time"

// Outcome defines a public type used by goCred APIs.
//
// Outcome instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Outcome uint8

const (
	// OutcomeFailure is an exported constant or variable used by the credential engine.
	OutcomeFailure Outcome = iota
	// OutcomeSuccess is an exported constant or variable used by the credential engine.
	OutcomeSuccess
)

// Success reports whether the outcome represents an accepted verification.
func (o Outcome) Success() bool {
	return o == OutcomeSuccess
}

// String describes the string operation and its observable behavior.
//
// String may return an error when input validation, dependency calls, or security checks fail.
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o Outcome) String() string {
	if o == OutcomeSuccess {
		return "success"
	}
	return "failure"
}

// RegisterRequest is the input for [Engine.Register].
// Username and Password are required; Roles defaults to
// [RegistrationConfig.DefaultRoles] when empty.
type RegisterRequest struct {
	Username string
	Password string
	Roles    []string
}

// RegisterResult is returned by [Engine.Register]. It identifies the newly
// issued credential; the password hash is intentionally not included.
type RegisterResult struct {
	ID        string
	Username  string
	Roles     []string
	CreatedAt time.Time
}
