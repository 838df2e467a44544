package goCred

import "errors"

var (
	// ErrInvalidCredentials is an exported constant or variable used by the credential engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is an exported constant or variable used by the credential engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is an exported constant or variable used by the credential engine.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrRegistrationDisabled is an exported constant or variable used by the credential engine.
	ErrRegistrationDisabled = errors.New("registration disabled")
	// ErrRegistrationInvalid is an exported constant or variable used by the credential engine.
	ErrRegistrationInvalid = errors.New("invalid registration request")
	// ErrPasswordPolicy is an exported constant or variable used by the credential engine.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrHashingUnavailable is an exported constant or variable used by the credential engine.
	ErrHashingUnavailable = errors.New("password hashing unavailable")
	// ErrStoreUnavailable is an exported constant or variable used by the credential engine.
	ErrStoreUnavailable = errors.New("credential store unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the credential engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
