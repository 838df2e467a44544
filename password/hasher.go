package password

import (
	"errors"

	"github.com/alexedwards/argon2id"
)

const (
	minMemoryKB    uint32 = 8 * 1024
	minIterations  uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16

	// DefaultMaxPasswordBytes bounds plaintext length before hashing. Argon2
	// cost scales with input size, so unbounded input is a cheap DoS vector.
	DefaultMaxPasswordBytes = 1024
)

var (
	// ErrPasswordEmpty is an exported constant or variable used by the credential engine.
	ErrPasswordEmpty = errors.New("password must not be empty")
	// ErrPasswordTooLong is an exported constant or variable used by the credential engine.
	ErrPasswordTooLong = errors.New("password exceeds maximum length")
)

// Config defines a public type used by goCred APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Memory           uint32
	Iterations       uint32
	Parallelism      uint8
	SaltLength       uint32
	KeyLength        uint32
	MaxPasswordBytes int

	// Pepper, when set, is appended to every plaintext before hashing.
	// AcceptUnpeppered additionally verifies pre-pepper hashes without the
	// pepper applied; such matches are reported as stale.
	Pepper           []byte
	AcceptUnpeppered bool
}

// Hasher defines a public type used by goCred APIs.
//
// Hasher instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Hasher struct {
	config Config
	params *argon2id.Params
}

// NewHasher describes the newhasher operation and its observable behavior.
//
// NewHasher may return an error when input validation, dependency calls, or security checks fail.
// NewHasher does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewHasher(cfg Config) (*Hasher, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.MaxPasswordBytes <= 0 {
		cfg.MaxPasswordBytes = DefaultMaxPasswordBytes
	}

	return &Hasher{
		config: cfg,
		params: &argon2id.Params{
			Memory:      cfg.Memory,
			Iterations:  cfg.Iterations,
			Parallelism: cfg.Parallelism,
			SaltLength:  cfg.SaltLength,
			KeyLength:   cfg.KeyLength,
		},
	}, nil
}

// Hash describes the hash operation and its observable behavior.
//
// Hash may return an error when input validation, dependency calls, or security checks fail.
// Hash does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (h *Hasher) Hash(password string) (string, error) {
	// Password processing uses raw string bytes exactly as provided (no Unicode normalization).
	if len(password) == 0 {
		return "", ErrPasswordEmpty
	}
	if len(password) > h.config.MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	return argon2id.CreateHash(h.season(password), h.params)
}

// Verify describes the verify operation and its observable behavior.
//
// Verify reports whether password matches encodedHash, and whether a match was
// produced under parameters that differ from the current policy (stale). A
// stale match should be re-hashed by the caller.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (h *Hasher) Verify(password string, encodedHash string) (match bool, stale bool, err error) {
	if len(password) > h.config.MaxPasswordBytes {
		return false, false, ErrPasswordTooLong
	}

	match, err = argon2id.ComparePasswordAndHash(h.season(password), encodedHash)
	if err != nil {
		return false, false, err
	}
	if match {
		return true, h.NeedsRehash(encodedHash), nil
	}

	// Pepper rollout path: hashes created before the pepper was introduced
	// still verify, and are reported stale so they get re-hashed with it.
	if len(h.config.Pepper) > 0 && h.config.AcceptUnpeppered {
		bare, bareErr := argon2id.ComparePasswordAndHash(password, encodedHash)
		if bareErr != nil {
			return false, false, bareErr
		}
		if bare {
			return true, true, nil
		}
	}

	return false, false, nil
}

// NeedsRehash describes the needsrehash operation and its observable behavior.
//
// NeedsRehash may return an error when input validation, dependency calls, or security checks fail.
// NeedsRehash does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (h *Hasher) NeedsRehash(encodedHash string) bool {
	parsed, _, _, err := argon2id.DecodeHash(encodedHash)
	if err != nil {
		return true
	}

	if parsed.Memory != h.config.Memory {
		return true
	}
	if parsed.Iterations != h.config.Iterations {
		return true
	}
	if parsed.Parallelism != h.config.Parallelism {
		return true
	}
	if parsed.SaltLength != h.config.SaltLength {
		return true
	}
	if parsed.KeyLength != h.config.KeyLength {
		return true
	}

	return false
}

func (h *Hasher) season(password string) string {
	if len(h.config.Pepper) == 0 {
		return password
	}
	return password + string(h.config.Pepper)
}

func validateConfig(cfg Config) error {
	if cfg.Memory < minMemoryKB {
		return errors.New("password memory must be >= 8192 KB")
	}
	if cfg.Iterations < minIterations {
		return errors.New("password iterations must be >= 1")
	}
	if cfg.Parallelism < minParallelism {
		return errors.New("password parallelism must be >= 1")
	}
	if cfg.SaltLength < minSaltLength {
		return errors.New("password salt length must be >= 16")
	}
	if cfg.KeyLength < minKeyLength {
		return errors.New("password key length must be >= 16")
	}
	if cfg.AcceptUnpeppered && len(cfg.Pepper) == 0 {
		return errors.New("password accept-unpeppered requires a pepper")
	}

	return nil
}
