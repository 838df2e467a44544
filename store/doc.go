// Package store defines credential persistence and its Redis-backed default.
//
// # Architecture boundaries
//
// This package owns durable credential records keyed by username. It knows
// nothing about hashing or verification; callers store opaque encoded hashes.
//
// # What this package must NOT do
//
//   - Inspect or validate password hashes beyond treating them as strings.
//   - Import any other goCred package.
//   - Log credential material at runtime.
package store
