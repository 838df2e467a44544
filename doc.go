// Package goCred provides an embeddable credential lifecycle engine built on
// Argon2id password hashing: registration, two-outcome verification, and
// transparent hash upgrades when the hashing policy is strengthened.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goCred is the public surface. It exposes [Engine], [Builder], [Config], and value types
// (RegisterResult, Outcome, MetricsSnapshot, etc.). Hashing lives under password/ and
// persistence under store/; neither re-imports goCred.
//
// # What this package must NOT do
//
//   - Expose Redis clients, store encodings, or hash internals in its public API.
//   - Return plaintext passwords or distinguish "unknown user" from "wrong password"
//     through [Engine.Verify]'s outcome.
//   - Perform I/O outside of Engine methods (construction via Builder is allocation-only
//     until Build).
//
// # Performance contract
//
// Hashing dominates latency: Register and Verify each pay one Argon2id computation
// (typically 100–500ms at the default parameters). Store access is a single
// round-trip per call; the opportunistic rehash on Verify adds one hash and one
// write when the stored parameters are stale.
package goCred
