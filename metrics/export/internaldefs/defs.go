package internaldefs

import (
	goCred "github.com/MrEthical07/goCred"
)

// CounterDef defines a public type used by goCred APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goCred.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goCred APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goCred.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the credential engine.
var CounterDefs = []CounterDef{
	{ID: goCred.MetricRegisterSuccess, Name: "gocred_register_success_total", Help: "Successful credential registrations."},
	{ID: goCred.MetricRegisterDuplicate, Name: "gocred_register_duplicate_total", Help: "Registrations rejected as duplicate."},
	{ID: goCred.MetricRegisterFailure, Name: "gocred_register_failure_total", Help: "Failed credential registrations."},
	{ID: goCred.MetricVerifySuccess, Name: "gocred_verify_success_total", Help: "Successful password verifications."},
	{ID: goCred.MetricVerifyFailure, Name: "gocred_verify_failure_total", Help: "Failed password verifications."},
	{ID: goCred.MetricRehashApplied, Name: "gocred_rehash_applied_total", Help: "Stored hashes upgraded to current parameters."},
	{ID: goCred.MetricRehashFailed, Name: "gocred_rehash_failed_total", Help: "Attempted hash upgrades that failed."},
	{ID: goCred.MetricStoreUnavailable, Name: "gocred_store_unavailable_total", Help: "Operations that hit an unavailable credential store."},
}

// HistogramDefs is an exported constant or variable used by the credential engine.
var HistogramDefs = []HistogramDef{
	{ID: goCred.MetricHashLatency, Name: "gocred_hash_latency_seconds", Help: "Argon2 hash and verify latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the credential engine.
var HistogramBounds = []string{
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"1",
	"2.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the credential engine.
var HistogramBoundSuffix = []string{
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"1",
	"2_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
