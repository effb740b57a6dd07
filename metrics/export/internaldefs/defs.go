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
	{ID: goCred.MetricGenerateSuccess, Name: "gocred_generate_success_total", Help: "Successfully generated passwords."},
	{ID: goCred.MetricGenerateExhausted, Name: "gocred_generate_exhausted_total", Help: "Generation runs that hit the attempt cap."},
	{ID: goCred.MetricValidateOK, Name: "gocred_validate_ok_total", Help: "Passwords that satisfied the policy."},
	{ID: goCred.MetricValidateRejected, Name: "gocred_validate_rejected_total", Help: "Passwords rejected by the policy."},
	{ID: goCred.MetricStoreSuccess, Name: "gocred_store_success_total", Help: "Successfully stored credentials."},
	{ID: goCred.MetricStorePolicyRejected, Name: "gocred_store_policy_rejected_total", Help: "Store attempts rejected by the policy."},
	{ID: goCred.MetricStoreFailure, Name: "gocred_store_failure_total", Help: "Store attempts that failed on the backend."},
	{ID: goCred.MetricCheckSuccess, Name: "gocred_check_success_total", Help: "Credential checks that verified."},
	{ID: goCred.MetricCheckFailure, Name: "gocred_check_failure_total", Help: "Credential checks that did not verify."},
	{ID: goCred.MetricCheckUnknownUser, Name: "gocred_check_unknown_user_total", Help: "Credential checks against unknown usernames."},
	{ID: goCred.MetricRotateSuccess, Name: "gocred_rotate_success_total", Help: "Successful credential rotations."},
	{ID: goCred.MetricRotateInvalidOld, Name: "gocred_rotate_invalid_old_total", Help: "Rotation attempts with an incorrect old password."},
	{ID: goCred.MetricRotatePolicyRejected, Name: "gocred_rotate_policy_rejected_total", Help: "Rotation attempts rejected by the policy."},
	{ID: goCred.MetricRotateFailure, Name: "gocred_rotate_failure_total", Help: "Rotation attempts that failed on the backend."},
	{ID: goCred.MetricBreachFound, Name: "gocred_breach_found_total", Help: "Breach lookups that found the password."},
	{ID: goCred.MetricBreachNotFound, Name: "gocred_breach_not_found_total", Help: "Breach lookups that did not find the password."},
	{ID: goCred.MetricBreachUnavailable, Name: "gocred_breach_unavailable_total", Help: "Breach lookups that could not reach the corpus."},
	{ID: goCred.MetricListSuccess, Name: "gocred_list_success_total", Help: "Successful credential listings."},
	{ID: goCred.MetricListFailure, Name: "gocred_list_failure_total", Help: "Credential listings that failed on the backend."},
}

// HistogramDefs is an exported constant or variable used by the credential engine.
var HistogramDefs = []HistogramDef{
	{ID: goCred.MetricCheckLatency, Name: "gocred_check_latency_seconds", Help: "CheckCredential latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the credential engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the credential engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
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
