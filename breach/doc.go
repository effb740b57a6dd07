// Package breach implements a k-anonymity range client for checking
// candidate passwords against a known-breach corpus.
//
// # Protocol
//
// The candidate is hashed with SHA-1 and the 40-character uppercase hex
// digest is split into a 5-character prefix and a 35-character suffix. Only
// the prefix is sent to the range endpoint; the response lists suffixes with
// occurrence counts and the match is resolved locally. The SHA-1 digest is
// purely the transport format mandated by the public range API — it is not
// the credential verifier and never touches the store.
//
// # Failure semantics
//
// Network faults, timeouts, and unexpected statuses yield
// [StatusUnavailable] with an error wrapping [ErrUnavailable]. The client
// never blocks past its configured timeout and never treats a lookup miss
// as an error.
//
// # What this package must NOT do
//
//   - Send anything beyond the 5-character digest prefix over the wire.
//   - Import any other goCred package.
//   - Retry failed lookups — callers decide whether to retry.
package breach
