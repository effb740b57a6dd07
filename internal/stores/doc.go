// Package stores provides the Redis-backed credential record store.
//
// # Design
//
// Each username maps to one versioned, binary-encoded record with no TTL.
// Rotation goes through Replace, a WATCH/MULTI optimistic transaction keyed
// on the prior verifier with automatic retry on contention, so a rotation
// either fully replaces the verifier and timestamp or leaves the record
// untouched — no observer sees a half-updated record.
//
// # Architecture boundaries
//
// This package owns persistence and write-write conflict detection. It does
// NOT hash passwords, enforce policy, or decide when to write — those
// responsibilities belong to the flow functions in internal/flows and the
// packages they delegate to.
//
// # What this package must NOT do
//
//   - Import goCred or any sibling internal package.
//   - See or persist plaintext passwords — records carry verifiers only.
package stores
