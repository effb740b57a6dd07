// Package goCred provides a policy-driven credential manager: password
// generation and validation against configurable rules, Argon2id hashing,
// Redis-backed credential record storage with verify and rotate lifecycles,
// and k-anonymity breach-corpus lookups.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goCred is the public surface. It exposes [Engine], [Builder], [Config], and value types
// (Record, MetricsSnapshot, AuditEvent, etc.). All internal coordination — flow
// orchestration, record encoding, per-username locking, audit dispatch — lives under
// internal/ and is never exported.
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or encoding details in its public API.
//   - Store or log a plaintext password anywhere; only PHC-encoded verifiers persist.
//   - Import any sub-package that re-imports goCred (no import cycles).
//
// # Performance contract
//
// CheckCredential is the hot path after the Argon2id derivation itself; it performs a
// single store read and never writes. StoreCredential and RotateCredential are allowed
// one store round-trip per call plus the rotation compare-and-set.
package goCred
