// Package password implements credential hashing and verification with
// Argon2id defaults.
//
// # Output format
//
// Verifiers are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Each call to [Hasher.Hash] draws a fresh random salt, so two hashes of the
// same password differ; [Hasher.Matches] recomputes with the stored salt and
// compares in constant time. [Hasher.NeedsRehash] reports when a stored
// verifier was produced with weaker parameters than the hasher's current
// configuration, so callers can re-hash on the next rotation.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy lives in
// the policy package; record persistence in the store.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive
//     verifiers.
//   - Import any other goCred package.
//   - Log plaintext passwords or hash parameters at runtime.
package password
