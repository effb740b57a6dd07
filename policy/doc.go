// Package policy implements password composition policies: the Policy value
// object, rule validation with deterministic failure ordering, conformant
// random generation, and a versioned policy snapshot codec for persistence.
//
// # Validation order
//
// Rules are checked in a fixed order and the first failure wins, so callers
// always observe the same Reason for the same input:
//
//	TooShort → MissingUppercase → MissingNumber → MissingSymbol
//
// # Symbol alphabet
//
// The Generator and the validator share one symbol alphabet value. When a
// Policy leaves SymbolAlphabet empty, both sides fall back to
// [DefaultSymbolAlphabet] — there is exactly one place where the set of
// accepted symbols is defined.
//
// # Architecture boundaries
//
// This package owns composition rules and generation only. Hashing,
// persistence, and breach lookup belong to their own packages; the Engine
// coordinates them.
//
// # What this package must NOT do
//
//   - Perform I/O or touch any store.
//   - Import any other goCred package.
//   - Use a seedable or deterministic random source for generation.
package policy
