// Package flows contains pure-function orchestrators for every Engine
// credential operation.
//
// Each flow function (RunStoreCredential, RunCheckCredential,
// RunRotateCredential, RunCheckBreach, RunListCredentials) accepts a typed
// dependency struct and returns results without side-effects beyond those
// dependencies. This design enables exhaustive unit testing with mock
// dependencies and keeps the Engine type thin.
//
// # Architecture boundaries
//
// Flow functions coordinate the policy validator, hasher, record store,
// breach client, audit dispatcher, and metrics. They do NOT own any of
// these resources — ownership stays with the Engine.
//
// # What this package must NOT do
//
//   - Hold mutable state between calls.
//   - Import goCred (to avoid import cycles).
//   - Perform I/O directly — all I/O is mediated through dependency funcs.
//   - Place plaintext passwords in audit metadata or error strings.
package flows
