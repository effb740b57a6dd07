// Package internal contains helper utilities that are intentionally private to goCred,
// including the striped per-username mutex used by credential writes.
//
// # Sub-packages
//
//   - flows — pure-function flow orchestrators for every Engine operation
//   - stores — Redis-backed credential record persistence
//
// # What this package must NOT do
//
//   - Export types that appear in the public goCred API.
//   - Be imported by any package outside the goCred module.
package internal
