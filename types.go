package goCred

import (
	"context"
	"time"

	"github.com/MrEthical07/goCred/breach"
	"github.com/MrEthical07/goCred/policy"
)

// Record defines a public type used by goCred APIs.
//
// Record instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// The Verifier field carries the PHC-encoded Argon2id verifier; the plaintext
// password is never stored.
type Record struct {
	ID        string
	Username  string
	Verifier  string
	CreatedAt time.Time
	Policy    policy.Policy
}

// CredentialStore defines a public type used by goCred APIs.
//
// Implementations must return an error matching ErrRecordNotFound from Find
// and Replace when no record exists for the username, and an error matching
// ErrRotationConflict from Replace when the stored verifier no longer equals
// expectedVerifier. Upsert overwrites any existing record for the username.
type CredentialStore interface {
	Upsert(ctx context.Context, record Record) error
	Find(ctx context.Context, username string) (Record, error)
	Replace(ctx context.Context, username, expectedVerifier string, next Record) error
	ListAll(ctx context.Context) ([]Record, error)
}

// BreachLookup defines a public type used by goCred APIs.
//
// BreachLookup instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BreachLookup interface {
	Lookup(ctx context.Context, password string) (breach.Result, error)
}
