package flows

import (
	"context"
	"time"

	"github.com/MrEthical07/goCred/policy"
)

// Record is the flow-level view of one username's credential.
type Record struct {
	ID        string
	Username  string
	Verifier  string
	CreatedAt time.Time
	Policy    policy.Policy
}

// AuditFunc receives (ctx, event, success, username, err, metadata builder).
// The metadata builder is only invoked when an event is actually emitted.
type AuditFunc func(context.Context, string, bool, string, error, func() map[string]string)

func noopAudit(context.Context, string, bool, string, error, func() map[string]string) {}

func noopMetric(int) {}

func noopLock(string) func() { return func() {} }

func identityError(err error) error { return err }
