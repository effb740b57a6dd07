package goCred

import (
	"context"
	"errors"
	"testing"

	"github.com/MrEthical07/goCred/policy"
)

func TestBuildRequiresBackend(t *testing.T) {
	_, err := New().WithConfig(testConfig()).Build()
	if err == nil {
		t.Fatal("expected Build without redis or store to fail")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	b := New().WithConfig(testConfig()).WithRedis(rdb)
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer engine.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build on same builder to fail")
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	cfg := testConfig()
	cfg.Policy.MinLength = 0

	if _, err := New().WithConfig(cfg).WithRedis(rdb).Build(); err == nil {
		t.Fatal("expected Build with zero MinLength to fail")
	}
}

func TestGeneratePasswordSatisfiesPolicy(t *testing.T) {
	engine, _ := newTestEngine(t)

	for i := 0; i < 20; i++ {
		candidate, err := engine.GeneratePassword(context.Background())
		if err != nil {
			t.Fatalf("GeneratePassword failed: %v", err)
		}
		if res := engine.ValidatePassword(candidate); !res.OK {
			t.Fatalf("generated password %q failed validation: %s", candidate, res.Reason)
		}
	}
}

func TestGeneratePasswords(t *testing.T) {
	engine, _ := newTestEngine(t)

	passwords, err := engine.GeneratePasswords(context.Background(), 5)
	if err != nil {
		t.Fatalf("GeneratePasswords failed: %v", err)
	}
	if len(passwords) != 5 {
		t.Fatalf("expected 5 passwords, got %d", len(passwords))
	}
	for _, p := range passwords {
		if res := engine.ValidatePassword(p); !res.OK {
			t.Fatalf("generated password %q failed validation: %s", p, res.Reason)
		}
	}
}

func TestGeneratePasswordsRejectsCount(t *testing.T) {
	engine, _ := newTestEngine(t)

	if _, err := engine.GeneratePasswords(context.Background(), 0); err == nil {
		t.Fatal("expected count of 0 to fail")
	}
}

func TestValidatePasswordRuleOrder(t *testing.T) {
	engine, _ := newTestEngine(t)

	// Long enough but all lowercase: the uppercase rule fires before the
	// number and symbol rules.
	res := engine.ValidatePassword("abcdefghijkl")
	if res.OK {
		t.Fatal("expected rejection")
	}
	if res.Reason != policy.ReasonMissingUppercase {
		t.Fatalf("expected missing_uppercase, got %s", res.Reason)
	}

	if res := engine.ValidatePassword(testPassword); !res.OK {
		t.Fatalf("expected %q to pass, got %s", testPassword, res.Reason)
	}
}

func TestNilEngineIsInert(t *testing.T) {
	var engine *Engine

	engine.Close()
	if engine.AuditDropped() != 0 {
		t.Fatal("expected zero dropped events on nil engine")
	}
	if _, err := engine.GeneratePassword(context.Background()); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if err := engine.StoreCredential(context.Background(), "alice", testPassword); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if _, err := engine.CheckCredential(context.Background(), "alice", testPassword); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
}
