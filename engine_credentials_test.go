package goCred

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testConfig() Config {
	cfg := defaultConfig()
	// Minimum allowed Argon2 cost keeps the suite fast.
	cfg.Password = PasswordConfig{
		Memory:      8192,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
	return cfg
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func newTestEngine(t *testing.T) (*Engine, *miniredis.Miniredis) {
	t.Helper()

	mr, rdb := newTestRedis(t)
	t.Cleanup(mr.Close)

	engine, err := New().
		WithConfig(testConfig()).
		WithRedis(rdb).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, mr
}

const testPassword = "Abc12345678!"

func TestStoreAndCheckCredential(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.StoreCredential(ctx, "alice", testPassword); err != nil {
		t.Fatalf("StoreCredential failed: %v", err)
	}

	ok, err := engine.CheckCredential(ctx, "alice", testPassword)
	if err != nil {
		t.Fatalf("CheckCredential failed: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = engine.CheckCredential(ctx, "alice", "Wrong12345678!")
	if err != nil {
		t.Fatalf("CheckCredential with wrong password failed: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestStoreCredentialRejectsPolicyViolation(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	// Too short comes before the missing-uppercase rule, so a short
	// lowercase password must surface too_short first.
	err := engine.StoreCredential(ctx, "alice", "ab1!")
	if !errors.Is(err, ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy, got %v", err)
	}

	var violation *PolicyViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected PolicyViolationError, got %T", err)
	}
	if violation.Reason.String() != "too_short" {
		t.Fatalf("expected too_short, got %s", violation.Reason)
	}

	if _, err := engine.CheckCredential(ctx, "alice", "ab1!"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected no record after rejected store, got %v", err)
	}
}

func TestStoreCredentialRejectsEmptyUsername(t *testing.T) {
	engine, _ := newTestEngine(t)

	if err := engine.StoreCredential(context.Background(), "   ", testPassword); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
}

func TestStoreCredentialOverwrites(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.StoreCredential(ctx, "alice", testPassword); err != nil {
		t.Fatalf("first StoreCredential failed: %v", err)
	}
	first, err := engine.store.Find(ctx, "alice")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	const replacement = "Xyz98765432#!"
	if err := engine.StoreCredential(ctx, "alice", replacement); err != nil {
		t.Fatalf("second StoreCredential failed: %v", err)
	}
	second, err := engine.store.Find(ctx, "alice")
	if err != nil {
		t.Fatalf("Find after overwrite failed: %v", err)
	}

	if second.ID == first.ID {
		t.Fatal("expected overwrite to mint a fresh record ID")
	}

	ok, err := engine.CheckCredential(ctx, "alice", replacement)
	if err != nil || !ok {
		t.Fatalf("replacement password should verify, ok=%v err=%v", ok, err)
	}
	ok, err = engine.CheckCredential(ctx, "alice", testPassword)
	if err != nil || ok {
		t.Fatalf("original password should no longer verify, ok=%v err=%v", ok, err)
	}
}

func TestCheckCredentialUnknownUser(t *testing.T) {
	engine, _ := newTestEngine(t)

	ok, err := engine.CheckCredential(context.Background(), "ghost", testPassword)
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for unknown user")
	}
}

func TestRotateCredential(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.StoreCredential(ctx, "alice", testPassword); err != nil {
		t.Fatalf("StoreCredential failed: %v", err)
	}
	before, err := engine.store.Find(ctx, "alice")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	const next = "Next12345678$!"
	if err := engine.RotateCredential(ctx, "alice", testPassword, next); err != nil {
		t.Fatalf("RotateCredential failed: %v", err)
	}

	after, err := engine.store.Find(ctx, "alice")
	if err != nil {
		t.Fatalf("Find after rotate failed: %v", err)
	}
	if after.ID != before.ID {
		t.Fatal("expected record ID to be stable across rotation")
	}
	if after.Verifier == before.Verifier {
		t.Fatal("expected verifier to change on rotation")
	}

	ok, err := engine.CheckCredential(ctx, "alice", next)
	if err != nil || !ok {
		t.Fatalf("new password should verify, ok=%v err=%v", ok, err)
	}
	ok, err = engine.CheckCredential(ctx, "alice", testPassword)
	if err != nil || ok {
		t.Fatalf("old password should no longer verify, ok=%v err=%v", ok, err)
	}
}

func TestRotateCredentialWrongOldPassword(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.StoreCredential(ctx, "alice", testPassword); err != nil {
		t.Fatalf("StoreCredential failed: %v", err)
	}
	before, err := engine.store.Find(ctx, "alice")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	err = engine.RotateCredential(ctx, "alice", "Wrong12345678!", "Next12345678$!")
	if !errors.Is(err, ErrOldPasswordIncorrect) {
		t.Fatalf("expected ErrOldPasswordIncorrect, got %v", err)
	}

	after, err := engine.store.Find(ctx, "alice")
	if err != nil {
		t.Fatalf("Find after failed rotate failed: %v", err)
	}
	if after.Verifier != before.Verifier {
		t.Fatal("expected record untouched after failed rotation")
	}

	ok, err := engine.CheckCredential(ctx, "alice", testPassword)
	if err != nil || !ok {
		t.Fatalf("old password should still verify, ok=%v err=%v", ok, err)
	}
}

func TestRotateCredentialUnknownUser(t *testing.T) {
	engine, _ := newTestEngine(t)

	err := engine.RotateCredential(context.Background(), "ghost", testPassword, "Next12345678$!")
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestRotateCredentialRejectsWeakNewPassword(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.StoreCredential(ctx, "alice", testPassword); err != nil {
		t.Fatalf("StoreCredential failed: %v", err)
	}

	err := engine.RotateCredential(ctx, "alice", testPassword, "weak")
	if !errors.Is(err, ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy, got %v", err)
	}

	ok, err := engine.CheckCredential(ctx, "alice", testPassword)
	if err != nil || !ok {
		t.Fatalf("old password should still verify, ok=%v err=%v", ok, err)
	}
}

func TestRotateCredentialConcurrent(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.StoreCredential(ctx, "alice", testPassword); err != nil {
		t.Fatalf("StoreCredential failed: %v", err)
	}

	const workers = 4
	results := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.RotateCredential(ctx, "alice", testPassword, fmt.Sprintf("Next%d2345678$!", i))
		}(i)
	}
	wg.Wait()

	// Exactly one rotation may win; the rest must fail the old-password
	// check against the already-rotated verifier.
	wins := 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrOldPasswordIncorrect):
		default:
			t.Fatalf("unexpected rotation error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning rotation, got %d", wins)
	}
}

func TestListCredentialsSorted(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	for _, username := range []string{"carol", "alice", "bob"} {
		if err := engine.StoreCredential(ctx, username, testPassword); err != nil {
			t.Fatalf("StoreCredential %s failed: %v", username, err)
		}
	}

	records, err := engine.ListCredentials(ctx)
	if err != nil {
		t.Fatalf("ListCredentials failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if records[i].Username != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, records[i].Username)
		}
		if records[i].Verifier == "" {
			t.Fatalf("record %s missing verifier", want)
		}
		if records[i].Policy.MinLength != engine.Policy().MinLength {
			t.Fatalf("record %s lost its policy snapshot", want)
		}
	}
}

func TestListCredentialsEmpty(t *testing.T) {
	engine, _ := newTestEngine(t)

	records, err := engine.ListCredentials(context.Background())
	if err != nil {
		t.Fatalf("ListCredentials failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty listing, got %d records", len(records))
	}
}

func TestStoreCredentialStoreUnavailable(t *testing.T) {
	engine, mr := newTestEngine(t)
	ctx := context.Background()

	mr.Close()

	err := engine.StoreCredential(ctx, "alice", testPassword)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestCheckCredentialStoreUnavailable(t *testing.T) {
	engine, mr := newTestEngine(t)
	ctx := context.Background()

	if err := engine.StoreCredential(ctx, "alice", testPassword); err != nil {
		t.Fatalf("StoreCredential failed: %v", err)
	}
	mr.Close()

	_, err := engine.CheckCredential(ctx, "alice", testPassword)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
