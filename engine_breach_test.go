package goCred

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrEthical07/goCred/breach"
)

type stubBreachLookup struct {
	result breach.Result
	err    error
}

func (s *stubBreachLookup) Lookup(context.Context, string) (breach.Result, error) {
	return s.result, s.err
}

func newBreachTestEngine(t *testing.T, lookup BreachLookup) *Engine {
	t.Helper()

	mr, rdb := newTestRedis(t)
	t.Cleanup(mr.Close)

	engine, err := New().
		WithConfig(testConfig()).
		WithRedis(rdb).
		WithBreachLookup(lookup).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

func TestCheckBreachDisabled(t *testing.T) {
	engine, _ := newTestEngine(t)

	result, err := engine.CheckBreach(context.Background(), "password")
	if !errors.Is(err, ErrBreachDisabled) {
		t.Fatalf("expected ErrBreachDisabled, got %v", err)
	}
	if result.Status != breach.StatusUnavailable {
		t.Fatalf("expected StatusUnavailable, got %s", result.Status)
	}
}

func TestCheckBreachFound(t *testing.T) {
	engine := newBreachTestEngine(t, &stubBreachLookup{
		result: breach.Result{Breached: true, Occurrences: 9545824, Status: breach.StatusFound},
	})

	result, err := engine.CheckBreach(context.Background(), "password")
	if err != nil {
		t.Fatalf("CheckBreach failed: %v", err)
	}
	if !result.Breached || result.Status != breach.StatusFound {
		t.Fatalf("expected found result, got %+v", result)
	}
	if result.Occurrences != 9545824 {
		t.Fatalf("expected 9545824 occurrences, got %d", result.Occurrences)
	}
}

func TestCheckBreachNotFound(t *testing.T) {
	engine := newBreachTestEngine(t, &stubBreachLookup{
		result: breach.Result{Status: breach.StatusNotFound},
	})

	result, err := engine.CheckBreach(context.Background(), "zx81!unique!candidate")
	if err != nil {
		t.Fatalf("CheckBreach failed: %v", err)
	}
	if result.Breached || result.Status != breach.StatusNotFound {
		t.Fatalf("expected not-found result, got %+v", result)
	}
}

func TestCheckBreachUnavailable(t *testing.T) {
	engine := newBreachTestEngine(t, &stubBreachLookup{
		result: breach.Result{Status: breach.StatusUnavailable},
		err:    breach.ErrUnavailable,
	})

	result, err := engine.CheckBreach(context.Background(), "password")
	if !errors.Is(err, ErrBreachUnavailable) {
		t.Fatalf("expected ErrBreachUnavailable, got %v", err)
	}
	if result.Status != breach.StatusUnavailable {
		t.Fatalf("expected StatusUnavailable, got %s", result.Status)
	}
}

func TestCheckBreachAgainstRangeServer(t *testing.T) {
	// "password" sha1: 5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("1E4C9B93F3F0682250B6CF8331B7EE68FD8:9545824\r\nFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF:2\r\n"))
	}))
	defer server.Close()

	client := breach.NewClient(breach.Options{BaseURL: server.URL + "/"})
	engine := newBreachTestEngine(t, client)

	result, err := engine.CheckBreach(context.Background(), "password")
	if err != nil {
		t.Fatalf("CheckBreach failed: %v", err)
	}
	if !result.Breached || result.Occurrences != 9545824 {
		t.Fatalf("expected breached with 9545824 occurrences, got %+v", result)
	}
}

func TestCheckBreachConfigEnabled(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ABCDEFABCDEFABCDEFABCDEFABCDEFABCDE:1\r\n"))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Breach.Enabled = true
	cfg.Breach.BaseURL = server.URL + "/"

	engine, err := New().WithConfig(cfg).WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	result, err := engine.CheckBreach(context.Background(), "password")
	if err != nil {
		t.Fatalf("CheckBreach failed: %v", err)
	}
	if result.Breached {
		t.Fatalf("expected not breached for non-matching range, got %+v", result)
	}
}
