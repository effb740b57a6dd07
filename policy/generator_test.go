package policy

import (
	"errors"
	"testing"
)

func TestGenerateValidatesAgainstPolicy(t *testing.T) {
	gen := NewGenerator(0)

	policies := []Policy{
		{MinLength: 8},
		{MinLength: 12, RequireUppercase: true},
		{MinLength: 12, RequireUppercase: true, RequireNumbers: true},
		{MinLength: 12, RequireUppercase: true, RequireNumbers: true, RequireSymbols: true},
		{MinLength: 16, RequireSymbols: true, SymbolAlphabet: "#@"},
	}

	for _, p := range policies {
		for i := 0; i < 20; i++ {
			pw, err := gen.Generate(p)
			if err != nil {
				t.Fatalf("generate failed for %+v: %v", p, err)
			}
			if len(pw) != p.MinLength {
				t.Fatalf("length = %d, want %d", len(pw), p.MinLength)
			}
			if res := Validate(pw, p); !res.OK {
				t.Fatalf("generated password %q violates policy %+v: %v", pw, p, res.Reason)
			}
		}
	}
}

func TestGenerateRejectsInvalidPolicy(t *testing.T) {
	if _, err := NewGenerator(0).Generate(Policy{MinLength: 0}); !errors.Is(err, ErrMinLength) {
		t.Fatalf("expected ErrMinLength, got %v", err)
	}
}

func TestGenerateExhaustsOnDegeneratePolicy(t *testing.T) {
	// One character cannot contain an uppercase letter, a digit, and a
	// symbol at once; every draw fails validation and the cap is hit.
	p := Policy{
		MinLength:        1,
		RequireUppercase: true,
		RequireNumbers:   true,
		RequireSymbols:   true,
	}

	if _, err := NewGenerator(10).Generate(p); !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
}

func TestGenerateMany(t *testing.T) {
	gen := NewGenerator(0)
	p := Policy{MinLength: 10, RequireNumbers: true}

	batch, err := gen.GenerateMany(5, p)
	if err != nil {
		t.Fatalf("generate many failed: %v", err)
	}
	if len(batch) != 5 {
		t.Fatalf("batch size = %d, want 5", len(batch))
	}
	for _, pw := range batch {
		if res := Validate(pw, p); !res.OK {
			t.Fatalf("batch password %q violates policy: %v", pw, res.Reason)
		}
	}
}

func TestGenerateManyRejectsCount(t *testing.T) {
	if _, err := NewGenerator(0).GenerateMany(0, Policy{MinLength: 8}); !errors.Is(err, ErrGenerateCount) {
		t.Fatalf("expected ErrGenerateCount, got %v", err)
	}
}

func TestBuildAlphabet(t *testing.T) {
	got := buildAlphabet(Policy{MinLength: 8})
	if got != lowercaseAlphabet {
		t.Fatalf("base alphabet = %q", got)
	}

	full := buildAlphabet(Policy{
		MinLength:        8,
		RequireUppercase: true,
		RequireNumbers:   true,
		RequireSymbols:   true,
	})
	want := lowercaseAlphabet + uppercaseAlphabet + digitAlphabet + DefaultSymbolAlphabet
	if full != want {
		t.Fatalf("full alphabet = %q, want %q", full, want)
	}
}
