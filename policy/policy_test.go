package policy

import "testing"

func strictPolicy() Policy {
	return Policy{
		MinLength:        12,
		RequireUppercase: true,
		RequireNumbers:   true,
		RequireSymbols:   true,
	}
}

func TestValidateRuleOrder(t *testing.T) {
	p := strictPolicy()

	cases := []struct {
		name     string
		password string
		want     Reason
	}{
		{"too short wins first", "Ab1!", ReasonTooShort},
		{"length met fails on uppercase", "abcdefghijkl", ReasonMissingUppercase},
		{"uppercase met fails on number", "Abcdefghijkl", ReasonMissingNumber},
		{"number met fails on symbol", "Abcdefghijk1", ReasonMissingSymbol},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.password, p)
			if res.OK {
				t.Fatalf("expected failure for %q", tc.password)
			}
			if res.Reason != tc.want {
				t.Fatalf("reason = %v, want %v", res.Reason, tc.want)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	res := Validate("Abc12345678!", strictPolicy())
	if !res.OK {
		t.Fatalf("expected ok, got reason %v", res.Reason)
	}
	if res.Reason != ReasonNone {
		t.Fatalf("reason = %v, want none", res.Reason)
	}
}

func TestValidateLengthOnlyPolicy(t *testing.T) {
	p := Policy{MinLength: 8}

	if res := Validate("aaaaaaaa", p); !res.OK {
		t.Fatalf("length-only policy rejected sufficient password: %v", res.Reason)
	}
	if res := Validate("aaaaaaa", p); res.OK || res.Reason != ReasonTooShort {
		t.Fatalf("expected too_short, got ok=%v reason=%v", res.OK, res.Reason)
	}
}

func TestValidateCustomSymbolAlphabet(t *testing.T) {
	p := Policy{
		MinLength:      4,
		RequireSymbols: true,
		SymbolAlphabet: "#",
	}

	if res := Validate("abc#", p); !res.OK {
		t.Fatalf("custom alphabet symbol rejected: %v", res.Reason)
	}
	// '!' is in the default alphabet but not this policy's.
	if res := Validate("abc!", p); res.OK || res.Reason != ReasonMissingSymbol {
		t.Fatalf("expected missing_symbol, got ok=%v reason=%v", res.OK, res.Reason)
	}
}

func TestPolicyCheck(t *testing.T) {
	if err := (Policy{MinLength: 0}).Check(); err == nil {
		t.Fatal("expected error for zero min length")
	}
	if err := (Policy{MinLength: 1}).Check(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSymbolsDefault(t *testing.T) {
	if got := (Policy{MinLength: 1}).Symbols(); got != DefaultSymbolAlphabet {
		t.Fatalf("empty alphabet should default, got %q", got)
	}
	if got := (Policy{MinLength: 1, SymbolAlphabet: "@!"}).Symbols(); got != "@!" {
		t.Fatalf("explicit alphabet not honored, got %q", got)
	}
}

func TestReasonString(t *testing.T) {
	cases := map[Reason]string{
		ReasonNone:             "none",
		ReasonTooShort:         "too_short",
		ReasonMissingUppercase: "missing_uppercase",
		ReasonMissingNumber:    "missing_number",
		ReasonMissingSymbol:    "missing_symbol",
		Reason(200):            "unknown",
	}
	for r, want := range cases {
		if got := r.String(); got != want {
			t.Fatalf("Reason(%d).String() = %q, want %q", r, got, want)
		}
	}
}
