package policy

import "errors"

// DefaultSymbolAlphabet is the canonical symbol set shared by the validator
// and the [Generator]. A Policy with an empty SymbolAlphabet uses this value
// on both sides, so the two can never drift apart.
const DefaultSymbolAlphabet = "!@#$%^&*()-_=+[]{};:,.<>?"

// ErrMinLength is returned by [Policy.Check] for a policy whose MinLength is
// below one.
var ErrMinLength = errors.New("policy min length must be >= 1")

// Reason identifies the first composition rule a password failed.
type Reason uint8

const (
	// ReasonNone means the password satisfied every rule.
	ReasonNone Reason = iota
	// ReasonTooShort means the password is shorter than MinLength.
	ReasonTooShort
	// ReasonMissingUppercase means no character is an uppercase letter.
	ReasonMissingUppercase
	// ReasonMissingNumber means no character is a decimal digit.
	ReasonMissingNumber
	// ReasonMissingSymbol means no character is in the symbol alphabet.
	ReasonMissingSymbol
)

// String returns a stable snake_case name for the reason, used in audit
// metadata and error messages.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTooShort:
		return "too_short"
	case ReasonMissingUppercase:
		return "missing_uppercase"
	case ReasonMissingNumber:
		return "missing_number"
	case ReasonMissingSymbol:
		return "missing_symbol"
	default:
		return "unknown"
	}
}

// Policy is an immutable value object describing password composition rules.
// The zero value is not valid; MinLength must be at least one.
type Policy struct {
	MinLength        int
	RequireUppercase bool
	RequireNumbers   bool
	RequireSymbols   bool

	// SymbolAlphabet overrides the symbol set for both validation and
	// generation. Empty means [DefaultSymbolAlphabet].
	SymbolAlphabet string
}

// Result is the outcome of validating a password against a Policy.
type Result struct {
	OK     bool
	Reason Reason
}

// Symbols returns the effective symbol alphabet for the policy.
func (p Policy) Symbols() string {
	if p.SymbolAlphabet == "" {
		return DefaultSymbolAlphabet
	}
	return p.SymbolAlphabet
}

// Check reports whether the policy itself is well formed.
func (p Policy) Check() error {
	if p.MinLength < 1 {
		return ErrMinLength
	}
	return nil
}

// Validate checks password against p. Rules run in a fixed order and the
// first failure wins; when every composition flag is false, any password of
// sufficient length passes.
func Validate(password string, p Policy) Result {
	if len(password) < p.MinLength {
		return Result{Reason: ReasonTooShort}
	}
	if p.RequireUppercase && !containsClass(password, isUppercase) {
		return Result{Reason: ReasonMissingUppercase}
	}
	if p.RequireNumbers && !containsClass(password, isDigit) {
		return Result{Reason: ReasonMissingNumber}
	}
	if p.RequireSymbols && !containsAny(password, p.Symbols()) {
		return Result{Reason: ReasonMissingSymbol}
	}
	return Result{OK: true, Reason: ReasonNone}
}

func isUppercase(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func containsClass(s string, class func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if class(s[i]) {
			return true
		}
	}
	return false
}

func containsAny(s, set string) bool {
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(set); j++ {
			if s[i] == set[j] {
				return true
			}
		}
	}
	return false
}
