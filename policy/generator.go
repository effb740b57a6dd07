package policy

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	lowercaseAlphabet = "abcdefghijklmnopqrstuvwxyz"
	uppercaseAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitAlphabet     = "0123456789"

	defaultMaxAttempts = 100
)

var (
	// ErrGenerationExhausted is returned when the generate-then-validate
	// loop could not produce a conformant password within the attempt cap.
	// Unreachable in practice for MinLength >= 8 with a non-trivial
	// alphabet; degenerate policies (three required classes at length one)
	// hit it deterministically.
	ErrGenerationExhausted = errors.New("password generation exhausted attempt cap")

	// ErrGenerateCount is returned by [Generator.GenerateMany] for a
	// non-positive count.
	ErrGenerateCount = errors.New("generate count must be >= 1")
)

// Generator produces policy-conformant passwords from crypto/rand.
// Generation is non-deterministic and not seedable by callers.
type Generator struct {
	maxAttempts int
}

// NewGenerator returns a generator with the given attempt cap per password.
// A cap below one selects the default of 100.
func NewGenerator(maxAttempts int) *Generator {
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	return &Generator{maxAttempts: maxAttempts}
}

// Generate draws MinLength characters independently and uniformly from the
// union alphabet implied by the policy, then validates the draw. Because
// uniform draws over a superset alphabet do not guarantee every required
// class appears, failed draws are retried with fresh randomness up to the
// attempt cap.
//
// The returned password always satisfies Validate(result, p).OK.
func (g *Generator) Generate(p Policy) (string, error) {
	if err := p.Check(); err != nil {
		return "", err
	}

	alphabet := buildAlphabet(p)
	size := big.NewInt(int64(len(alphabet)))

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		var b strings.Builder
		b.Grow(p.MinLength)

		for i := 0; i < p.MinLength; i++ {
			n, err := rand.Int(rand.Reader, size)
			if err != nil {
				return "", err
			}
			b.WriteByte(alphabet[n.Int64()])
		}

		candidate := b.String()
		if Validate(candidate, p).OK {
			return candidate, nil
		}
	}

	return "", ErrGenerationExhausted
}

// GenerateMany generates count independent passwords for the same policy.
// No uniqueness is guaranteed across the batch.
func (g *Generator) GenerateMany(count int, p Policy) ([]string, error) {
	if count < 1 {
		return nil, ErrGenerateCount
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		pw, err := g.Generate(p)
		if err != nil {
			return nil, err
		}
		out = append(out, pw)
	}

	return out, nil
}

func buildAlphabet(p Policy) string {
	var b strings.Builder
	b.WriteString(lowercaseAlphabet)
	if p.RequireUppercase {
		b.WriteString(uppercaseAlphabet)
	}
	if p.RequireNumbers {
		b.WriteString(digitAlphabet)
	}
	if p.RequireSymbols {
		b.WriteString(p.Symbols())
	}
	return b.String()
}
