package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	algorithmID = "argon2id"

	minMemoryKB    uint32 = 8 * 1024
	minTimeCost    uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
)

var (
	// ErrVerifierFormat is returned for verifiers that are not valid PHC
	// strings produced by this package.
	ErrVerifierFormat = errors.New("invalid verifier format")
	// ErrVerifierAlgorithm is returned when the verifier names a different
	// algorithm or argon2 version.
	ErrVerifierAlgorithm = errors.New("unsupported verifier algorithm")
)

// Params configures the Argon2id cost surface. All fields have enforced
// minimums; see [DefaultParams] for the recommended baseline.
type Params struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams returns the baseline cost parameters: 64 MB memory, three
// passes, two lanes, 16-byte salt, 32-byte key.
func DefaultParams() Params {
	return Params{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher computes and verifies Argon2id credential verifiers. Instances are
// immutable after construction and safe for concurrent use.
type Hasher struct {
	params Params
}

// NewHasher validates params against the enforced minimums and returns a
// ready hasher.
func NewHasher(params Params) (*Hasher, error) {
	if params.Memory < minMemoryKB {
		return nil, errors.New("password memory must be >= 8192 KB")
	}
	if params.Time < minTimeCost {
		return nil, errors.New("password time must be >= 1")
	}
	if params.Parallelism < minParallelism {
		return nil, errors.New("password parallelism must be >= 1")
	}
	if params.SaltLength < minSaltLength {
		return nil, errors.New("password salt length must be >= 16")
	}
	if params.KeyLength < minKeyLength {
		return nil, errors.New("password key length must be >= 16")
	}

	return &Hasher{params: params}, nil
}

// Hash derives a verifier for password with a fresh random salt. The raw
// string bytes are hashed exactly as provided (no Unicode normalization).
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Time,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Parallelism,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	), nil
}

// Matches reports whether password derives the stored verifier, using the
// salt and cost parameters embedded in the verifier and a constant-time
// digest comparison.
func (h *Hasher) Matches(password, verifier string) (bool, error) {
	parsed, err := parseVerifier(verifier)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password),
		parsed.salt,
		parsed.time,
		parsed.memory,
		parsed.parallelism,
		uint32(len(parsed.key)),
	)

	return subtle.ConstantTimeCompare(computed, parsed.key) == 1, nil
}

// NeedsRehash reports whether verifier was produced with weaker parameters
// than the hasher's current configuration and should be regenerated on the
// next rotation.
func (h *Hasher) NeedsRehash(verifier string) (bool, error) {
	parsed, err := parseVerifier(verifier)
	if err != nil {
		return false, err
	}

	switch {
	case h.params.Memory > parsed.memory,
		h.params.Time > parsed.time,
		h.params.Parallelism > parsed.parallelism,
		h.params.KeyLength != uint32(len(parsed.key)):
		return true, nil
	}
	return false, nil
}

type verifierFields struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func parseVerifier(verifier string) (verifierFields, error) {
	var out verifierFields

	parts := strings.Split(verifier, "$")
	if len(parts) != 6 || parts[0] != "" {
		return out, ErrVerifierFormat
	}
	if parts[1] != algorithmID {
		return out, ErrVerifierAlgorithm
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return out, ErrVerifierFormat
	}
	v, err := strconv.Atoi(version)
	if err != nil {
		return out, ErrVerifierFormat
	}
	if v != argon2.Version {
		return out, ErrVerifierAlgorithm
	}

	if err := parseCostParams(parts[3], &out); err != nil {
		return out, err
	}

	out.salt, err = base64.StdEncoding.DecodeString(parts[4])
	if err != nil || uint32(len(out.salt)) < minSaltLength {
		return out, ErrVerifierFormat
	}

	out.key, err = base64.StdEncoding.DecodeString(parts[5])
	if err != nil || len(out.key) == 0 {
		return out, ErrVerifierFormat
	}

	return out, nil
}

func parseCostParams(part string, out *verifierFields) error {
	pairs := strings.Split(part, ",")
	if len(pairs) != 3 {
		return ErrVerifierFormat
	}

	var seenMemory, seenTime, seenParallelism bool
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return ErrVerifierFormat
		}

		switch name {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || v < uint64(minMemoryKB) {
				return ErrVerifierFormat
			}
			out.memory = uint32(v)
			seenMemory = true
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || v < uint64(minTimeCost) {
				return ErrVerifierFormat
			}
			out.time = uint32(v)
			seenTime = true
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil || v < uint64(minParallelism) {
				return ErrVerifierFormat
			}
			out.parallelism = uint8(v)
			seenParallelism = true
		default:
			return ErrVerifierFormat
		}
	}

	if !seenMemory || !seenTime || !seenParallelism {
		return ErrVerifierFormat
	}
	return nil
}
