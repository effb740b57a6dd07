package policy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const snapshotVersionV1 = "v1"

var (
	// ErrSnapshotFormat is returned for snapshots that cannot be parsed.
	ErrSnapshotFormat = errors.New("invalid policy snapshot format")
	// ErrSnapshotVersion is returned for snapshots with an unknown version tag.
	ErrSnapshotVersion = errors.New("unsupported policy snapshot version")
)

// EncodeSnapshot serializes p as a versioned, exactly-reparseable text form:
//
//	v1;min=<n>;upper=<0|1>;num=<0|1>;sym=<0|1>;alpha=<alphabet>
//
// The alphabet field is last and consumed verbatim to end of string, so
// symbol alphabets containing ';' survive the round trip. The encoding is
// readable enough for export listings while staying a strict codec.
func EncodeSnapshot(p Policy) string {
	return fmt.Sprintf(
		"%s;min=%d;upper=%s;num=%s;sym=%s;alpha=%s",
		snapshotVersionV1,
		p.MinLength,
		encodeBool(p.RequireUppercase),
		encodeBool(p.RequireNumbers),
		encodeBool(p.RequireSymbols),
		p.SymbolAlphabet,
	)
}

// ParseSnapshot reverses [EncodeSnapshot]. The returned Policy is
// field-for-field identical to the encoded one, including an empty
// SymbolAlphabet when the original relied on the default.
func ParseSnapshot(s string) (Policy, error) {
	parts := strings.SplitN(s, ";", 6)
	if len(parts) != 6 {
		return Policy{}, ErrSnapshotFormat
	}
	if parts[0] != snapshotVersionV1 {
		return Policy{}, ErrSnapshotVersion
	}

	minLength, err := parseField(parts[1], "min=")
	if err != nil {
		return Policy{}, err
	}
	if minLength < 1 {
		return Policy{}, ErrSnapshotFormat
	}

	upper, err := parseBoolField(parts[2], "upper=")
	if err != nil {
		return Policy{}, err
	}
	num, err := parseBoolField(parts[3], "num=")
	if err != nil {
		return Policy{}, err
	}
	sym, err := parseBoolField(parts[4], "sym=")
	if err != nil {
		return Policy{}, err
	}

	if !strings.HasPrefix(parts[5], "alpha=") {
		return Policy{}, ErrSnapshotFormat
	}

	return Policy{
		MinLength:        minLength,
		RequireUppercase: upper,
		RequireNumbers:   num,
		RequireSymbols:   sym,
		SymbolAlphabet:   strings.TrimPrefix(parts[5], "alpha="),
	}, nil
}

func encodeBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func parseField(part, prefix string) (int, error) {
	if !strings.HasPrefix(part, prefix) {
		return 0, ErrSnapshotFormat
	}
	v, err := strconv.Atoi(strings.TrimPrefix(part, prefix))
	if err != nil {
		return 0, ErrSnapshotFormat
	}
	return v, nil
}

func parseBoolField(part, prefix string) (bool, error) {
	v, err := parseField(part, prefix)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrSnapshotFormat
	}
}
