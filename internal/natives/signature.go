package natives

import (
	"fmt"

	bridgeerrors "github.com/Aman-CERP/nativebridge/internal/errors"
)

// Kind is the calling convention of a native method.
type Kind int

const (
	// Normal natives receive the env and the receiver.
	Normal Kind = iota
	// Fast natives skip the transition bookkeeping of a normal call.
	Fast
	// Critical natives receive neither env nor receiver.
	Critical
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Fast:
		return "fast"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParseSignature splits the calling convention prefix off sig. "#F$" marks
// a fast native and "#C$" a critical one; any other '#' prefix is invalid.
// The returned signature is empty when sig carries no type information.
func ParseSignature(sig string) (Kind, string, error) {
	if sig == "" || sig[0] != '#' {
		return Normal, sig, nil
	}
	if len(sig) < 3 || sig[2] != '$' {
		return Normal, "", invalidSignature(sig)
	}

	var kind Kind
	switch sig[1] {
	case 'F':
		kind = Fast
	case 'C':
		kind = Critical
	default:
		return Normal, "", invalidSignature(sig)
	}
	return kind, sig[3:], nil
}

func invalidSignature(sig string) error {
	return bridgeerrors.New(bridgeerrors.ErrCodeInvalidSignature,
		fmt.Sprintf("invalid native signature %q", sig), nil).
		WithSuggestion("Use #F$ for fast natives and #C$ for critical natives")
}
