package abi

import (
	"fmt"

	bridgeerrors "github.com/Aman-CERP/nativebridge/internal/errors"
)

// Kind tags the result of a negotiation.
type Kind int

const (
	// NoEntryPoint means the library exports neither constructor.
	NoEntryPoint Kind = iota
	// LegacyAccepted means EtsNapiOnLoad returned LegacyVersion.
	LegacyAccepted
	// ModernAccepted means ANI_Constructor succeeded with a supported version.
	ModernAccepted
	// VersionRejected means an entry point reported an unsupported version.
	VersionRejected
	// ConstructorFailed means ANI_Constructor returned a non-OK status.
	ConstructorFailed
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case NoEntryPoint:
		return "no-entry-point"
	case LegacyAccepted:
		return "legacy-accepted"
	case ModernAccepted:
		return "modern-accepted"
	case VersionRejected:
		return "version-rejected"
	case ConstructorFailed:
		return "constructor-failed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of Negotiate.
type Outcome struct {
	Kind Kind
	// Library is the registry name of the negotiated library.
	Library string
	// EntryPoint is the symbol that was called, empty for NoEntryPoint.
	EntryPoint string
	// Version is the version returned or reported by the entry point.
	Version uint32
	// Status is the modern constructor's return code.
	Status Status
}

// Accepted reports whether the library may be used.
func (o Outcome) Accepted() bool {
	switch o.Kind {
	case NoEntryPoint, LegacyAccepted, ModernAccepted:
		return true
	default:
		return false
	}
}

// Err converts a rejecting outcome into a coded error. Accepting outcomes
// return nil.
func (o Outcome) Err() error {
	switch o.Kind {
	case NoEntryPoint, LegacyAccepted, ModernAccepted:
		return nil
	case VersionRejected:
		return bridgeerrors.New(bridgeerrors.ErrCodeVersionMismatch,
			fmt.Sprintf("%s: %s reported unsupported version %#x", o.Library, o.EntryPoint, o.Version), nil).
			WithDetail("library", o.Library).
			WithDetail("entry_point", o.EntryPoint)
	case ConstructorFailed:
		return bridgeerrors.New(bridgeerrors.ErrCodeConstructorFailed,
			fmt.Sprintf("%s: %s failed with %s", o.Library, o.EntryPoint, o.Status), nil).
			WithDetail("library", o.Library).
			WithDetail("status", o.Status.String())
	default:
		return bridgeerrors.InternalError(fmt.Sprintf("%s: unknown negotiation outcome %d", o.Library, int(o.Kind)), nil)
	}
}
