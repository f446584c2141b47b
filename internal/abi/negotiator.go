package abi

import (
	"log/slog"

	"github.com/Aman-CERP/nativebridge/internal/permission"
)

// Env is the calling environment of a load.
type Env struct {
	// Native is the opaque native env pointer passed to EtsNapiOnLoad.
	Native uintptr
	// VM is the opaque VM handle passed to ANI_Constructor.
	VM uintptr
	// Stack walks the calling coroutine's managed frames.
	Stack permission.StackWalker
}

// Library is the view of a loaded library the negotiator needs.
type Library interface {
	Name() string
	FindSymbol(name string) (uintptr, bool)
}

// Invoker calls native entry points by address.
type Invoker interface {
	// CallOnLoad calls an EtsNapiOnLoad-shaped function.
	CallOnLoad(addr, env uintptr) int32
	// CallConstructor calls an ANI_Constructor-shaped function.
	CallConstructor(addr, vm uintptr, version *uint32) Status
}

// Option configures a Negotiator.
type Option func(*Negotiator)

// WithVersionCheck replaces the modern version predicate.
func WithVersionCheck(supported func(uint32) bool) Option {
	return func(n *Negotiator) {
		n.supported = supported
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Negotiator) {
		n.logger = l
	}
}

// Negotiator runs the constructor protocol against a loaded library.
type Negotiator struct {
	invoker   Invoker
	supported func(uint32) bool
	logger    *slog.Logger
}

// NewNegotiator creates a Negotiator calling through invoker.
func NewNegotiator(invoker Invoker, opts ...Option) *Negotiator {
	n := &Negotiator{
		invoker:   invoker,
		supported: DefaultModernVersions.Supports,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Negotiate probes lib for an entry point, calls it and validates the
// version. It panics on a nil env.
func (n *Negotiator) Negotiate(lib Library, env *Env) Outcome {
	if env == nil {
		panic("abi: Negotiate called with nil Env")
	}

	out := Outcome{Library: lib.Name()}

	if addr, ok := lib.FindSymbol(LegacyEntryPoint); ok {
		out.EntryPoint = LegacyEntryPoint
		v := n.invoker.CallOnLoad(addr, env.Native)
		out.Version = uint32(v)
		if v != LegacyVersion {
			out.Kind = VersionRejected
		} else {
			out.Kind = LegacyAccepted
		}
		n.log(out)
		return out
	}

	if addr, ok := lib.FindSymbol(ModernEntryPoint); ok {
		out.EntryPoint = ModernEntryPoint
		var v uint32
		out.Status = n.invoker.CallConstructor(addr, env.VM, &v)
		out.Version = v
		switch {
		case out.Status != StatusOK:
			out.Kind = ConstructorFailed
		case !n.supported(v):
			out.Kind = VersionRejected
		default:
			out.Kind = ModernAccepted
		}
		n.log(out)
		return out
	}

	out.Kind = NoEntryPoint
	n.log(out)
	return out
}

func (n *Negotiator) log(o Outcome) {
	switch o.Kind {
	case NoEntryPoint:
		n.logger.Warn("native library has no constructor entry point",
			slog.String("library", o.Library))
	case LegacyAccepted, ModernAccepted:
		n.logger.Debug("native library constructed",
			slog.String("library", o.Library),
			slog.String("entry_point", o.EntryPoint),
			slog.Uint64("version", uint64(o.Version)))
	default:
		n.logger.Error("native library rejected",
			slog.String("library", o.Library),
			slog.String("entry_point", o.EntryPoint),
			slog.String("outcome", o.Kind.String()),
			slog.Uint64("version", uint64(o.Version)),
			slog.String("status", o.Status.String()))
	}
}

// Detect reports which entry point lib exports without calling it.
// It returns the symbol name, or "" when there is none.
func Detect(lib Library) string {
	if _, ok := lib.FindSymbol(LegacyEntryPoint); ok {
		return LegacyEntryPoint
	}
	if _, ok := lib.FindSymbol(ModernEntryPoint); ok {
		return ModernEntryPoint
	}
	return ""
}
