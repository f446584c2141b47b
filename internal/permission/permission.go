// Package permission decides whether managed code may load a native library.
//
// The decision is delegated to an allow-list callback registered by the
// host. The callback is keyed by the managed class that asked for the load,
// found by walking the caller's stack to the nearest application frame.
package permission

import (
	"log/slog"
	"sync/atomic"
)

// Frame is one executing managed frame.
type Frame struct {
	// ClassName is the defining class of the frame's method.
	ClassName string
	// File is the module (abc/zip/hap) the class was loaded from.
	File string
	// Boot is true when the defining module belongs to the boot context.
	Boot bool
}

// StackWalker yields the managed frames of the calling coroutine,
// innermost first.
type StackWalker interface {
	Frames() ([]Frame, error)
}

// StackWalkerFunc adapts a function to StackWalker.
type StackWalkerFunc func() ([]Frame, error)

// Frames calls f.
func (f StackWalkerFunc) Frames() ([]Frame, error) {
	return f()
}

// AllowList reports whether callerClass may load libraryFile.
type AllowList func(callerClass, libraryFile string) bool

// Decision is the outcome of a permission check.
type Decision struct {
	Allowed bool
	// CallerClass is informational; empty when no caller was found.
	CallerClass string
}

// Gate is consulted before a library load that requires verification.
type Gate interface {
	Check(walker StackWalker, candidateFile string) Decision
}

// Options configures New.
type Options struct {
	// Enabled compiles the allow-list check into the gate. When false the
	// gate allows every load without looking at the stack.
	Enabled bool
	// AllowList is the initial callback; it may also be set later with
	// Checker.SetAllowList.
	AllowList AllowList
	Logger    *slog.Logger
}

// New returns the gate for the configured platform profile. The choice is
// made once here, never per call.
func New(opts Options) Gate {
	if !opts.Enabled {
		return AllowAll{}
	}
	return NewChecker(opts.AllowList, opts.Logger)
}

// AllowAll is the gate for profiles without allow-list support.
type AllowAll struct{}

// Check always allows.
func (AllowAll) Check(StackWalker, string) Decision {
	return Decision{Allowed: true}
}

// Checker enforces the host allow-list.
type Checker struct {
	allow  atomic.Pointer[AllowList]
	logger *slog.Logger
}

// NewChecker creates a Checker. A nil allow-list means every identified
// caller is allowed until one is registered.
func NewChecker(allow AllowList, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Checker{logger: logger}
	c.SetAllowList(allow)
	return c
}

// SetAllowList registers (or with nil, removes) the host callback.
func (c *Checker) SetAllowList(allow AllowList) {
	if allow == nil {
		c.allow.Store(nil)
		return
	}
	c.allow.Store(&allow)
}

// Check implements Gate. It fails closed when the caller cannot be
// identified.
func (c *Checker) Check(walker StackWalker, candidateFile string) Decision {
	caller, ok := CallerFrame(walker)
	if !ok {
		c.logger.Warn("native library load denied: no application caller on stack",
			slog.String("file", candidateFile))
		return Decision{Allowed: false}
	}

	allow := c.allow.Load()
	if allow == nil {
		return Decision{Allowed: true, CallerClass: caller.ClassName}
	}

	if !(*allow)(caller.ClassName, candidateFile) {
		c.logger.Warn("native library load denied by allow-list",
			slog.String("caller", caller.ClassName),
			slog.String("file", candidateFile))
		return Decision{Allowed: false, CallerClass: caller.ClassName}
	}
	return Decision{Allowed: true, CallerClass: caller.ClassName}
}

// CallerFrame returns the innermost frame whose module is not part of the
// boot context.
func CallerFrame(walker StackWalker) (Frame, bool) {
	if walker == nil {
		return Frame{}, false
	}
	frames, err := walker.Frames()
	if err != nil {
		return Frame{}, false
	}
	for _, f := range frames {
		if !f.Boot {
			return f, true
		}
	}
	return Frame{}, false
}
