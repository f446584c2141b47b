// Package dynlib wraps the operating system's dynamic loader.
//
// The bridge only needs two primitives: open a shared object by path and
// look up an exported symbol in it. Both are expressed as interfaces so the
// loading algorithm can be exercised without touching the real loader.
package dynlib

import "errors"

// ErrUnsupported is returned by Open on platforms without a dynamic loader.
var ErrUnsupported = errors.New("dynamic library loading is not supported on this platform")

// Handle is an opened shared object.
type Handle interface {
	// Symbol returns the address of an exported symbol. The boolean is
	// false when the object does not export name or the address is zero.
	Symbol(name string) (uintptr, bool)

	// Close releases the handle. The OS loader refcounts identical
	// objects, so closing one of two handles to the same file is safe.
	Close() error
}

// Opener opens shared objects by path.
type Opener interface {
	Open(path string) (Handle, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (Handle, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (Handle, error) {
	return f(path)
}
