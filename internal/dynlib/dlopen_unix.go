//go:build darwin || freebsd || linux

package dynlib

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// DefaultFlags resolves all symbols at open time and makes them available
// to libraries opened later.
const DefaultFlags = purego.RTLD_NOW | purego.RTLD_GLOBAL

// System opens shared objects with the platform dlopen.
type System struct {
	// Flags passed to dlopen. Zero selects DefaultFlags.
	Flags int
}

// NewSystem returns an Opener backed by dlopen.
func NewSystem() *System {
	return &System{Flags: DefaultFlags}
}

// Open implements Opener.
func (s *System) Open(path string) (Handle, error) {
	flags := s.Flags
	if flags == 0 {
		flags = DefaultFlags
	}

	h, err := purego.Dlopen(path, flags)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", path, err)
	}
	if h == 0 {
		return nil, fmt.Errorf("dlopen %s: null handle", path)
	}
	return &sharedObject{path: path, handle: h}, nil
}

type sharedObject struct {
	path   string
	handle uintptr
}

func (so *sharedObject) Symbol(name string) (uintptr, bool) {
	addr, err := purego.Dlsym(so.handle, name)
	if err != nil || addr == 0 {
		return 0, false
	}
	return addr, true
}

func (so *sharedObject) Close() error {
	if so.handle == 0 {
		return nil
	}
	if err := purego.Dlclose(so.handle); err != nil {
		return fmt.Errorf("dlclose %s: %w", so.path, err)
	}
	so.handle = 0
	return nil
}
