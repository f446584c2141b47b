//go:build !darwin && !freebsd && !linux

package dynlib

import "fmt"

// DefaultFlags is unused on this platform.
const DefaultFlags = 0

// System reports ErrUnsupported for every Open.
type System struct {
	Flags int
}

// NewSystem returns an Opener that cannot open anything.
func NewSystem() *System {
	return &System{}
}

// Open implements Opener.
func (s *System) Open(path string) (Handle, error) {
	return nil, fmt.Errorf("dlopen %s: %w", path, ErrUnsupported)
}
