package registry

import "github.com/Aman-CERP/nativebridge/internal/dynlib"

// Library is a loaded shared object. Its identity is the name it was
// requested under, not the path it was found at.
type Library struct {
	name   string
	path   string
	handle dynlib.Handle
}

// Name returns the requested library name.
func (l *Library) Name() string { return l.name }

// Path returns where the library was actually opened from.
func (l *Library) Path() string { return l.path }

// FindSymbol looks up an exported symbol in this library only.
func (l *Library) FindSymbol(name string) (uintptr, bool) {
	return l.handle.Symbol(name)
}
