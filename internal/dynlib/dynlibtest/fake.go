// Package dynlibtest provides an in-memory dynamic loader for tests.
package dynlibtest

import (
	"fmt"
	"sync"

	"github.com/Aman-CERP/nativebridge/internal/dynlib"
)

// Opener is a fake dynlib.Opener. Paths registered with Add open
// successfully; every other path fails. All attempts are recorded.
type Opener struct {
	mu       sync.Mutex
	libs     map[string]map[string]uintptr
	attempts []string
	opened   []*Handle
}

// NewOpener returns an empty fake loader.
func NewOpener() *Opener {
	return &Opener{libs: make(map[string]map[string]uintptr)}
}

// Add makes path loadable, exporting the given symbols.
func (o *Opener) Add(path string, symbols map[string]uintptr) *Opener {
	o.mu.Lock()
	defer o.mu.Unlock()
	if symbols == nil {
		symbols = map[string]uintptr{}
	}
	o.libs[path] = symbols
	return o
}

// Open implements dynlib.Opener.
func (o *Opener) Open(path string) (dynlib.Handle, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.attempts = append(o.attempts, path)
	syms, ok := o.libs[path]
	if !ok {
		return nil, fmt.Errorf("dlopen %s: cannot open shared object file: No such file or directory", path)
	}
	h := &Handle{Path: path, symbols: syms}
	o.opened = append(o.opened, h)
	return h, nil
}

// Attempts returns every path passed to Open, in order.
func (o *Opener) Attempts() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.attempts...)
}

// Opened returns every handle handed out, in order.
func (o *Opener) Opened() []*Handle {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*Handle(nil), o.opened...)
}

// Handle is a fake opened library. It records symbol lookups.
type Handle struct {
	Path string

	mu      sync.Mutex
	symbols map[string]uintptr
	lookups []string
	closed  bool
}

var _ dynlib.Handle = (*Handle)(nil)

// Symbol implements dynlib.Handle.
func (h *Handle) Symbol(name string) (uintptr, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lookups = append(h.lookups, name)
	addr, ok := h.symbols[name]
	return addr, ok && addr != 0
}

// Close implements dynlib.Handle.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

// Lookups returns every symbol name queried on this handle.
func (h *Handle) Lookups() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.lookups...)
}

// Closed reports whether Close was called.
func (h *Handle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
