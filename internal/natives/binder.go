// Package natives binds declared-native managed methods to native code.
//
// A method is bound either through an explicit registration made by a
// library's constructor, or by looking up its mangled name in the loaded
// libraries.
package natives

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	bridgeerrors "github.com/Aman-CERP/nativebridge/internal/errors"
	"github.com/Aman-CERP/nativebridge/internal/mangle"
)

// SymbolLookup finds an exported symbol among the loaded libraries.
type SymbolLookup interface {
	Resolve(name string) (uintptr, bool)
}

// Method is one entry of an explicit registration.
type Method struct {
	Name      string
	Signature string
	Fn        uintptr
}

// Binding is the native implementation chosen for a method.
type Binding struct {
	Class  string
	Method string
	Kind   Kind
	Addr   uintptr
	// Symbol is the mangled name the address was found under; empty for
	// explicit registrations.
	Symbol string
}

// Explicit reports whether the binding came from a registration.
func (b Binding) Explicit() bool { return b.Symbol == "" }

type methodKey struct {
	class  string
	method string
}

// Binder resolves native methods.
type Binder struct {
	mu       sync.RWMutex
	explicit map[methodKey]Binding

	mangler mangle.Mangler
	symbols SymbolLookup
	logger  *slog.Logger
}

// NewBinder creates a Binder that falls back to symbols for methods without
// an explicit registration.
func NewBinder(mangler mangle.Mangler, symbols SymbolLookup, logger *slog.Logger) *Binder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Binder{
		explicit: make(map[methodKey]Binding),
		mangler:  mangler,
		symbols:  symbols,
		logger:   logger,
	}
}

// Register records explicit implementations for methods of className.
// Every entry is checked before anything is recorded, so an invalid entry
// leaves the binder unchanged. The runtime's own RegisterNatives keeps the
// entries preceding a bad one; callers relying on that must register
// methods one at a time.
func (b *Binder) Register(className string, methods []Method) error {
	if len(methods) == 0 {
		return nil
	}

	bindings := make([]Binding, len(methods))
	for i, m := range methods {
		kind, _, err := ParseSignature(m.Signature)
		if err != nil {
			var be *bridgeerrors.BridgeError
			if errors.As(err, &be) {
				be.WithDetail("class", className).WithDetail("method", m.Name)
			}
			return err
		}
		if m.Fn == 0 {
			return bridgeerrors.Newf(bridgeerrors.ErrCodeNativeNoFunction,
				"%s.%s: no function address given", className, m.Name).
				WithDetail("class", className).
				WithDetail("method", m.Name)
		}
		bindings[i] = Binding{Class: className, Method: m.Name, Kind: kind, Addr: m.Fn}
	}

	b.mu.Lock()
	for _, bnd := range bindings {
		b.explicit[methodKey{className, bnd.Method}] = bnd
	}
	b.mu.Unlock()

	b.logger.Debug("natives registered",
		slog.String("class", className),
		slog.Int("count", len(bindings)))
	return nil
}

// Unregister drops every explicit registration of className.
func (b *Binder) Unregister(className string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for k := range b.explicit {
		if k.class == className {
			delete(b.explicit, k)
		}
	}
}

// Bind finds the implementation of className.methodName. Explicit
// registrations win; otherwise the short mangled name is tried, then the
// long name carrying signature.
func (b *Binder) Bind(className, methodName, signature string) (Binding, error) {
	kind, sig, err := ParseSignature(signature)
	if err != nil {
		return Binding{}, err
	}

	b.mu.RLock()
	bnd, ok := b.explicit[methodKey{className, methodName}]
	b.mu.RUnlock()
	if ok {
		return bnd, nil
	}

	short := b.mangler.MethodName(className, methodName)
	candidates := []string{short}
	if sig != "" {
		candidates = append(candidates, b.mangler.MethodNameWithSignature(short, sig))
	}

	for _, sym := range candidates {
		if addr, ok := b.symbols.Resolve(sym); ok {
			return Binding{Class: className, Method: methodName, Kind: kind, Addr: addr, Symbol: sym}, nil
		}
	}

	return Binding{}, bridgeerrors.New(bridgeerrors.ErrCodeNativeNotFound,
		fmt.Sprintf("no native implementation for %s.%s", className, methodName), nil).
		WithDetail("short_name", short).
		WithSuggestion("Load the library exporting " + short + " or register the method explicitly")
}
