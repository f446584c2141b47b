package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Aman-CERP/nativebridge/internal/abi"
	"github.com/Aman-CERP/nativebridge/internal/dynlib"
	bridgeerrors "github.com/Aman-CERP/nativebridge/internal/errors"
	"github.com/Aman-CERP/nativebridge/internal/libpath"
	"github.com/Aman-CERP/nativebridge/internal/permission"
)

// NamespaceLoader opens a library relative to the application module that
// requested it.
type NamespaceLoader interface {
	Load(originFile, name string) (dynlib.Handle, error)
}

// NamespaceLoaderFunc adapts a function to NamespaceLoader.
type NamespaceLoaderFunc func(originFile, name string) (dynlib.Handle, error)

// Load calls f.
func (f NamespaceLoaderFunc) Load(originFile, name string) (dynlib.Handle, error) {
	return f(originFile, name)
}

// Options configures New.
type Options struct {
	// Resolver and Negotiator are required.
	Resolver   *libpath.Resolver
	Negotiator *abi.Negotiator
	// Gate defaults to permission.AllowAll.
	Gate permission.Gate
	// Namespace is the fallback for trusted loads; nil disables it.
	Namespace NamespaceLoader
	// Paths is the initial search path list.
	Paths  []string
	Logger *slog.Logger
}

// Registry is the set of libraries loaded into one VM.
type Registry struct {
	mu    sync.RWMutex
	libs  []*Library
	index map[string]*Library
	paths []string

	resolver   *libpath.Resolver
	negotiator *abi.Negotiator
	gate       permission.Gate
	namespace  NamespaceLoader
	flights    singleflight.Group
	logger     *slog.Logger
}

// New creates an empty Registry.
func New(opts Options) *Registry {
	if opts.Resolver == nil || opts.Negotiator == nil {
		panic("registry: Resolver and Negotiator are required")
	}
	if opts.Gate == nil {
		opts.Gate = permission.AllowAll{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Registry{
		index:      make(map[string]*Library),
		paths:      append([]string(nil), opts.Paths...),
		resolver:   opts.Resolver,
		negotiator: opts.Negotiator,
		gate:       opts.Gate,
		namespace:  opts.Namespace,
		logger:     opts.Logger,
	}
}

// Load makes the library called name available, loading and negotiating it
// if it is not registered yet.
//
// verifyPermission selects the application path: the permission gate runs
// first and the namespace fallback is disabled. originFile is the file name
// handed to the allow-list.
//
// A library whose negotiation failed stays registered and later loads of
// the same name succeed without renegotiating.
func (r *Registry) Load(env *abi.Env, name string, verifyPermission bool, originFile string) error {
	if env == nil {
		panic("registry: Load called with nil Env")
	}

	if verifyPermission {
		if d := r.gate.Check(env.Stack, originFile); !d.Allowed {
			return bridgeerrors.New(bridgeerrors.ErrCodePermissionDenied,
				fmt.Sprintf("loading %s (%s) is not permitted", name, originFile), nil).
				WithDetail("library", name).
				WithDetail("caller", d.CallerClass)
		}
	}

	if r.Has(name) {
		return nil
	}

	// Trusted and verified loads differ in their fallback, so they do not
	// share a flight.
	key := name
	if !verifyPermission {
		key = "trusted\x00" + name
	}
	_, err, _ := r.flights.Do(key, func() (any, error) {
		return nil, r.load(env, name, verifyPermission)
	})
	return err
}

func (r *Registry) load(env *abi.Env, name string, verifyPermission bool) error {
	// A flight for this name may have completed between Has and Do.
	if r.Has(name) {
		return nil
	}

	res, err := r.resolver.Resolve(r.LibraryPaths(), name)
	if err != nil {
		if verifyPermission {
			return bridgeerrors.LoadError(err.Error(), err).WithDetail("library", name)
		}
		res, err = r.loadFromNamespace(env, name, err)
		if err != nil {
			return bridgeerrors.LoadError(err.Error(), err).WithDetail("library", name)
		}
	}

	lib := &Library{name: name, path: res.Path, handle: res.Handle}
	if !r.insert(lib) {
		r.logger.Debug("library registered concurrently, dropping duplicate handle",
			slog.String("library", name),
			slog.String("path", res.Path))
		_ = res.Handle.Close()
		return nil
	}

	r.logger.Info("native library loaded",
		slog.String("library", name),
		slog.String("path", res.Path))

	return r.negotiator.Negotiate(lib, env).Err()
}

// loadFromNamespace retries through the application namespace of the
// nearest non-boot frame. prev is returned when no fallback is possible.
func (r *Registry) loadFromNamespace(env *abi.Env, name string, prev error) (libpath.Result, error) {
	if r.namespace == nil {
		return libpath.Result{}, prev
	}
	caller, ok := permission.CallerFrame(env.Stack)
	if !ok {
		return libpath.Result{}, prev
	}

	h, err := r.namespace.Load(caller.File, name)
	if err != nil {
		return libpath.Result{}, fmt.Errorf("load %s from namespace of %s: %w", name, caller.File, err)
	}
	r.logger.Debug("library opened from application namespace",
		slog.String("library", name),
		slog.String("origin", caller.File))
	return libpath.Result{Path: name, Handle: h}, nil
}

// insert adds lib unless its name is taken. It reports whether lib was added.
func (r *Registry) insert(lib *Library) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[lib.name]; ok {
		return false
	}
	r.index[lib.name] = lib
	r.libs = append(r.libs, lib)
	return true
}

// Has reports whether a library called name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[name]
	return ok
}

// Get returns the registered library called name.
func (r *Registry) Get(name string) (*Library, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lib, ok := r.index[name]
	return lib, ok
}

// ResolveSymbol returns the address of name from the first registered
// library, in registration order, that exports it. Symbols outside the
// registry are never consulted.
func (r *Registry) ResolveSymbol(name string) (uintptr, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, lib := range r.libs {
		if addr, ok := lib.FindSymbol(name); ok && addr != 0 {
			return addr, true
		}
	}
	return 0, false
}

// Libraries returns the registered names in registration order.
func (r *Registry) Libraries() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.libs))
	for i, lib := range r.libs {
		names[i] = lib.name
	}
	return names
}

// Len returns the number of registered libraries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.libs)
}

// LibraryPaths returns a snapshot of the search paths.
func (r *Registry) LibraryPaths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.paths...)
}

// SetLibraryPaths replaces the search paths.
func (r *Registry) SetLibraryPaths(paths []string) {
	cp := append([]string(nil), paths...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = cp
}

// AddLibraryPath appends one search path.
func (r *Registry) AddLibraryPath(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}
