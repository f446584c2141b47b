// Package bridge is the entry point for embedding the native library
// bridge in a VM.
//
// A Bridge owns one library registry and everything needed to load,
// negotiate and bind native code for it:
//
//	b, err := bridge.New(cfg)
//	if err != nil {
//		return err
//	}
//	if err := b.Load(env, "libentry.so", true, "libentry.so"); err != nil {
//		return err
//	}
//	addr, ok := b.ResolveSymbol("ETS_app_Main_run")
package bridge

import (
	"context"
	"log/slog"

	"github.com/Aman-CERP/nativebridge/internal/abi"
	"github.com/Aman-CERP/nativebridge/internal/config"
	"github.com/Aman-CERP/nativebridge/internal/dynlib"
	"github.com/Aman-CERP/nativebridge/internal/libpath"
	"github.com/Aman-CERP/nativebridge/internal/mangle"
	"github.com/Aman-CERP/nativebridge/internal/natives"
	"github.com/Aman-CERP/nativebridge/internal/permission"
	"github.com/Aman-CERP/nativebridge/internal/registry"
)

// Bridge is the native library bridge of one VM. It is safe for
// concurrent use.
type Bridge struct {
	registry *registry.Registry
	symbols  *registry.SymbolResolver
	binder   *natives.Binder
	mangler  mangle.Mangler
	gate     permission.Gate
	logger   *slog.Logger
}

// New wires a Bridge from cfg. A nil cfg uses config.NewConfig.
func New(cfg *config.Config, opts ...Option) (*Bridge, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.opener == nil {
		o.opener = dynlib.NewSystem()
	}
	if o.invoker == nil {
		o.invoker = abi.NativeInvoker{}
	}

	gate := permission.New(permission.Options{
		Enabled:   cfg.Permission.Enabled,
		AllowList: o.allowList,
		Logger:    o.logger,
	})

	reg := registry.New(registry.Options{
		Resolver:   libpath.New(o.opener, o.logger),
		Negotiator: abi.NewNegotiator(o.invoker, abi.WithLogger(o.logger)),
		Gate:       gate,
		Namespace:  o.namespace,
		Paths:      cfg.LibraryPaths,
		Logger:     o.logger,
	})
	symbols := registry.NewSymbolResolver(reg, cfg.Symbols.CacheSize)
	mangler := mangle.New(cfg.Mangle.Prefix)

	o.logger.Debug("native bridge created",
		slog.Any("library_paths", cfg.LibraryPaths),
		slog.Bool("permission_enabled", cfg.Permission.Enabled),
		slog.String("mangle_prefix", mangler.Prefix()))

	return &Bridge{
		registry: reg,
		symbols:  symbols,
		binder:   natives.NewBinder(mangler, symbols, o.logger),
		mangler:  mangler,
		gate:     gate,
		logger:   o.logger,
	}, nil
}

// Load loads the library called name; see registry.Registry.Load.
func (b *Bridge) Load(env *abi.Env, name string, verifyPermission bool, originFile string) error {
	return b.registry.Load(env, name, verifyPermission, originFile)
}

// ResolveSymbol finds name in the loaded libraries, in load order.
func (b *Bridge) ResolveSymbol(name string) (uintptr, bool) {
	return b.symbols.Resolve(name)
}

// Libraries returns the loaded library names in load order.
func (b *Bridge) Libraries() []string {
	return b.registry.Libraries()
}

// LibraryPaths returns a copy of the search paths.
func (b *Bridge) LibraryPaths() []string {
	return b.registry.LibraryPaths()
}

// SetLibraryPaths replaces the search paths.
func (b *Bridge) SetLibraryPaths(paths []string) {
	b.registry.SetLibraryPaths(paths)
}

// AddLibraryPath appends a search path.
func (b *Bridge) AddLibraryPath(path string) {
	b.registry.AddLibraryPath(path)
}

// SetAllowList replaces the host allow-list. It reports false when the
// permission check is disabled by configuration.
func (b *Bridge) SetAllowList(allow permission.AllowList) bool {
	c, ok := b.gate.(*permission.Checker)
	if !ok {
		return false
	}
	c.SetAllowList(allow)
	return true
}

// RegisterNatives records explicit native implementations for className.
func (b *Bridge) RegisterNatives(className string, methods []natives.Method) error {
	return b.binder.Register(className, methods)
}

// UnregisterNatives drops the explicit registrations of className.
func (b *Bridge) UnregisterNatives(className string) {
	b.binder.Unregister(className)
}

// BindNative finds the implementation of a declared-native method.
func (b *Bridge) BindNative(className, methodName, signature string) (natives.Binding, error) {
	return b.binder.Bind(className, methodName, signature)
}

// Mangler returns the symbol name mangler in use.
func (b *Bridge) Mangler() mangle.Mangler {
	return b.mangler
}

// WatchConfig applies library_paths from path whenever the file changes.
// Other settings need a new Bridge. Invalid files are logged and ignored.
func (b *Bridge) WatchConfig(ctx context.Context, path string) error {
	return config.Watch(ctx, path, func(cfg *config.Config, err error) {
		if err != nil {
			b.logger.Warn("config reload failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return
		}
		b.registry.SetLibraryPaths(cfg.LibraryPaths)
		b.logger.Info("library paths reloaded",
			slog.String("path", path),
			slog.Any("library_paths", cfg.LibraryPaths))
	})
}
