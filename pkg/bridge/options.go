package bridge

import (
	"log/slog"

	"github.com/Aman-CERP/nativebridge/internal/abi"
	"github.com/Aman-CERP/nativebridge/internal/dynlib"
	"github.com/Aman-CERP/nativebridge/internal/permission"
	"github.com/Aman-CERP/nativebridge/internal/registry"
)

// Option configures a Bridge.
type Option func(*options)

type options struct {
	opener    dynlib.Opener
	invoker   abi.Invoker
	namespace registry.NamespaceLoader
	allowList permission.AllowList
	logger    *slog.Logger
}

// WithOpener replaces the platform dynamic loader.
func WithOpener(o dynlib.Opener) Option {
	return func(opts *options) {
		opts.opener = o
	}
}

// WithInvoker replaces the native entry point caller.
func WithInvoker(inv abi.Invoker) Option {
	return func(opts *options) {
		opts.invoker = inv
	}
}

// WithNamespaceLoader enables the application namespace fallback for
// trusted loads.
func WithNamespaceLoader(ns registry.NamespaceLoader) Option {
	return func(opts *options) {
		opts.namespace = ns
	}
}

// WithAllowList sets the host allow-list. It only takes effect when the
// permission check is enabled in the configuration.
func WithAllowList(allow permission.AllowList) Option {
	return func(opts *options) {
		opts.allowList = allow
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = l
	}
}
