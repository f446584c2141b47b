package registry

import (
	"sync/atomic"
	"testing"

	"github.com/Aman-CERP/nativebridge/internal/abi"
	"github.com/Aman-CERP/nativebridge/internal/dynlib"
	"github.com/Aman-CERP/nativebridge/internal/libpath"
	"github.com/Aman-CERP/nativebridge/internal/permission"
)

// countingInvoker accepts every constructor call and counts them.
type countingInvoker struct {
	onLoad      atomic.Int32
	ctor        atomic.Int32
	ctorVersion uint32
	ctorStatus  abi.Status
}

func (c *countingInvoker) CallOnLoad(_, _ uintptr) int32 {
	c.onLoad.Add(1)
	return abi.LegacyVersion
}

func (c *countingInvoker) CallConstructor(_, _ uintptr, version *uint32) abi.Status {
	c.ctor.Add(1)
	*version = c.ctorVersion
	return c.ctorStatus
}

func (c *countingInvoker) calls() int {
	return int(c.onLoad.Load() + c.ctor.Load())
}

func newInvoker() *countingInvoker {
	return &countingInvoker{ctorVersion: abi.MinModernVersion, ctorStatus: abi.StatusOK}
}

func appEnv() *abi.Env {
	return &abi.Env{
		Native: 0x1,
		VM:     0x2,
		Stack: permission.StackWalkerFunc(func() ([]permission.Frame, error) {
			return []permission.Frame{
				{ClassName: "std/core/Runtime", File: "etsstdlib.abc", Boot: true},
				{ClassName: "com/example/Main", File: "/data/app/entry.abc"},
			}, nil
		}),
	}
}

func newTestRegistry(t *testing.T, opener dynlib.Opener, inv abi.Invoker, mutate func(*Options)) *Registry {
	t.Helper()
	opts := Options{
		Resolver:   libpath.New(opener, nil),
		Negotiator: abi.NewNegotiator(inv),
	}
	if mutate != nil {
		mutate(&opts)
	}
	return New(opts)
}
