//go:build darwin || freebsd || linux

package abi

import "github.com/ebitengine/purego"

// NativeInvoker calls entry points through purego.
type NativeInvoker struct{}

// CallOnLoad implements Invoker.
func (NativeInvoker) CallOnLoad(addr, env uintptr) int32 {
	var onLoad func(env uintptr) int32
	purego.RegisterFunc(&onLoad, addr)
	return onLoad(env)
}

// CallConstructor implements Invoker.
func (NativeInvoker) CallConstructor(addr, vm uintptr, version *uint32) Status {
	var ctor func(vm uintptr, result *uint32) int32
	purego.RegisterFunc(&ctor, addr)
	return Status(ctor(vm, version))
}
