//go:build !darwin && !freebsd && !linux

package abi

// NativeInvoker cannot call native code on this platform. Libraries never
// load here, so it is only reachable through misuse.
type NativeInvoker struct{}

// CallOnLoad implements Invoker.
func (NativeInvoker) CallOnLoad(uintptr, uintptr) int32 {
	return 0
}

// CallConstructor implements Invoker.
func (NativeInvoker) CallConstructor(uintptr, uintptr, *uint32) Status {
	return StatusError
}
