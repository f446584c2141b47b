// Package abi negotiates the native interface version with a freshly
// loaded library.
//
// Two generations of constructor protocol coexist. A library is loaded by
// name with no manifest, so the only way to tell which one it implements is
// to probe for the entry point symbols:
//
//  1. EtsNapiOnLoad(env) int32 returns the legacy interface version.
//  2. ANI_Constructor(vm, *uint32) status reports the modern version
//     through an out parameter.
//  3. Neither: the library only carries ad-hoc natives. This is valid.
//
// The legacy symbol wins when both are exported; the modern one is then
// never looked up.
package abi
