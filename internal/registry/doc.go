// Package registry owns the set of native libraries loaded into one VM and
// the search paths used to find them.
//
// # Thread Safety
//
// Registry is safe for concurrent use. A single RWMutex covers the library
// set and the path list. It is never held while the OS loader or a library
// constructor runs.
//
// # Load Order
//
//  1. Permission gate (only when verification is requested)
//  2. Already registered: done, no renegotiation
//  3. Search directories, then the bare name (libpath.Resolver)
//  4. Trusted callers only: the application namespace loader
//  5. Insert; a racing load that inserted first wins
//  6. ABI negotiation for the inserted library
package registry
