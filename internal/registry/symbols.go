package registry

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSymbolCacheSize is the number of resolved symbols kept by
// SymbolResolver.
const DefaultSymbolCacheSize = 1024

// SymbolResolver memoizes successful Registry.ResolveSymbol lookups.
//
// Libraries are only ever appended, so the first library exporting a
// symbol stays the first one and a cached hit never goes stale. Misses are
// not cached: a later load may provide the symbol.
type SymbolResolver struct {
	reg   *Registry
	cache *lru.Cache[string, uintptr]
}

// NewSymbolResolver wraps reg with a cache of size entries.
func NewSymbolResolver(reg *Registry, size int) *SymbolResolver {
	if size <= 0 {
		size = DefaultSymbolCacheSize
	}
	cache, _ := lru.New[string, uintptr](size)
	return &SymbolResolver{reg: reg, cache: cache}
}

// Resolve returns the address of name, see Registry.ResolveSymbol.
func (s *SymbolResolver) Resolve(name string) (uintptr, bool) {
	if addr, ok := s.cache.Get(name); ok {
		return addr, true
	}

	addr, ok := s.reg.ResolveSymbol(name)
	if !ok {
		return 0, false
	}
	s.cache.Add(name, addr)
	return addr, true
}

// Cached returns the number of cached symbols.
func (s *SymbolResolver) Cached() int {
	return s.cache.Len()
}
