// Package regexcache caches compiled regular expressions process-wide.
// Scrubbers are built from user-supplied patterns and run on every
// verification, so recompiling the same pattern per call would dominate the
// cost of small approvals.
package regexcache

import (
	"regexp"
	"sync"
)

var cache sync.Map // pattern string -> *regexp.Regexp

// Get returns the compiled form of pattern, compiling and caching it on first
// use. Invalid patterns return the compile error and are not cached.
func Get(pattern string) (*regexp.Regexp, error) {
	if hit, ok := cache.Load(pattern); ok {
		return hit.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	actual, _ := cache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// MustGet is Get for patterns known to be valid; it panics otherwise.
func MustGet(pattern string) *regexp.Regexp {
	re, err := Get(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Clear empties the cache. Intended for tests.
func Clear() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}
