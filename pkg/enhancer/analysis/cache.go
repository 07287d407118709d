// File: cache.go
// Title: Parsed Stack Cache
// Description: Bounded cache of parsed stack frames keyed by error
//              identity, so the same error is parsed only once no matter
//              how many enhancers reference it.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation
// - 2026-10-16 v0.1.1: Check comparability on the error value

package analysis

import (
	"reflect"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/msto63/errenhanced/pkg/core/metrics"
)

// DefaultStackCacheSize bounds the process default cache
const DefaultStackCacheSize = 1024

// StackCache memoizes parsed stacks per error. The cache is safe for
// concurrent use and holds no lock while parsing, so a parser may itself
// consult the cache. Errors whose value is not comparable, including
// structs holding a slice or map behind an interface field, are parsed on
// every call.
type StackCache struct {
	frames   *lru.Cache[error, []StackFrame]
	parse    ParseFunc
	recorder *metrics.Recorder
}

// CacheOption configures a StackCache
type CacheOption func(*StackCache)

// WithCacheMetrics records hits and misses
func WithCacheMetrics(r *metrics.Recorder) CacheOption {
	return func(c *StackCache) {
		c.recorder = r
	}
}

// NewStackCache creates a cache holding at most size errors. A nil parse
// uses ParseGoStack.
func NewStackCache(size int, parse ParseFunc, opts ...CacheOption) (*StackCache, error) {
	frames, err := lru.New[error, []StackFrame](size)
	if err != nil {
		return nil, err
	}
	if parse == nil {
		parse = ParseGoStack
	}

	c := &StackCache{frames: frames, parse: parse}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var defaultCache = sync.OnceValue(func() *StackCache {
	c, err := NewStackCache(DefaultStackCacheSize, ParseGoStack)
	if err != nil {
		panic(err)
	}
	return c
})

// DefaultStackCache returns the process wide cache used when an Analysis is
// created without WithStackCache
func DefaultStackCache() *StackCache {
	return defaultCache()
}

// Frames returns the parsed stack of err. Errors without stack text yield
// an empty list.
func (c *StackCache) Frames(err error) []StackFrame {
	if err == nil {
		return []StackFrame{}
	}

	// Value.Comparable looks through interfaces; Type.Comparable does not
	// and would let the map hash panic.
	cacheable := reflect.ValueOf(err).Comparable()
	if cacheable {
		if frames, ok := c.frames.Get(err); ok {
			c.recorder.RecordStackCacheLookup(true)
			return slices.Clone(frames)
		}
		c.recorder.RecordStackCacheLookup(false)
	}

	frames := []StackFrame{}
	if text := StackText(err); text != "" {
		if parsed := c.parse(text); parsed != nil {
			frames = parsed
		}
	}

	if cacheable {
		c.frames.Add(err, frames)
	}
	return slices.Clone(frames)
}

// Len returns the number of cached errors
func (c *StackCache) Len() int {
	return c.frames.Len()
}

// Purge drops every cached entry
func (c *StackCache) Purge() {
	c.frames.Purge()
}
