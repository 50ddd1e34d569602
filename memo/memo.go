// Package memo implements the two memoization caches used to wrap matcher
// graph nodes: a left-recursion-safe cache (LMemo) and a straight
// result-replay cache (RMemo), both keyed on stream position (spec.md
// §4.6). The cache entries are plain data — []interface{} result tuples
// paired with the stream.Stream reached after them — rather than a
// reference to package matcher, so that matcher can depend on memo
// (matcher.LMemo/RMemo wrap a child Matcher with one of these caches)
// without a circular import.
package memo

import "github.com/coregx/lepl/stream"

// Pair is one cached (result, next-stream) outcome.
type Pair struct {
	Result []interface{}
	Next   stream.Stream
}

// RCache replays a matcher's full result sequence for a given stream
// position after the first drive, never re-invoking the wrapped matcher
// again for that position (spec.md §4.6 RMemo: "caches the full lazy
// sequence of results per key; subsequent calls replay the sequence
// without re-driving the matcher").
type RCache struct {
	entries map[string][]Pair
	done    map[string]bool
}

// NewRCache creates an empty cache.
func NewRCache() *RCache {
	return &RCache{entries: map[string][]Pair{}, done: map[string]bool{}}
}

// Lookup reports whether key has already been fully driven, returning its
// cached pairs if so.
func (c *RCache) Lookup(key string) ([]Pair, bool) {
	if !c.done[key] {
		return nil, false
	}
	return c.entries[key], true
}

// Store records the complete result sequence for key and marks it done.
func (c *RCache) Store(key string, pairs []Pair) {
	c.entries[key] = pairs
	c.done[key] = true
}

// LEntry is one left-recursion-safe cache slot: the results accumulated
// so far for a given (matcher-position) key, and whether that key's
// evaluation is currently in progress further down the call stack (the
// "curtailed" state of spec.md §4.6 — a reentrant call at the same key
// while the first call is still driving its wrapped matcher replays only
// what has been found so far instead of recursing again, which is what
// makes left recursion terminate).
type LEntry struct {
	InProgress bool
	Results    []Pair
}

// LCache is the left-recursion-safe memo table for one LMemo node. One
// LCache belongs to exactly one grammar position (one lmemoNode
// instance), so its keys only need to distinguish stream position, not
// matcher identity too.
type LCache struct {
	entries map[string]*LEntry
}

// NewLCache creates an empty cache.
func NewLCache() *LCache {
	return &LCache{entries: map[string]*LEntry{}}
}

// Entry returns the entry for key, creating an empty one if absent.
func (c *LCache) Entry(key string) *LEntry {
	e, ok := c.entries[key]
	if !ok {
		e = &LEntry{}
		c.entries[key] = e
	}
	return e
}

// Reset discards every cached entry. Nothing in this module calls it:
// cache keys include the stream's source, so parses over separately
// created streams do not share entries.
func (c *LCache) Reset() { c.entries = map[string]*LEntry{} }

// Reset discards every cached entry.
func (c *RCache) Reset() {
	c.entries = map[string][]Pair{}
	c.done = map[string]bool{}
}
