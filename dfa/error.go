// Package dfa compiles a github.com/coregx/lepl/nfa.NFA into a deterministic
// automaton by eager subset construction, grounded on the state/cache
// texture of github.com/coregx/coregex's dfa/lazy package but built all at
// once rather than lazily: a grammar's combined-tokens regex is compiled
// once and reused across an entire parse, so there is no lazy-on-demand
// cache to maintain — the amortization lazy determinization buys a
// byte-stream regex engine doesn't apply here.
//
// Unlike dfa/lazy's byte-indexed transition table, a dfa.State's outgoing
// edges are labeled with alphabet.Interval ranges, determined via
// alphabet.TaggedFragments so that the outgoing ranges of each DFA state
// are genuinely disjoint and non-overlapping (spec.md §3 invariant).
package dfa

import "fmt"

// BuildError wraps a failure encountered while subset-constructing a DFA
// from an NFA. Build reports an exceeded state budget as *ErrTooManyStates
// directly, not wrapped in a BuildError.
type BuildError struct {
	Reason string
	Err    error
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dfa: build failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("dfa: build failed: %s", e.Reason)
}

func (e *BuildError) Unwrap() error { return e.Err }

// ErrTooManyStates is returned when subset construction would exceed the
// configured state budget, guarding against a pathological source NFA
// producing an exponential number of distinct subsets.
type ErrTooManyStates struct {
	Limit int
}

func (e *ErrTooManyStates) Error() string {
	return fmt.Sprintf("dfa: subset construction exceeded %d states", e.Limit)
}
