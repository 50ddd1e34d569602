package matcher

import (
	"github.com/coregx/lepl/memo"
	"github.com/coregx/lepl/stream"
)

// rmemoNode wraps a child matcher with straight result-sequence caching:
// the first drive at a given position records every result it produces;
// later drives at the same position replay the recording instead of
// re-running the child (spec.md §4.6 RMemo).
type rmemoNode struct {
	child Matcher
	cache *memo.RCache
}

// RMemo builds a right-recursion / repeat-call caching wrapper.
func RMemo(child Matcher) Matcher { return &rmemoNode{child: child, cache: memo.NewRCache()} }

func (n *rmemoNode) Kind() string        { return "RMemo" }
func (n *rmemoNode) Children() []Matcher { return []Matcher{n.child} }
func (n *rmemoNode) WithChildren(c []Matcher) Matcher {
	return &rmemoNode{child: c[0], cache: memo.NewRCache()}
}

func (n *rmemoNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("RMemo")
	defer d.Pop("RMemo")
	key := s.Key()
	if pairs, ok := n.cache.Lookup(key); ok {
		for _, p := range pairs {
			stop, err := k(Result(p.Result), p.Next)
			if err != nil || stop {
				return stop, err
			}
		}
		return false, nil
	}
	var recorded []memo.Pair
	stop, err := n.child.Match(d, s, func(r Result, next stream.Stream) (bool, error) {
		recorded = append(recorded, memo.Pair{Result: []interface{}(r), Next: next})
		return k(r, next)
	})
	n.cache.Store(key, recorded)
	return stop, err
}

// lmemoNode wraps a child matcher with left-recursion-safe memoization:
// a reentrant call at the same stream position (which only happens when
// the grammar recurses left into itself without consuming input first)
// replays the results accumulated by the outer, still-running call
// instead of recursing again, and the outer call restarts its child
// repeatedly against the growing result set until a pass adds nothing
// new (spec.md §4.6 LMemo).
type lmemoNode struct {
	child Matcher
	cache *memo.LCache
}

// LMemo builds a left-recursion-safe memoization wrapper. Wrap the
// recursive alternative of a left-recursive rule with this (directly, or
// via the AutoMemoize rewriter) to guarantee termination.
func LMemo(child Matcher) Matcher { return &lmemoNode{child: child, cache: memo.NewLCache()} }

func (n *lmemoNode) Kind() string        { return "LMemo" }
func (n *lmemoNode) Children() []Matcher { return []Matcher{n.child} }
func (n *lmemoNode) WithChildren(c []Matcher) Matcher {
	return &lmemoNode{child: c[0], cache: memo.NewLCache()}
}

func (n *lmemoNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("LMemo")
	defer d.Pop("LMemo")
	key := s.Key()
	entry := n.cache.Entry(key)

	if entry.InProgress {
		// Curtailment: replay whatever the outer call has found so far,
		// without recursing into the child again.
		for _, p := range entry.Results {
			stop, err := k(Result(p.Result), p.Next)
			if err != nil || stop {
				return stop, err
			}
		}
		return false, nil
	}

	entry.InProgress = true
	defer func() { entry.InProgress = false }()

	// A later, non-reentrant call at this position first replays what
	// earlier calls found; the passes below then yield only new results.
	for _, p := range entry.Results {
		stop, err := k(Result(p.Result), p.Next)
		if err != nil || stop {
			return stop, err
		}
	}

	for {
		before := len(entry.Results)
		stopRequested := false
		var callErr error
		_, err := n.child.Match(d, s, func(r Result, next stream.Stream) (bool, error) {
			pair := memo.Pair{Result: []interface{}(r), Next: next}
			if containsPair(entry.Results, pair) {
				return false, nil
			}
			entry.Results = append(entry.Results, pair)
			stop, err := k(r, next)
			if err != nil {
				callErr = err
				return true, err
			}
			if stop {
				stopRequested = true
				return true, nil
			}
			return false, nil
		})
		if err != nil {
			return false, err
		}
		if callErr != nil {
			return false, callErr
		}
		if stopRequested {
			return true, nil
		}
		if len(entry.Results) == before {
			// Fixpoint: no new result this pass.
			return false, nil
		}
	}
}

func containsPair(haystack []memo.Pair, p memo.Pair) bool {
	for _, h := range haystack {
		if h.Next.Key() == p.Next.Key() && resultEqual(h.Result, p.Result) {
			return true
		}
	}
	return false
}

func resultEqual(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
