package matcher

import "github.com/coregx/lepl/stream"

// repeatNode matches its body between lo and hi times (hi<0 means
// unbounded), optionally requiring a separator matcher between
// repetitions and optionally reducing the collected Result with a fold
// function (spec.md §6: `Repeat(m, lo, hi, separator?, reduce?, greedy?)`).
type repeatNode struct {
	body      Matcher
	lo, hi    int
	separator Matcher
	reduce    func(Result) (interface{}, error)
	greedy    bool
}

// RepeatOption configures an optional Repeat argument.
type RepeatOption func(*repeatNode)

// Separator requires sep to match between consecutive repetitions; its
// own Result contributes nothing to the repeated matcher's Result.
func Separator(sep Matcher) RepeatOption { return func(n *repeatNode) { n.separator = sep } }

// Reduce folds every repetition's accumulated Result into a single value
// before handing control back to the enclosing matcher.
func Reduce(fn func(Result) (interface{}, error)) RepeatOption {
	return func(n *repeatNode) { n.reduce = fn }
}

// Repeat builds a bounded-or-unbounded repetition matcher. hi<0 means no
// upper bound. greedy=true yields longest-first (try one more repetition
// before accepting fewer); greedy=false yields shortest-first.
func Repeat(body Matcher, lo, hi int, greedy bool, opts ...RepeatOption) Matcher {
	n := &repeatNode{body: body, lo: lo, hi: hi, greedy: greedy}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *repeatNode) Kind() string { return "Repeat" }
func (n *repeatNode) Children() []Matcher {
	if n.separator != nil {
		return []Matcher{n.body, n.separator}
	}
	return []Matcher{n.body}
}
func (n *repeatNode) WithChildren(c []Matcher) Matcher {
	cp := *n
	cp.body = c[0]
	if len(c) > 1 {
		cp.separator = c[1]
	}
	return &cp
}

// Bounds returns the repeat's lo/hi/greedy parameters (hi<0 means
// unbounded), letting the CompileRegexp rewriter (package rewrite)
// reconstruct an equivalent `{lo,hi}` regex quantifier when there is no
// separator to account for.
func (n *repeatNode) Bounds() (lo, hi int, greedy bool) { return n.lo, n.hi, n.greedy }

// HasSeparator reports whether this Repeat requires a separator matcher
// between repetitions — a separator has no plain-regex equivalent, so
// CompileRegexp must leave such a node alone.
func (n *repeatNode) HasSeparator() bool { return n.separator != nil }

func (n *repeatNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("Repeat")
	defer d.Pop("Repeat")
	return n.step(d, 0, nil, s, k)
}

func (n *repeatNode) step(d Driver, count int, acc Result, s stream.Stream, k Cont) (bool, error) {
	tryStop := func() (bool, error) {
		if count < n.lo {
			return false, nil
		}
		result := acc
		if n.reduce != nil {
			v, err := n.reduce(acc)
			if err != nil {
				return false, err
			}
			result = Result{v}
		}
		return k(result, s)
	}
	tryMore := func() (bool, error) {
		if n.hi >= 0 && count >= n.hi {
			return false, nil
		}
		enter := s
		if n.separator != nil && count > 0 {
			// Probe the separator; only proceed into body if it matches,
			// consuming it without contributing to acc.
			sepStop := false
			var sepErr error
			var afterSep stream.Stream
			sepMatched := false
			_, sepErr = n.separator.Match(d, s, func(r Result, next stream.Stream) (bool, error) {
				sepMatched = true
				afterSep = next
				return true, nil
			})
			if sepErr != nil {
				return false, sepErr
			}
			if !sepMatched {
				return false, nil
			}
			enter = afterSep
			_ = sepStop
		}
		return n.body.Match(d, enter, func(r Result, next stream.Stream) (bool, error) {
			combined := make(Result, 0, len(acc)+len(r))
			combined = append(combined, acc...)
			combined = append(combined, r...)
			return n.step(d, count+1, combined, next, k)
		})
	}
	if n.greedy {
		stop, err := tryMore()
		if err != nil || stop {
			return stop, err
		}
		return tryStop()
	}
	stop, err := tryStop()
	if err != nil || stop {
		return stop, err
	}
	return tryMore()
}

// transformNode runs body, then replaces its Result with fn(result) on
// success (spec.md §6: `Transform(m, fn)`).
type transformNode struct {
	body Matcher
	fn   func(Result) (interface{}, error)
}

// Transform builds a matcher that post-processes body's Result.
func Transform(body Matcher, fn func(Result) (interface{}, error)) Matcher {
	return &transformNode{body: body, fn: fn}
}

func (n *transformNode) Kind() string        { return "Transform" }
func (n *transformNode) Children() []Matcher { return []Matcher{n.body} }
func (n *transformNode) WithChildren(c []Matcher) Matcher {
	return &transformNode{body: c[0], fn: n.fn}
}

// Fn returns the post-processing function, letting rewriters fuse nested
// Transform nodes (package rewrite's ComposeTransforms) without reaching
// into unexported state.
func (n *transformNode) Fn() func(Result) (interface{}, error) { return n.fn }

// Transformer is implemented by any matcher exposing a Result
// post-processing function — currently only Transform nodes.
type Transformer interface {
	Fn() func(Result) (interface{}, error)
}

func (n *transformNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("Transform")
	defer d.Pop("Transform")
	return n.body.Match(d, s, func(r Result, next stream.Stream) (bool, error) {
		v, err := n.fn(r)
		if err != nil {
			return false, err
		}
		return k(Result{v}, next)
	})
}

// delayedNode is the knot-tying placeholder for cyclic (left-recursive)
// grammars: constructed empty, then patched exactly once via Set before
// the graph is used (spec.md §9's "arena of nodes... with a resolution
// pass" design, realized here as a single mutable indirection cell
// written once at knot-tying time rather than a full integer-ID arena —
// simpler for a tree built directly in Go source rather than parsed from
// a serialized grammar description).
type delayedNode struct {
	target Matcher
}

// Delayed creates an unresolved placeholder. Call Set before the grammar
// is used.
func Delayed() *DelayedRef { return &DelayedRef{node: &delayedNode{}} }

// DelayedRef is the grammar-author handle to a Delayed placeholder,
// letting Set be called without Matcher exposing a mutation method.
type DelayedRef struct {
	node *delayedNode
}

// Matcher returns the placeholder as a graph node.
func (r *DelayedRef) Matcher() Matcher { return r.node }

// Set resolves the placeholder to its real target. Calling it twice
// replaces the previous target (last write wins), matching a grammar
// author re-binding a forward reference; ordinary use calls it exactly
// once after the recursive grammar is fully built.
func (r *DelayedRef) Set(target Matcher) { r.node.target = target }

func (n *delayedNode) Kind() string        { return "Delayed" }
func (n *delayedNode) Children() []Matcher {
	if n.target == nil {
		return nil
	}
	return []Matcher{n.target}
}
func (n *delayedNode) WithChildren(c []Matcher) Matcher {
	cp := &delayedNode{}
	if len(c) > 0 {
		cp.target = c[0]
	}
	return cp
}

func (n *delayedNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	if n.target == nil {
		return false, &ConfigurationError{Reason: "Delayed matcher used before its target was set"}
	}
	return n.target.Match(d, s, k)
}

// ConfigurationError reports contradictory or incomplete builder state.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return "matcher: configuration error: " + e.Reason }
