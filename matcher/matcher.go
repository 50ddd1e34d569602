// Package matcher implements the tagged-variant grammar-node model: And,
// Or, Any, Literal, Regexp, Lookahead, Repeat, Transform, Delayed, Token,
// Indent, Block, NfaRegexp, DfaRegexp, LMemo and RMemo, plus the postorder
// Walker and Clone visitor every rewriter (package rewrite) builds on.
//
// Evaluation model: rather than the source's generator send/throw
// coroutines, every Matcher.Match is continuation-passing (spec.md §9's
// explicitly sanctioned alternative: "direct tail-recursive CPS is
// acceptable if stack-safe"). A Matcher enumerates every alternative
// itself, calling the supplied Cont once per successful parse; Cont's
// stop return value lets a caller interested in only the first result
// (Trampoline.First) short-circuit the whole search without collecting
// anything it doesn't need, while Trampoline.All drives every alternative
// to exhaustion. This keeps the full backtracking semantics of the
// original design without needing goroutine-based generators for every
// grammar node.
package matcher

import "github.com/coregx/lepl/stream"

// Result is an ordered sequence of parsed values accumulated along one
// successful path through the grammar graph — the "list of values" the
// source's match results produce. And concatenates its children's
// Results; Transform replaces one with a single synthesized value.
type Result []interface{}

// Cont is invoked once per successful match a Matcher produces, with the
// Result accumulated so far and the Stream positioned just past it. A
// Cont returns stop=true to end the search immediately (propagated back
// through every enclosing Match call), or stop=false to request the next
// alternative, if any remain.
type Cont func(Result, stream.Stream) (stop bool, err error)

// Driver is the minimal hook surface a Matcher needs from its evaluation
// context: monitor push/pop notifications (the Trampoline's job) and
// access to the per-parse offside-rule block stack (Indent/Block's job).
// Defined here, not in package trampoline, so that matcher has no import
// on trampoline — trampoline depends on matcher, never the reverse,
// matching spec.md §2's dependency order (Matcher Graph before
// Trampoline).
type Driver interface {
	// Push/Pop bracket one Matcher's evaluation, in construction order,
	// for monitors such as trace logging or live-recursion bookkeeping.
	Push(label string)
	Pop(label string)
	// Blocks returns the per-parse offside-rule block stack used by the
	// Indent and Block matchers.
	Blocks() *BlockState
}

// Matcher is one node of the grammar graph.
type Matcher interface {
	// Match drives this node's search against s, calling k once per
	// successful parse. It returns stop=true if some call to k requested
	// early termination, propagating that request to its own caller.
	Match(d Driver, s stream.Stream, k Cont) (stop bool, err error)

	// Kind names the variant, for rewriters dispatching by node type
	// (spec.md §4.3's "tagged-variant node model").
	Kind() string

	// Children returns this node's sub-matchers in construction order,
	// the substrate for Walker and Clone.
	Children() []Matcher

	// WithChildren returns a shallow copy of this node with its children
	// replaced, preserving every other constructor argument — the
	// "introspectable constructor arguments" design note (spec.md §9),
	// implemented as explicit per-variant methods rather than reflection.
	WithChildren(children []Matcher) Matcher
}

// probe drives m to find out only whether it matches at all, without
// collecting results or advancing past the first success — the primitive
// behind Lookahead.
func probe(d Driver, m Matcher, s stream.Stream) (bool, error) {
	found := false
	_, err := m.Match(d, s, func(Result, stream.Stream) (bool, error) {
		found = true
		return true, nil
	})
	return found, err
}
