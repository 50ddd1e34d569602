// Package trampoline implements the cooperative evaluation driver that
// threads monitors through a matcher graph's evaluation and exposes the
// two grammar-author entry points: the first result only (parse) and
// every result (match).
//
// The source drives matcher coroutines with a literal stack of
// generators, using send/throw to step them. This engine instead relies
// on package matcher's continuation-passing Match contract (spec.md §9's
// sanctioned CPS alternative): there is no separate coroutine stack to
// manage here because the Go call stack already plays that role, one
// frame per active matcher. What Trampoline actually owns is the
// cross-cutting state a real coroutine-stack driver would thread through
// push/pop/send/throw hooks — monitor notifications and the offside-rule
// block stack — exposed to matcher nodes through the matcher.Driver
// interface.
package trampoline

import (
	"github.com/coregx/lepl/matcher"
	"github.com/coregx/lepl/stream"
)

// Monitor observes matcher evaluation. Every method corresponds to one
// of spec.md §4.5's hook points; a monitor that doesn't care about a
// given hook implements it as a no-op.
type Monitor interface {
	Push(label string)
	Pop(label string)
}

// Trampoline drives one parse: it implements matcher.Driver, fanning
// Push/Pop out to every configured Monitor, and owns the offside-rule
// BlockState for the parse.
type Trampoline struct {
	monitors []Monitor
	blocks   *matcher.BlockState
}

// New creates a Trampoline with the given monitors (evaluated in order,
// per spec.md §4.5) and, if non-nil, offside-rule state.
func New(blocks *matcher.BlockState, monitors ...Monitor) *Trampoline {
	return &Trampoline{monitors: monitors, blocks: blocks}
}

// Push notifies every monitor that label's evaluation has begun.
func (t *Trampoline) Push(label string) {
	for _, m := range t.monitors {
		m.Push(label)
	}
}

// Pop notifies every monitor that label's evaluation has ended.
func (t *Trampoline) Pop(label string) {
	for _, m := range t.monitors {
		m.Pop(label)
	}
}

// Blocks returns the shared offside-rule state, or nil if this parse has
// none configured.
func (t *Trampoline) Blocks() *matcher.BlockState { return t.blocks }

// Pair is one (result, next-stream) outcome of a parse.
type Pair struct {
	Result matcher.Result
	Next   stream.Stream
}

// First drives root against s and returns only its first successful
// result, matching spec.md §6's `parse(input)` entry point.
func (t *Trampoline) First(root matcher.Matcher, s stream.Stream) (Pair, bool, error) {
	var found Pair
	ok := false
	_, err := root.Match(t, s, func(r matcher.Result, next stream.Stream) (bool, error) {
		found = Pair{Result: r, Next: next}
		ok = true
		return true, nil
	})
	return found, ok, err
}

// All drives root against s to exhaustion and returns every result in
// the order the grammar produces them, matching spec.md §6's
// `match(input)` entry point. Unlike the source's lazy generator, this
// collects eagerly into a slice — a deliberate simplification the CPS
// evaluation model makes natural (Cont already visits every result; not
// returning early just means accumulating instead of discarding), traded
// for losing true incremental laziness on an unbounded result sequence.
func (t *Trampoline) All(root matcher.Matcher, s stream.Stream) ([]Pair, error) {
	var all []Pair
	_, err := root.Match(t, s, func(r matcher.Result, next stream.Stream) (bool, error) {
		all = append(all, Pair{Result: r, Next: next})
		return false, nil
	})
	return all, err
}
