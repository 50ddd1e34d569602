package matcher

import (
	"fmt"

	"github.com/coregx/lepl/dfa"
	"github.com/coregx/lepl/nfa"
	"github.com/coregx/lepl/stream"
)

// regexpNode compiles its source once (at construction) and reports only
// the longest match, matching spec.md §4.2's `match(stream)` operation —
// a grammar combinator never needs the lexer's full ambiguous-length list,
// only the single longest extent.
type regexpNode struct {
	source string
	n      *nfa.NFA
}

// Regexp builds a matcher from regex source, compiled via package nfa.
// Panics on malformed source, matching the grammar-author API's
// fail-fast-at-construction contract (a grammar is built once, before any
// input is seen; a bad pattern is a programming error, not a parse
// failure).
func Regexp(source string) Matcher {
	n, err := nfa.Compile(source, nfa.DefaultCompilerConfig())
	if err != nil {
		panic(&RegexError{Source: source, Err: err})
	}
	return &regexpNode{source: source, n: n}
}

func (r *regexpNode) Kind() string        { return "Regexp" }
func (r *regexpNode) Children() []Matcher { return nil }
func (r *regexpNode) WithChildren([]Matcher) Matcher { return r }

// Source returns the regex source this node was compiled from, letting the
// CompileRegexp rewriter (package rewrite) fold it into a larger
// reconstructed pattern.
func (r *regexpNode) Source() string { return r.source }

func (r *regexpNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("Regexp")
	defer d.Pop("Regexp")
	return matchNFA(r.n, d, s, k)
}

func matchNFA(n *nfa.NFA, d Driver, s stream.Stream, k Cont) (bool, error) {
	text, _ := s.Next(remaining(s))
	m, ok := n.LongestMatch(text, 0)
	if !ok {
		return false, nil
	}
	matched := string(text[:m.Length])
	_, next := s.Next(m.Length)
	return k(Result{matched}, next)
}

func remaining(s stream.Stream) int {
	return len(s.Source().Text) - s.Pos()
}

// nfaRegexpNode wraps an already-compiled NFA directly; the CompileRegexp
// rewriter produces these when it collapses a maximal Any/Literal/Regexp
// subgraph into one automaton (spec.md §4.4). Unlike regexpNode it yields
// every match length, longest first.
type nfaRegexpNode struct {
	n *nfa.NFA
}

// NfaRegexp wraps a pre-compiled NFA as a matcher.
func NfaRegexp(n *nfa.NFA) Matcher { return &nfaRegexpNode{n: n} }

func (r *nfaRegexpNode) Kind() string        { return "NfaRegexp" }
func (r *nfaRegexpNode) Children() []Matcher { return nil }
func (r *nfaRegexpNode) WithChildren([]Matcher) Matcher { return r }
func (r *nfaRegexpNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("NfaRegexp")
	defer d.Pop("NfaRegexp")
	text, _ := s.Next(remaining(s))
	for _, m := range r.n.Matches(text, 0) {
		_, next := s.Next(m.Length)
		stop, err := k(Result{string(text[:m.Length])}, next)
		if err != nil || stop {
			return stop, err
		}
	}
	return false, nil
}

// dfaRegexpNode wraps an already-compiled DFA directly.
type dfaRegexpNode struct {
	dfa *dfa.DFA
}

// DfaRegexp wraps a pre-compiled DFA as a matcher.
func DfaRegexp(d *dfa.DFA) Matcher { return &dfaRegexpNode{dfa: d} }

func (r *dfaRegexpNode) Kind() string        { return "DfaRegexp" }
func (r *dfaRegexpNode) Children() []Matcher { return nil }
func (r *dfaRegexpNode) WithChildren([]Matcher) Matcher { return r }
func (r *dfaRegexpNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("DfaRegexp")
	defer d.Pop("DfaRegexp")
	text, _ := s.Next(remaining(s))
	m, ok := r.dfa.LongestMatch(text, 0)
	if !ok {
		return false, nil
	}
	matched := string(text[:m.Length])
	_, next := s.Next(m.Length)
	return k(Result{matched}, next)
}

// lookaheadNode succeeds without consuming input iff its child matches
// (or, when negated, iff its child does not match) — spec.md §6's
// `Lookahead(m, negate?)`.
type lookaheadNode struct {
	child  Matcher
	negate bool
}

// Lookahead builds a zero-width assertion matcher.
func Lookahead(m Matcher, negate bool) Matcher { return &lookaheadNode{child: m, negate: negate} }

func (n *lookaheadNode) Kind() string        { return "Lookahead" }
func (n *lookaheadNode) Children() []Matcher { return []Matcher{n.child} }
func (n *lookaheadNode) WithChildren(c []Matcher) Matcher {
	return &lookaheadNode{child: c[0], negate: n.negate}
}

func (n *lookaheadNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("Lookahead")
	defer d.Pop("Lookahead")
	found, err := probe(d, n.child, s)
	if err != nil {
		return false, err
	}
	if found == n.negate {
		return false, nil
	}
	return k(nil, s)
}

// RegexError wraps a malformed-pattern failure raised at grammar
// construction time.
type RegexError struct {
	Source string
	Err    error
}

func (e *RegexError) Error() string {
	return fmt.Sprintf("matcher: invalid regexp %q: %v", e.Source, e.Err)
}

func (e *RegexError) Unwrap() error { return e.Err }
