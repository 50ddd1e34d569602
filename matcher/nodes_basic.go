package matcher

import (
	"strings"

	"github.com/coregx/lepl/alphabet"
	"github.com/coregx/lepl/stream"
)

// andNode matches its children strictly left-to-right (spec.md §5),
// concatenating their Results.
type andNode struct {
	children []Matcher
}

// And builds a sequential matcher: every child must succeed in turn, in
// the order given. An empty And matches the empty input once.
func And(children ...Matcher) Matcher { return &andNode{children: children} }

func (n *andNode) Kind() string         { return "And" }
func (n *andNode) Children() []Matcher  { return n.children }
func (n *andNode) WithChildren(c []Matcher) Matcher { return &andNode{children: c} }

func (n *andNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("And")
	defer d.Pop("And")
	return andSeq(d, n.children, nil, s, k)
}

func andSeq(d Driver, children []Matcher, prefix Result, s stream.Stream, k Cont) (bool, error) {
	if len(children) == 0 {
		return k(prefix, s)
	}
	head, rest := children[0], children[1:]
	return head.Match(d, s, func(r Result, next stream.Stream) (bool, error) {
		combined := make(Result, 0, len(prefix)+len(r))
		combined = append(combined, prefix...)
		combined = append(combined, r...)
		return andSeq(d, rest, combined, next, k)
	})
}

// orNode tries each child in declaration order (possibly reordered by the
// OptimizeOr rewriter), yielding every alternative's results in turn.
type orNode struct {
	children []Matcher
}

// Or builds an ordered-alternation matcher.
func Or(children ...Matcher) Matcher { return &orNode{children: children} }

func (n *orNode) Kind() string         { return "Or" }
func (n *orNode) Children() []Matcher  { return n.children }
func (n *orNode) WithChildren(c []Matcher) Matcher { return &orNode{children: c} }

func (n *orNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("Or")
	defer d.Pop("Or")
	for _, child := range n.children {
		stop, err := child.Match(d, s, k)
		if err != nil || stop {
			return stop, err
		}
	}
	return false, nil
}

// anyNode matches exactly one code from an optional restricting charset.
type anyNode struct {
	charset string // empty means "any code in the alphabet"
	alpha   alphabet.Alphabet
}

// Any builds a single-character matcher. An empty charset accepts any
// code in the Unicode alphabet; a non-empty charset restricts to exactly
// those runes (spec.md §6: "Any(charset?)").
func Any(charset string) Matcher { return &anyNode{charset: charset, alpha: alphabet.Unicode} }

func (n *anyNode) Kind() string         { return "Any" }
func (n *anyNode) Children() []Matcher  { return nil }
func (n *anyNode) WithChildren([]Matcher) Matcher { return n }

// Charset returns the restricting charset this Any was built with (empty
// means "any code"), letting the CompileRegexp rewriter (package rewrite)
// reconstruct an equivalent character-class source.
func (n *anyNode) Charset() string { return n.charset }

func (n *anyNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("Any")
	defer d.Pop("Any")
	if s.Empty() {
		return false, nil
	}
	chunk, next := s.Next(1)
	r := chunk[0]
	if n.charset != "" && !strings.ContainsRune(n.charset, r) {
		return false, nil
	}
	return k(Result{string(r)}, next)
}

// literalNode matches one fixed string exactly.
type literalNode struct {
	text string
}

// Literal builds a matcher for one fixed string.
func Literal(text string) Matcher { return &literalNode{text: text} }

func (n *literalNode) Kind() string        { return "Literal" }
func (n *literalNode) Children() []Matcher { return nil }
func (n *literalNode) WithChildren([]Matcher) Matcher { return n }

// Text returns the fixed string this Literal matches, letting the
// CompileRegexp rewriter (package rewrite) reconstruct an equivalent regex
// source fragment.
func (n *literalNode) Text() string { return n.text }

func (n *literalNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("Literal")
	defer d.Pop("Literal")
	runes := []rune(n.text)
	chunk, next := s.Next(len(runes))
	if string(chunk) != n.text {
		return false, nil
	}
	return k(Result{n.text}, next)
}
