package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coregx/lepl/dfa"
	"github.com/coregx/lepl/matcher"
	"github.com/coregx/lepl/nfa"
)

// regexpBounds is implemented by Repeat nodes, exposing the parameters
// CompileRegexp needs to reconstruct an equivalent quantifier.
type regexpBounds interface {
	Bounds() (lo, hi int, greedy bool)
	HasSeparator() bool
}

// regexSource attempts to express m as a plain regex source string,
// recursing into And/Or/Repeat over leaf Any/Literal/Regexp combinators —
// spec.md §4.4's "maximal subgraphs expressible as regex". Any node kind
// outside that set (Transform, Lookahead, Token, Delayed, memoization and
// offside wrappers) fails, which is also how recursion into a Delayed
// cycle is avoided: a cyclic subgraph always contains a Delayed node
// somewhere, which always fails here.
func regexSource(m matcher.Matcher) (string, bool) {
	switch v := m.(type) {
	case interface{ Text() string }:
		if m.Kind() == "Literal" {
			return regexp.QuoteMeta(v.Text()), true
		}
	case interface{ Source() string }:
		if m.Kind() == "Regexp" {
			return "(?:" + v.Source() + ")", true
		}
	case interface{ Charset() string }:
		if m.Kind() == "Any" {
			cs := v.Charset()
			if cs == "" {
				return ".", true
			}
			return "[" + regexp.QuoteMeta(cs) + "]", true
		}
	}
	switch m.Kind() {
	case "And":
		var b strings.Builder
		for _, c := range m.Children() {
			src, ok := regexSource(c)
			if !ok {
				return "", false
			}
			b.WriteString(src)
		}
		return b.String(), true
	case "Or":
		parts := make([]string, 0, len(m.Children()))
		for _, c := range m.Children() {
			src, ok := regexSource(c)
			if !ok {
				return "", false
			}
			parts = append(parts, src)
		}
		return "(?:" + strings.Join(parts, "|") + ")", true
	case "Repeat":
		rb, ok := m.(regexpBounds)
		if !ok || rb.HasSeparator() {
			return "", false
		}
		bodySrc, ok := regexSource(m.Children()[0])
		if !ok {
			return "", false
		}
		lo, hi, greedy := rb.Bounds()
		quant := quantifier(lo, hi)
		if !greedy {
			quant += "?"
		}
		return "(?:" + bodySrc + ")" + quant, true
	default:
		return "", false
	}
}

func quantifier(lo, hi int) string {
	switch {
	case lo == 0 && hi < 0:
		return "*"
	case lo == 1 && hi < 0:
		return "+"
	case lo == 0 && hi == 1:
		return "?"
	case hi < 0:
		return fmt.Sprintf("{%d,}", lo)
	default:
		return fmt.Sprintf("{%d,%d}", lo, hi)
	}
}

// Mode selects whether CompileRegexp collapses a maximal subgraph into an
// NfaRegexp (full longest-first enumeration) or a DfaRegexp (single
// deterministic walk, spec.md §4.2's compiled-to-DFA trade-off).
type Mode int

const (
	// NFA keeps the collapsed subgraph's full match-length enumeration.
	NFA Mode = iota
	// DFA additionally determinizes it for faster, single-walk matching.
	DFA
)

func compileRegexpRec(m matcher.Matcher, mode Mode, onPath map[matcher.Matcher]bool) matcher.Matcher {
	if onPath[m] {
		return m
	}
	if src, ok := regexSource(m); ok {
		n, err := nfa.Compile(src, nfa.DefaultCompilerConfig())
		if err != nil {
			return m
		}
		if mode == NFA {
			return matcher.NfaRegexp(n)
		}
		d, err := dfa.Build(n, dfa.DefaultBuildConfig())
		if err != nil {
			return matcher.NfaRegexp(n)
		}
		return matcher.DfaRegexp(d)
	}
	children := m.Children()
	if len(children) == 0 {
		return m
	}
	onPath[m] = true
	rebuilt := make([]matcher.Matcher, len(children))
	for i, c := range children {
		rebuilt[i] = compileRegexpRec(c, mode, onPath)
	}
	delete(onPath, m)
	return m.WithChildren(rebuilt)
}

// CompileRegexp finds every maximal Any/Literal/Regexp/And/Or/Repeat
// subgraph in m and replaces it with a single compiled NfaRegexp (mode=NFA)
// or DfaRegexp (mode=DFA) node (spec.md §4.4).
func CompileRegexp(m matcher.Matcher, mode Mode) matcher.Matcher {
	return compileRegexpRec(m, mode, map[matcher.Matcher]bool{})
}
