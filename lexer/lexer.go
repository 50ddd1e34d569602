// Package lexer implements the token state machine of spec.md §4.7: a
// combined-tokens regex attempted first, a discard regex as fallback,
// and a lex error when neither matches. The indent-aware variant (see
// indent.go) layers INDENT/END emission and offside-rule cooperation on
// top.
//
// The combined-tokens regex is compiled once, at Lexer construction, via
// package nfa's CompileTagged — exactly the multi-pattern, tag-ordered
// union the lexer needs to report every token ID whose pattern matched a
// given prefix, in declaration order (spec.md §4.7 step 2). For the
// common case where every registered pattern is a plain literal string
// (no regex metacharacters), the Lexer additionally builds a
// github.com/coregx/ahocorasick automaton and tries it before falling
// back to the NFA scan — grounded on
// _examples/coregx-coregex/meta/compile.go's buildStrategyEngines, which
// layers a literal-string Aho-Corasick prefilter in front of its general
// regex engine the same way (SPEC_FULL.md §2).
package lexer

import (
	"fmt"
	"regexp"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/lepl/nfa"
	"github.com/coregx/lepl/stream"
)

// TokenDef registers one token pattern under an ID, in declaration
// order — declaration order is the tie-break when two patterns match the
// same prefix (spec.md §4.7).
type TokenDef struct {
	ID      interface{}
	Pattern string
}

// Lexer is a compiled token scanner over a character stream.
type Lexer struct {
	defs     []TokenDef
	combined *nfa.NFA
	discard  *nfa.NFA
	literal  *ahocorasick.Automaton // nil if any pattern isn't a plain literal
}

// DefaultDiscard is the default discard pattern: one or more whitespace
// codes (spec.md §4.7: "parameterized by... a discard regex (default:
// whitespace)").
const DefaultDiscard = `[ \t\r\n]+`

// New compiles a Lexer from the given token definitions and discard
// pattern (DefaultDiscard if empty).
func New(defs []TokenDef, discardPattern string) (*Lexer, error) {
	if discardPattern == "" {
		discardPattern = DefaultDiscard
	}
	tagged := make([]nfa.TaggedPattern, len(defs))
	for i, d := range defs {
		tagged[i] = nfa.TaggedPattern{Source: d.Pattern, Tag: d.ID}
	}
	combined, err := nfa.CompileTagged(tagged, nfa.DefaultCompilerConfig())
	if err != nil {
		return nil, &LexError{Reason: "combined token pattern", Err: err}
	}
	discard, err := nfa.Compile(discardPattern, nfa.DefaultCompilerConfig())
	if err != nil {
		return nil, &LexError{Reason: "discard pattern", Err: err}
	}

	l := &Lexer{defs: defs, combined: combined, discard: discard}
	l.buildLiteralFastPath()
	return l, nil
}

// isPlainLiteral reports whether pattern contains no regexp
// metacharacters, i.e. it matches only its own exact text.
func isPlainLiteral(pattern string) bool {
	return regexp.QuoteMeta(pattern) == pattern
}

func (l *Lexer) buildLiteralFastPath() {
	for _, d := range l.defs {
		if !isPlainLiteral(d.Pattern) {
			return
		}
	}
	b := ahocorasick.NewBuilder()
	for _, d := range l.defs {
		b.AddPattern([]byte(d.Pattern))
	}
	m, err := b.Build()
	if err != nil {
		// Fall back to the NFA-only path; the fast path is a pure
		// optimization, never required for correctness.
		return
	}
	l.literal = m
}

// Emission is one token-match outcome: the terminal IDs whose pattern
// matched (declaration order), the matched text, and the stream advanced
// past it.
type Emission struct {
	Terminals []interface{}
	Text      string
	Next      stream.Stream
}

// Next attempts one emission cycle from s: the combined-tokens regex,
// then (on failure) the discard regex repeatedly, then a LexError
// (spec.md §4.7 steps 1-4). Discardable text that runs from the end of a
// token to the end of input is consumed with that token, so the
// emission's Next is then Empty.
func (l *Lexer) Next(s stream.Stream) (Emission, error) {
	for {
		if em, ok := l.matchToken(s); ok {
			tail, _ := em.Next.Next(remaining(em.Next))
			if m, ok := l.discard.LongestMatch(tail, 0); ok && m.Length > 0 && m.Length == len(tail) {
				_, em.Next = em.Next.Next(m.Length)
			}
			return em, nil
		}
		rest, _ := s.Next(remaining(s))
		m, ok := l.discard.LongestMatch(rest, 0)
		if !ok || m.Length == 0 {
			return Emission{}, &LexError{Reason: "no token or discard pattern matched", Location: s.Fmt()}
		}
		_, s = s.Next(m.Length)
	}
}

func (l *Lexer) matchToken(s stream.Stream) (Emission, bool) {
	rest, _ := s.Next(remaining(s))
	if len(rest) == 0 {
		return Emission{}, false
	}
	if l.literal != nil {
		if terms, length, ok := l.longestLiteralMatch(rest); ok {
			_, next := s.Next(length)
			return Emission{Terminals: terms, Text: string(rest[:length]), Next: next}, true
		}
	}
	m, ok := l.combined.LongestMatch(rest, 0)
	if !ok {
		return Emission{}, false
	}
	_, next := s.Next(m.Length)
	return Emission{Terminals: m.Terminals, Text: string(rest[:m.Length]), Next: next}, true
}

// longestLiteralMatch uses the Aho-Corasick automaton to confirm some
// registered literal matches at the very start of rest, then identifies
// every literal of that matched byte length (declaration order) the way
// the combined NFA path identifies every terminal tag whose pattern
// matched — the automaton gives the fast existence+length check, the
// defs scan gives the tag-ordering semantics spec.md §4.7 requires.
func (l *Lexer) longestLiteralMatch(rest []rune) ([]interface{}, int, bool) {
	haystack := []byte(string(rest))
	m := l.literal.Find(haystack, 0)
	if m == nil || m.Start != 0 {
		return nil, 0, false
	}
	matchedBytes := haystack[m.Start:m.End]
	var terms []interface{}
	bestRuneLen := -1
	for _, d := range l.defs {
		if d.Pattern != string(matchedBytes) {
			continue
		}
		terms = append(terms, d.ID)
		bestRuneLen = len([]rune(d.Pattern))
	}
	if bestRuneLen < 0 {
		return nil, 0, false
	}
	return terms, bestRuneLen, true
}

func remaining(s stream.Stream) int {
	return len(s.Source().Text) - s.Pos()
}

// LexError reports that neither a token nor a discard pattern matched at
// some stream position (spec.md §7: "LexError... always fatal for the
// current parse").
type LexError struct {
	Reason   string
	Location string
	Err      error
}

func (e *LexError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("lexer: %s at %s", e.Reason, e.Location)
	}
	return fmt.Sprintf("lexer: %s", e.Reason)
}

func (e *LexError) Unwrap() error { return e.Err }
