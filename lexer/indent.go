package lexer

import "github.com/coregx/lepl/stream"

// IndentToken and EndToken are marker types for the indent-aware lexer's
// synthetic line-structure terminals. IndentLexer does not emit them as
// terminal IDs: it reports indent and line end through LineEmission's
// Indent and End fields. Recovered from original_source/src/lepl/offside/lexer.py's Indentation
// and Eol token handling (SPEC_FULL.md §3).
type IndentToken struct{}
type EndToken struct{}

// Indentation and BlankIndentation are the leading-whitespace patterns
// ported verbatim from original_source/src/lepl/offside/lexer.py
// (SPEC_FULL.md §3). IndentLexer does not use them: it measures indent by
// scanning spaces and tabs, and a line of only whitespace is measured like
// any other line, not skipped.
const (
	Indentation      = `^[ \t]*`
	BlankIndentation = `^[ \t]*$`
)

// IndentLexer wraps Lexer with offside-rule line structure: at each line
// start it emits an IndentToken carrying the (tabsize-expanded) indent
// width, then tokenizes the remainder of the line, then emits an
// EndToken, and continues from the next line (spec.md §4.7).
type IndentLexer struct {
	inner   *Lexer
	tabsize int
}

// NewIndentLexer wraps inner with line-aware emission using the given
// tab-expansion width.
func NewIndentLexer(inner *Lexer, tabsize int) *IndentLexer {
	if tabsize <= 0 {
		tabsize = 8
	}
	return &IndentLexer{inner: inner, tabsize: tabsize}
}

// LineEmission is one line-structured emission: either an indent marker,
// an ordinary token, or an end-of-line marker.
type LineEmission struct {
	Indent *int // non-nil for an IndentToken emission
	End    bool // true for an EndToken emission
	Token  Emission
	Next   stream.Stream
}

// Next advances the indent-aware state machine by one emission. Callers
// drive it in a loop until the underlying stream (passed to the first
// call and threaded via the returned Next) is empty.
func (l *IndentLexer) Next(s stream.Stream, atLineStart bool) (LineEmission, error) {
	if atLineStart {
		width, next := l.measureIndent(s)
		return LineEmission{Indent: &width, Next: next}, nil
	}
	if s.Empty() || l.atNewline(s) {
		_, next := l.skipNewline(s)
		return LineEmission{End: true, Next: next}, nil
	}
	em, err := l.inner.Next(s)
	if err != nil {
		return LineEmission{}, err
	}
	return LineEmission{Token: em, Next: em.Next}, nil
}

func (l *IndentLexer) measureIndent(s stream.Stream) (int, stream.Stream) {
	width := 0
	cur := s
	for !cur.Empty() {
		chunk, next := cur.Next(1)
		switch chunk[0] {
		case ' ':
			width++
		case '\t':
			width += l.tabsize - (width % l.tabsize)
		default:
			return width, cur
		}
		cur = next
	}
	return width, cur
}

func (l *IndentLexer) atNewline(s stream.Stream) bool {
	chunk, _ := s.Next(1)
	return len(chunk) > 0 && chunk[0] == '\n'
}

func (l *IndentLexer) skipNewline(s stream.Stream) (bool, stream.Stream) {
	if s.Empty() {
		return false, s
	}
	chunk, next := s.Next(1)
	return len(chunk) > 0 && chunk[0] == '\n', next
}
