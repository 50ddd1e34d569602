// Package stream implements the immutable input-position abstraction that
// every matcher advances over (spec.md §3's Stream contract): next, empty,
// line, substream, key, id and fmt, plus a furthest-position Max marker used
// for best-effort diagnostics when a parse fails.
//
// Grounded on github.com/coregx/coregex's stdlib-only style (no external
// stream library anywhere in the example pack reaches for one) — this is a
// from-scratch, small, immutable value type rather than an adaptation of
// teacher code, since the teacher operates directly on []byte slices and
// has no notion of a shareable, derivable stream position.
package stream

import "fmt"

// Max tracks the furthest position any stream derived from the same root
// has reached. Every Stream produced by New shares one Max, so FullMatch
// (package rewrite) can report the deepest point any backtracking path
// ever reached, not just where the final attempt failed (SPEC_FULL.md §4,
// resolving spec.md §9's open question on FullMatch/memoization
// interaction: furthest position observed across every path, tracked here
// rather than reconstructed from the memo cache).
type Max struct {
	pos int
}

// Pos returns the furthest offset reached so far.
func (m *Max) Pos() int { return m.pos }

func (m *Max) observe(pos int) {
	if pos > m.pos {
		m.pos = pos
	}
}

// Stream is an immutable position within a named source's rune sequence.
// Two Streams are independent views; advancing one never mutates another,
// but they share the root's Max marker and Source name for diagnostics.
type Stream struct {
	source *Source
	pos    int
}

// Source is the shared, read-only backing of every Stream derived from one
// call to New: the full rune content, its display name, and the running
// Max marker.
type Source struct {
	Name string
	Text []rune
	Max  *Max
}

// New creates a Stream over the start of text, named name for diagnostics
// (e.g. a file path, or "<string>").
func New(name string, text string) Stream {
	src := &Source{Name: name, Text: []rune(text), Max: &Max{}}
	return Stream{source: src}
}

// Pos returns this stream's offset into its source, in runes.
func (s Stream) Pos() int { return s.pos }

// Source returns the shared source this stream is a view over.
func (s Stream) Source() *Source { return s.source }

// Empty reports whether the stream has no more input.
func (s Stream) Empty() bool { return s.pos >= len(s.source.Text) }

// Next returns the next n runes (fewer at end of input) and the stream
// advanced past them. Advancing updates the shared Max marker.
func (s Stream) Next(n int) ([]rune, Stream) {
	end := s.pos + n
	if end > len(s.source.Text) {
		end = len(s.source.Text)
	}
	chunk := s.source.Text[s.pos:end]
	next := Stream{source: s.source, pos: end}
	s.source.Max.observe(end)
	return chunk, next
}

// Line returns the text up to and including (if includeEOL) the next
// newline, and the stream advanced past it. When no newline follows,
// returns the remaining text (possibly empty) and a stream at the end of
// input, which is Empty.
func (s Stream) Line(includeEOL bool) (string, Stream) {
	text := s.source.Text
	i := s.pos
	for i < len(text) && text[i] != '\n' {
		i++
	}
	end := i
	if i < len(text) {
		end = i + 1 // consume the newline
	}
	lineEnd := end
	if !includeEOL {
		lineEnd = i
	}
	line := string(text[s.pos:lineEnd])
	next := Stream{source: s.source, pos: end}
	s.source.Max.observe(end)
	return line, next
}

// Substream builds a derived stream over an independently-held text slice,
// sharing this stream's Max marker so diagnostics computed from the
// substream still roll up to the same furthest-position tracker. The
// lexer in this module does not call it.
func (s Stream) Substream(text string, name string) Stream {
	if name == "" {
		name = s.source.Name
	}
	src := &Source{Name: name, Text: []rune(text), Max: s.source.Max}
	return Stream{source: src}
}

// Key returns a position-like identity suitable for memo-cache keys: two
// streams over the same source at the same offset compare equal.
func (s Stream) Key() string {
	return fmt.Sprintf("%p:%d", s.source, s.pos)
}

// ID returns a stable identity string for this exact stream, used in trace
// output.
func (s Stream) ID() string {
	return fmt.Sprintf("%s@%d", s.source.Name, s.pos)
}

// Fmt renders a human-readable location description: source name, rune
// offset, and a short snippet of surrounding text, for use in diagnostics
// (spec.md §6's error surface: "the input snippet").
func (s Stream) Fmt() string {
	text := s.source.Text
	lo := s.pos - 10
	if lo < 0 {
		lo = 0
	}
	hi := s.pos + 10
	if hi > len(text) {
		hi = len(text)
	}
	return fmt.Sprintf("%s offset %d: %q", s.source.Name, s.pos, string(text[lo:hi]))
}
