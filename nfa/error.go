// Package nfa compiles a regex source string into a Thompson NFA over an
// alphabet.Character transition alphabet, and runs it against a rune stream.
//
// This is the NFA half of spec.md §4.2's Regexp Compiler: parsing is
// delegated to the standard library's regexp/syntax (its rune-range
// CharClass output maps directly onto alphabet.Interval, so no UTF-8
// byte-expansion step — needed in a byte-oriented engine like the teacher's
// — is required here), and construction follows classic Thompson
// construction, grounded on the dense StateID-indexed state table and
// Builder pattern of github.com/coregx/coregex's nfa package.
package nfa

import "fmt"

// CompileError wraps a regex source or construction failure with the
// offending pattern, matching spec.md §7's RegexError.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("nfa: failed to compile %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// ErrTooComplex reports a pattern whose repeat counts would build an
// unreasonably large NFA (protects against {0,100000000} style patterns).
type ErrTooComplex struct {
	Pattern string
}

func (e *ErrTooComplex) Error() string {
	return fmt.Sprintf("nfa: pattern %q is too complex to compile", e.Pattern)
}
