// Package lepl is a parser-combinator engine in the tradition of Python's
// lepl: grammars are built from small composable Matcher values (And, Or,
// Literal, Regexp, Repeat, Transform, ...), rewritten by a configurable
// pipeline (flatten, memoize, compile literal regexes, wire in a lexer,
// ...), and driven to one or all results by a cooperative trampoline.
//
// This file is the grammar-author facade: thin re-exports of the node
// constructors from package matcher plus the two parser-materialization
// entry points from package config. It intentionally does not provide the
// fluent operator-overloading surface (m1 & m2, +m, m[1:2], ...) some
// combinator libraries layer on top — that sugar belongs in a separate
// package built on these primitives, not in the core engine.
package lepl

import (
	"github.com/coregx/lepl/config"
	"github.com/coregx/lepl/dfa"
	"github.com/coregx/lepl/matcher"
	"github.com/coregx/lepl/nfa"
)

// Matcher is the grammar node interface every combinator below returns.
type Matcher = matcher.Matcher

// Result is one successful match's captured values.
type Result = matcher.Result

// BlockPolicy computes a Block's required indent from the enclosing
// block's (current) and the freshly measured line's (observed) indent.
type BlockPolicy = matcher.BlockPolicy

// And matches every child in sequence, threading the stream through each.
func And(children ...Matcher) Matcher { return matcher.And(children...) }

// Or tries every child in order, producing each child's results in turn.
func Or(children ...Matcher) Matcher { return matcher.Or(children...) }

// Any matches a single character from charset (or any character if charset
// is empty).
func Any(charset string) Matcher { return matcher.Any(charset) }

// Literal matches text exactly.
func Literal(text string) Matcher { return matcher.Literal(text) }

// Regexp matches source, a regexp/syntax-flavored pattern compiled to an
// NFA when the matcher is built, yielding only the longest match (see
// NfaRegexp/DfaRegexp and the CompileRegexp rewriter for matchers over
// precompiled automata).
func Regexp(source string) Matcher { return matcher.Regexp(source) }

// Lookahead matches child without consuming input, succeeding (negate
// false) or failing (negate true) according to whether child matched.
func Lookahead(child Matcher, negate bool) Matcher { return matcher.Lookahead(child, negate) }

// NfaRegexp matches by simulating a precompiled Thompson NFA directly,
// yielding every match length, longest first.
func NfaRegexp(n *nfa.NFA) Matcher { return matcher.NfaRegexp(n) }

// DfaRegexp matches by driving a precompiled subset-construction DFA.
func DfaRegexp(d *dfa.DFA) Matcher { return matcher.DfaRegexp(d) }

// RepeatOption configures Repeat; see Separator and Reduce.
type RepeatOption = matcher.RepeatOption

// Separator requires sep to match between consecutive repetitions.
func Separator(sep Matcher) RepeatOption { return matcher.Separator(sep) }

// Reduce passes the captures of all repetitions, as one accumulated
// Result, through fn once per yielded match, and yields fn's value instead
// of the flat list.
func Reduce(fn func(Result) (interface{}, error)) RepeatOption { return matcher.Reduce(fn) }

// Repeat matches body between lo and hi times (hi<0 for unbounded),
// trying the longest count first when greedy, the shortest first
// otherwise.
func Repeat(body Matcher, lo, hi int, greedy bool, opts ...RepeatOption) Matcher {
	return matcher.Repeat(body, lo, hi, greedy, opts...)
}

// Transform maps body's result through fn.
func Transform(body Matcher, fn func(Result) (interface{}, error)) Matcher {
	return matcher.Transform(body, fn)
}

// DelayedRef is a forward-reference handle for building cyclic (typically
// left-recursive) grammars: call Delayed first, use its Matcher() in the
// grammar, then Set its real target once the recursive definition exists.
type DelayedRef = matcher.DelayedRef

// Delayed creates an unresolved placeholder matcher for tying recursive
// knots.
func Delayed() *DelayedRef { return matcher.Delayed() }

// Token declares a lexical terminal: pattern is this token's regex, id
// names it for downstream lookup, and complete requires the match to
// consume all of the remaining input when the Token is evaluated
// directly; once the AddLexer rewriter has replaced it with a
// lexer-driven matcher, complete has no effect. A
// grammar using Token needs a lexer wired in via config.ConfigBuilder.Lexer
// before it can be evaluated.
func Token(pattern string, complete bool, id interface{}) Matcher {
	return matcher.Token(pattern, complete, id)
}

// Indent matches and consumes a line's leading indentation, checking it
// against the enclosing Block's required width.
func Indent() Matcher { return matcher.Indent() }

// Block evaluates body under a required indent computed by policy from
// the enclosing block's current requirement and this line's observed
// indent.
func Block(body Matcher, policy BlockPolicy) Matcher { return matcher.Block(body, policy) }

// LMemo wraps child in left-recursion-safe memoization: repeated
// re-entrant calls at the same stream position are curtailed and the
// cached result set is grown by re-running child until it stops changing.
func LMemo(child Matcher) Matcher { return matcher.LMemo(child) }

// RMemo wraps child in straight replay memoization: a second call at the
// same stream position replays the first call's recorded result sequence
// instead of re-evaluating child.
func RMemo(child Matcher) Matcher { return matcher.RMemo(child) }

// ConfigBuilder accumulates rewriters and monitors for MakeMatcher and
// MakeParser; see package config.
type ConfigBuilder = config.ConfigBuilder

// Configuration is a frozen ConfigBuilder snapshot.
type Configuration = config.Configuration

// NewConfig creates an empty ConfigBuilder.
func NewConfig() *ConfigBuilder { return config.New() }

// MakeMatcher rewrites root under cfg once and returns a function that
// parses an input string to every result the grammar produces.
func MakeMatcher(root Matcher, cfg Configuration) (func(input string) ([]Result, error), error) {
	return config.MakeMatcher(root, cfg)
}

// MakeParser rewrites root under cfg once and returns a function that
// parses an input string to its first result only.
func MakeParser(root Matcher, cfg Configuration) (func(input string) (Result, bool, error), error) {
	return config.MakeParser(root, cfg)
}
