package rewrite

import "github.com/coregx/lepl/matcher"

// DirectEvaluation is a documented no-op: the source's rewriter marks
// simple matchers to be called without a coroutine bounce (spec.md §4.4),
// a distinction that only exists for a generator-based trampoline. This
// engine's CPS evaluation model (matcher.Cont) has no coroutine stack to
// bounce through in the first place — every matcher already calls its
// continuation directly, in the same Go call stack frame chain, whether
// it is "simple" or not. The rewriter is kept as an identity function so a
// configuration pipeline built against the distilled spec's rewriter list
// still type-checks and composes unchanged.
func DirectEvaluation(m matcher.Matcher) matcher.Matcher { return m }
