// Package rewrite implements the graph-to-graph transformations applied to
// a matcher tree before evaluation (spec.md §4.4): Flatten, ComposeTransforms,
// OptimizeOr, AutoMemoize, CompileRegexp, SetArguments, FullMatch,
// DirectEvaluation and AddLexer. Every rewriter is a pure function
// matcher.Matcher -> matcher.Matcher built on top of matcher.Walk/Clone, the
// same substrate _examples/coregx-coregex's optimizer passes use for their
// own AST-to-AST rewrites (see compile.go's literal/alternation folding).
package rewrite

import "github.com/coregx/lepl/matcher"

// flattenVisitor collapses nested And/And and Or/Or chains into one level,
// preserving declaration order (spec.md §4.4: "collapse nested And(And(x,y),z)
// to And(x,y,z) and similarly for Or. Preserves match semantics and result
// counts.").
type flattenVisitor struct{}

func (flattenVisitor) OnLeaf(m matcher.Matcher) matcher.Matcher { return m }

func (flattenVisitor) OnLoop(m matcher.Matcher) matcher.Matcher { return m }

func (flattenVisitor) OnNode(m matcher.Matcher, children []matcher.Matcher) matcher.Matcher {
	switch m.Kind() {
	case "And":
		return matcher.And(spliceSameKind("And", children)...)
	case "Or":
		return matcher.Or(spliceSameKind("Or", children)...)
	default:
		return m.WithChildren(children)
	}
}

// spliceSameKind inlines any child of the given kind in place, so a
// two-level And(And(x,y),z) rebuilt bottom-up by Walk becomes a flat
// three-child And the next level up.
func spliceSameKind(kind string, children []matcher.Matcher) []matcher.Matcher {
	out := make([]matcher.Matcher, 0, len(children))
	for _, c := range children {
		if c.Kind() == kind {
			out = append(out, c.Children()...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

// Flatten collapses nested And/Or chains throughout m.
func Flatten(m matcher.Matcher) matcher.Matcher {
	return matcher.Walk(m, flattenVisitor{})
}
