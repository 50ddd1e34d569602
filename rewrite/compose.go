package rewrite

import "github.com/coregx/lepl/matcher"

// isLeafish reports whether m has no children to recurse into during
// evaluation — spec.md §4.4's "m is a leaf-ish matcher" condition for
// ComposeTransforms: fusing only pays off when the wrapped matcher's body
// is already a terminal node, not a subgraph with its own alternatives.
func isLeafish(m matcher.Matcher) bool {
	return len(m.Children()) == 0
}

type composeVisitor struct{}

func (composeVisitor) OnLeaf(m matcher.Matcher) matcher.Matcher { return m }
func (composeVisitor) OnLoop(m matcher.Matcher) matcher.Matcher { return m }

// OnNode fuses Transform(outerFn, Transform(innerFn, leaf)) into a single
// Transform(fused, leaf), eliminating the inner Transform's CPS frame
// whenever its own body is leaf-ish (spec.md §4.4).
func (composeVisitor) OnNode(m matcher.Matcher, children []matcher.Matcher) matcher.Matcher {
	rebuilt := m.WithChildren(children)
	if rebuilt.Kind() != "Transform" {
		return rebuilt
	}
	outer, ok := rebuilt.(matcher.Transformer)
	if !ok {
		return rebuilt
	}
	body := rebuilt.Children()[0]
	if body.Kind() != "Transform" || !isLeafish(body.Children()[0]) {
		return rebuilt
	}
	inner, ok := body.(matcher.Transformer)
	if !ok {
		return rebuilt
	}
	leaf := body.Children()[0]
	outerFn, innerFn := outer.Fn(), inner.Fn()
	fused := func(r matcher.Result) (interface{}, error) {
		v, err := innerFn(r)
		if err != nil {
			return nil, err
		}
		return outerFn(matcher.Result{v})
	}
	return matcher.Transform(leaf, fused)
}

// ComposeTransforms fuses any Transform directly wrapping another Transform
// over a leaf-ish body into one combined transform function throughout m.
func ComposeTransforms(m matcher.Matcher) matcher.Matcher {
	return matcher.Walk(m, composeVisitor{})
}
