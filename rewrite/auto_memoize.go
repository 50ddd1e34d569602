package rewrite

import "github.com/coregx/lepl/matcher"

// autoMemoizeVisitor rebuilds the whole graph (the same Clone-style
// reconstruction matcher.Walk's cloneVisitor uses) so that a Delayed loop
// edge can be back-patched to the newly LMemo-wrapped node instead of the
// original — wrapping the node without re-pointing the loop back to the
// wrapper would leave left recursion unmemoized, defeating the rewrite
// entirely (spec.md §4.4 AutoMemoize).
type autoMemoizeVisitor struct {
	full    bool
	proxies map[matcher.Matcher]*matcher.DelayedRef
	cyclic  map[matcher.Matcher]bool
}

func (v *autoMemoizeVisitor) OnLeaf(m matcher.Matcher) matcher.Matcher {
	rebuilt := m.WithChildren(nil)
	if v.full {
		rebuilt = matcher.RMemo(rebuilt)
	}
	return rebuilt
}

func (v *autoMemoizeVisitor) OnLoop(m matcher.Matcher) matcher.Matcher {
	v.cyclic[m] = true
	if proxy, ok := v.proxies[m]; ok {
		return proxy.Matcher()
	}
	proxy := matcher.Delayed()
	v.proxies[m] = proxy
	return proxy.Matcher()
}

func (v *autoMemoizeVisitor) OnNode(m matcher.Matcher, children []matcher.Matcher) matcher.Matcher {
	rebuilt := m.WithChildren(children)
	if v.cyclic[m] {
		rebuilt = matcher.LMemo(rebuilt)
	}
	if v.full {
		rebuilt = matcher.RMemo(rebuilt)
	}
	if proxy, ok := v.proxies[m]; ok {
		proxy.Set(rebuilt)
	}
	return rebuilt
}

// AutoMemoize wraps in LMemo each node that a cycle's back-edge points to
// (the node matcher.Walk reports through OnLoop), so that recursion
// through the cycle terminates without the grammar author hand-placing the
// wrapper. Other nodes on the cycle are not wrapped, and a cycle is
// wrapped whether or not it is left-recursive. When full is true every
// node is additionally wrapped in RMemo, trading memory for
// single-evaluation-per-position performance (spec.md §4.4).
// conservative is accepted for API parity with the distilled spec's
// signature and has no effect; cycle detection here only fires on a
// genuine back-edge.
func AutoMemoize(m matcher.Matcher, conservative bool, full bool) matcher.Matcher {
	_ = conservative
	v := &autoMemoizeVisitor{full: full, proxies: map[matcher.Matcher]*matcher.DelayedRef{}, cyclic: map[matcher.Matcher]bool{}}
	return matcher.Walk(m, v)
}
