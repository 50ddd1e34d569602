package rewrite

import "github.com/coregx/lepl/matcher"

type setPolicyVisitor struct {
	policy matcher.BlockPolicy
}

func (setPolicyVisitor) OnLeaf(m matcher.Matcher) matcher.Matcher { return m }
func (setPolicyVisitor) OnLoop(m matcher.Matcher) matcher.Matcher { return m }

func (v setPolicyVisitor) OnNode(m matcher.Matcher, children []matcher.Matcher) matcher.Matcher {
	rebuilt := m.WithChildren(children)
	if ps, ok := rebuilt.(matcher.PolicySetter); ok {
		return ps.WithPolicy(v.policy)
	}
	return rebuilt
}

// SetBlockPolicy rebinds every Block node's offside policy throughout m —
// spec.md §4.4's SetArguments specialized to this engine's one rebindable
// named argument surfaced via matcher.PolicySetter. A general
// by-name/by-kwargs setter would need a
// reflection-driven argument registry the matcher-node model deliberately
// avoids (spec.md §9's explicit per-variant accessor design), so this
// rewriter is narrowed to the one argument the node set actually exposes
// for rebinding.
func SetBlockPolicy(m matcher.Matcher, policy matcher.BlockPolicy) matcher.Matcher {
	return matcher.Walk(m, setPolicyVisitor{policy: policy})
}
