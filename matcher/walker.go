package matcher

// Visitor receives the postorder traversal hooks a Walker invokes
// (spec.md §4.3): OnLeaf for a childless node, OnNode after every child
// has already been visited and (for Clone-style visitors) rebuilt, and
// OnLoop when the walk revisits a node already on the current path —
// which only happens through a Delayed placeholder, since that is the
// only way this grammar model admits cycles.
type Visitor interface {
	OnLeaf(m Matcher) Matcher
	OnNode(m Matcher, rebuiltChildren []Matcher) Matcher
	OnLoop(m Matcher) Matcher
}

// Walk traverses m in postorder, applying v, and returns the
// (possibly rewritten) result. Cycles are detected via path membership,
// not global visited-set membership, so the same shared subgraph reached
// twice via different parents is visited twice (correct for DAG sharing)
// while a true back-edge to an ancestor is caught as a loop.
func Walk(m Matcher, v Visitor) Matcher {
	return walk(m, v, map[Matcher]bool{})
}

func walk(m Matcher, v Visitor, onPath map[Matcher]bool) Matcher {
	if onPath[m] {
		return v.OnLoop(m)
	}
	children := m.Children()
	if len(children) == 0 {
		return v.OnLeaf(m)
	}
	onPath[m] = true
	rebuilt := make([]Matcher, len(children))
	for i, c := range children {
		rebuilt[i] = walk(c, v, onPath)
	}
	delete(onPath, m)
	return v.OnNode(m, rebuilt)
}

// cloneVisitor rebuilds every node via WithChildren, giving a
// structurally identical graph with new interior nodes (leaf nodes, whose
// WithChildren returns the node itself, are shared) — the substrate every
// rewriter in package rewrite builds on (spec.md §4.3: "Clone is a
// visitor that rebuilds the graph by calling each node's constructor
// with rewritten children").
//
// Loop edges (Delayed back-references) are handled with a proxy: the
// first time a loop is detected mid-clone, a fresh Delayed placeholder
// stands in for the not-yet-cloned ancestor; once that ancestor's own
// clone completes, every proxy pointing at it is patched to the real
// clone (back-patched exactly once, per spec.md §9's knot-tying design).
type cloneVisitor struct {
	proxies map[Matcher]*DelayedRef
}

func newCloneVisitor() *cloneVisitor {
	return &cloneVisitor{proxies: map[Matcher]*DelayedRef{}}
}

func (c *cloneVisitor) OnLeaf(m Matcher) Matcher { return m.WithChildren(nil) }

func (c *cloneVisitor) OnNode(m Matcher, children []Matcher) Matcher {
	clone := m.WithChildren(children)
	if proxy, ok := c.proxies[m]; ok {
		proxy.Set(clone)
	}
	return clone
}

func (c *cloneVisitor) OnLoop(m Matcher) Matcher {
	if proxy, ok := c.proxies[m]; ok {
		return proxy.Matcher()
	}
	proxy := Delayed()
	c.proxies[m] = proxy
	return proxy.Matcher()
}

// Clone returns a structurally equivalent deep copy of m: every node is
// rebuilt via WithChildren, and cycles are preserved through Delayed
// proxies.
func Clone(m Matcher) Matcher {
	return Walk(m, newCloneVisitor())
}
