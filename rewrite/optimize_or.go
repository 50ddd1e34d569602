package rewrite

import "github.com/coregx/lepl/matcher"

// containsSelf reports whether target is reachable from cur by following
// Children() edges, tracking visited nodes by pointer identity to
// terminate on cycles and on DAG sharing alike.
func containsSelf(cur, target matcher.Matcher, visited map[matcher.Matcher]bool) bool {
	if cur == target {
		return true
	}
	if visited[cur] {
		return false
	}
	visited[cur] = true
	for _, c := range cur.Children() {
		if containsSelf(c, target, visited) {
			return true
		}
	}
	return false
}

type optimizeOrVisitor struct {
	conservative bool
}

func (optimizeOrVisitor) OnLeaf(m matcher.Matcher) matcher.Matcher { return m }
func (optimizeOrVisitor) OnLoop(m matcher.Matcher) matcher.Matcher { return m }

func (v optimizeOrVisitor) OnNode(m matcher.Matcher, children []matcher.Matcher) matcher.Matcher {
	rebuilt := m.WithChildren(children)
	if rebuilt.Kind() != "Or" {
		return rebuilt
	}
	var direct, recursive []matcher.Matcher
	for _, c := range rebuilt.Children() {
		// Both the conservative and non-conservative paths here treat any
		// cycle back to the Or node as left-recursive; distinguishing a
		// cycle that can only be reached after consuming input (the
		// non-conservative relaxation spec.md §4.4 describes) would need a
		// full can-match-empty analysis this engine does not perform, so
		// both flags currently share the conservative behavior — resolved
		// in SPEC_FULL.md's Open Question as the safe default.
		//
		// Cycles are Delayed back-references resolved against the
		// pre-rewrite graph, so the identity check below must use m (the
		// node Delayed.Set was originally pointed at), not rebuilt.
		_ = v.conservative
		if containsSelf(c, m, map[matcher.Matcher]bool{}) {
			recursive = append(recursive, c)
		} else {
			direct = append(direct, c)
		}
	}
	return matcher.Or(append(direct, recursive...)...)
}

// OptimizeOr reorders every Or node's children so that branches which
// recurse back into the same Or (left-recursive alternatives) are tried
// last, after every non-recursive alternative (spec.md §4.4). conservative
// is accepted for API parity with the distilled spec; both values
// currently resolve to the stricter behavior (see SPEC_FULL.md's Open
// Question resolution).
func OptimizeOr(m matcher.Matcher, conservative bool) matcher.Matcher {
	return matcher.Walk(m, optimizeOrVisitor{conservative: conservative})
}
