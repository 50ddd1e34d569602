package rewrite

import (
	"fmt"

	"github.com/coregx/lepl/matcher"
	"github.com/coregx/lepl/stream"
)

// fullMatchNode wraps the grammar's top matcher so that a total failure to
// produce any result raises a diagnostic naming the furthest position any
// alternative reached (via the stream's shared Max marker) rather than
// silently returning no results — spec.md §4.4 FullMatch, §6's error
// surface. When eos is set, a result is only accepted if it also leaves
// the stream empty, matching spec.md's `if eos, additionally require the
// stream to be empty after the match`.
type fullMatchNode struct {
	child matcher.Matcher
	eos   bool
}

// FullMatch wraps root so evaluation fails loudly (via FullMatchError)
// instead of quietly, and optionally demands the entire input be consumed.
func FullMatch(root matcher.Matcher, eos bool) matcher.Matcher {
	return &fullMatchNode{child: root, eos: eos}
}

func (n *fullMatchNode) Kind() string        { return "FullMatch" }
func (n *fullMatchNode) Children() []matcher.Matcher { return []matcher.Matcher{n.child} }
func (n *fullMatchNode) WithChildren(c []matcher.Matcher) matcher.Matcher {
	return &fullMatchNode{child: c[0], eos: n.eos}
}

func (n *fullMatchNode) Match(d matcher.Driver, s stream.Stream, k matcher.Cont) (bool, error) {
	d.Push("FullMatch")
	defer d.Pop("FullMatch")
	produced := false
	stop, err := n.child.Match(d, s, func(r matcher.Result, next stream.Stream) (bool, error) {
		if n.eos && !next.Empty() {
			return false, nil
		}
		produced = true
		return k(r, next)
	})
	if err != nil {
		return stop, err
	}
	if !produced && !stop {
		return false, &FullMatchError{Location: s.Source().Name, Furthest: s.Source().Max.Pos()}
	}
	return stop, nil
}

// FullMatchError reports that no alternative of a FullMatch-wrapped
// grammar produced an accepted result, naming the furthest position any
// attempted path reached.
type FullMatchError struct {
	Location string
	Furthest int
}

func (e *FullMatchError) Error() string {
	return fmt.Sprintf("rewrite: no full match in %s; furthest position reached: %d", e.Location, e.Furthest)
}
