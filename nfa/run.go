package nfa

// threadSet is a PikeVM-style thread list: the set of NFA states reachable
// by consuming the same prefix of input, deduplicated so each state runs at
// most once per step (grounded on github.com/coregx/coregex's nfa.PikeVM
// simulation loop, generalized from byte transitions to Character
// transitions and adapted to report every match length instead of only the
// first).
type threadSet struct {
	states []StateID
	onList []bool // dense membership bitmap sized to NFA.Len()
}

func newThreadSet(capacity int) *threadSet {
	return &threadSet{onList: make([]bool, capacity)}
}

func (t *threadSet) reset() {
	t.states = t.states[:0]
	for i := range t.onList {
		t.onList[i] = false
	}
}

// addThread follows epsilon transitions (StateSplit, StateEpsilon) from id,
// adding every StateRange/StateMatch state reached to the thread set. This
// is the NFA epsilon-closure step.
func (t *threadSet) addThread(n *NFA, id StateID) {
	if id == InvalidState || t.onList[id] {
		return
	}
	t.onList[id] = true
	s := n.State(id)
	switch s.kind {
	case StateSplit:
		t.addThread(n, s.left)
		t.addThread(n, s.right)
	case StateEpsilon:
		t.addThread(n, s.next)
	default:
		t.states = append(t.states, id)
	}
}

// Match describes one accepting length found while scanning input starting
// at a given position.
type Match struct {
	// Length is the number of runes consumed.
	Length int
	// Terminals is the union, in declaration order, of every matched
	// pattern's tag (spec.md §4.7: "terminals is the list of token IDs
	// whose regex matched, ordered by declaration").
	Terminals []interface{}
}

// Matches runs the NFA against input starting at pos and returns every
// distinct accepting length, longest first (spec.md §4.2: "NFA execution
// yields all distinct matches in longest-first order"). An empty result
// means no match; a legal empty match at pos is reported as a Match with
// Length 0.
func (n *NFA) Matches(input []rune, pos int) []Match {
	current := newThreadSet(len(n.states))
	next := newThreadSet(len(n.states))
	current.addThread(n, n.start)

	var found []Match
	recordMatches := func(length int) {
		var terms []interface{}
		seen := false
		for _, id := range current.states {
			s := n.State(id)
			if s.IsMatch() {
				seen = true
				terms = append(terms, s.Terminals()...)
			}
		}
		if seen {
			found = append(found, Match{Length: length, Terminals: terms})
		}
	}

	recordMatches(0)
	for i := pos; i < len(input) && len(current.states) > 0; i++ {
		r := input[i]
		next.reset()
		for _, id := range current.states {
			s := n.State(id)
			if s.kind == StateRange && s.char != nil && s.char.Contains(r) {
				next.addThread(n, s.next)
			}
		}
		current, next = next, current
		recordMatches(i - pos + 1)
	}

	// Reverse chronological (shortest-first) order to longest-first.
	for i, j := 0, len(found)-1; i < j; i, j = i+1, j-1 {
		found[i], found[j] = found[j], found[i]
	}
	return found
}

// LongestMatch returns only the longest accepting length, or ok=false if
// the NFA does not match at pos at all. This is the §4.2 `match` operation.
func (n *NFA) LongestMatch(input []rune, pos int) (m Match, ok bool) {
	all := n.Matches(input, pos)
	if len(all) == 0 {
		return Match{}, false
	}
	return all[0], true
}
