package dfa

import (
	"github.com/coregx/lepl/alphabet"
	"github.com/coregx/lepl/internal/conv"
	"github.com/coregx/lepl/internal/sparse"
	"github.com/coregx/lepl/nfa"
)

// BuildConfig bounds subset construction.
type BuildConfig struct {
	// MaxStates caps the number of distinct DFA states subset construction
	// may produce before giving up with ErrTooManyStates.
	MaxStates int
}

// DefaultBuildConfig returns sensible defaults.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{MaxStates: 4096}
}

// Build performs eager subset construction (the classical Rabin-Scott
// powerset algorithm), turning n into an equivalent DFA. Outgoing ranges
// from each subset are computed via alphabet.TaggedFragments so that the
// resulting transitions are disjoint and carry the declaration-ordered
// union of every contributing NFA match state's terminal tags (spec.md §4.2
// stage 3, grounded on github.com/coregx/coregex's dfa/lazy determinization
// loop — generalized from a byte-indexed transition function to one over
// alphabet.Character ranges via Fragments refinement instead of a 256-way
// byte table).
func Build(n *nfa.NFA, config BuildConfig) (*DFA, error) {
	if config.MaxStates == 0 {
		config = DefaultBuildConfig()
	}

	closureOf := func(ids []nfa.StateID) []nfa.StateID {
		set := sparse.NewSparseSet(conv.IntToUint32(n.Len()))
		var walk func(id nfa.StateID)
		walk = func(id nfa.StateID) {
			if id == nfa.InvalidState || set.Contains(uint32(id)) {
				return
			}
			set.Insert(uint32(id))
			s := n.State(id)
			switch s.Kind() {
			case nfa.StateSplit:
				l, r := s.Split()
				walk(l)
				walk(r)
			case nfa.StateEpsilon:
				walk(s.Next())
			}
		}
		for _, id := range ids {
			walk(id)
		}
		out := make([]nfa.StateID, 0, set.Size())
		set.Iter(func(v uint32) { out = append(out, nfa.StateID(v)) })
		return out
	}

	keyOf := func(ids []nfa.StateID) string {
		set := sparse.NewSparseSet(conv.IntToUint32(n.Len()))
		for _, id := range ids {
			set.Insert(uint32(id))
		}
		return keyString(set.SortedKey())
	}

	b := &builder{alphabet: n.Alphabet}
	// Reserve index 0 for the permanent dead state.
	b.states = append(b.states, State{})

	type pending struct {
		id   StateID
		nfas []nfa.StateID
	}

	seen := map[string]StateID{}
	startClosure := closureOf([]nfa.StateID{n.Start()})
	startID := b.allocate(startClosure, n)
	seen[keyOf(startClosure)] = startID
	queue := []pending{{id: startID, nfas: startClosure}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		frags := alphabet.NewTaggedFragments(b.alphabet)
		for _, id := range cur.nfas {
			s := n.State(id)
			if s.Kind() == nfa.StateRange && s.Char() != nil && !s.Char().IsEmpty() {
				frags.Append(s.Char(), id)
			}
		}

		for i := 0; i < frags.Len(); i++ {
			iv, tags := frags.At(i)
			nextStates := make([]nfa.StateID, 0, len(tags))
			for _, t := range tags {
				src := t.(nfa.StateID)
				nextStates = append(nextStates, n.State(src).Next())
			}
			closure := closureOf(nextStates)
			if len(closure) == 0 {
				continue
			}
			k := keyOf(closure)
			target, ok := seen[k]
			if !ok {
				if len(b.states) >= config.MaxStates {
					return nil, &ErrTooManyStates{Limit: config.MaxStates}
				}
				target = b.allocate(closure, n)
				seen[k] = target
				queue = append(queue, pending{id: target, nfas: closure})
			}
			b.states[cur.id].transitions = append(b.states[cur.id].transitions, Transition{Interval: iv, Target: target})
		}
	}

	return &DFA{Alphabet: b.alphabet, states: b.states, start: startID}, nil
}

type builder struct {
	alphabet alphabet.Alphabet
	states   []State
}

// allocate appends a new DFA state representing the given NFA subset and
// returns its ID. Match/terminal info is derived from whichever subset
// members are NFA match states, unioned in declaration order.
func (b *builder) allocate(subset []nfa.StateID, n *nfa.NFA) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	st := State{}
	for _, nid := range subset {
		s := n.State(nid)
		if s.IsMatch() {
			st.isMatch = true
			st.terminals = append(st.terminals, s.Terminals()...)
		}
	}
	b.states = append(b.states, st)
	return id
}

func keyString(ids []uint32) string {
	// A compact, allocation-light canonical key: each ID as 4 bytes.
	buf := make([]byte, len(ids)*4)
	for i, id := range ids {
		buf[i*4] = byte(id)
		buf[i*4+1] = byte(id >> 8)
		buf[i*4+2] = byte(id >> 16)
		buf[i*4+3] = byte(id >> 24)
	}
	return string(buf)
}
