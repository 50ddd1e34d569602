package dfa

import (
	"sort"

	"github.com/coregx/lepl/alphabet"
)

// StateID identifies a single DFA state.
type StateID uint32

// DeadState is the DFA's unique failure state: no outgoing transitions, not
// accepting. Every State.Step that finds no matching range returns it.
const DeadState StateID = 0

// Transition is one outgoing edge: any code in Interval goes to Target.
// A State's transitions are sorted by Interval.Lo and pairwise disjoint,
// so Step can binary-search them (spec.md §3 invariant: "a DFA has no
// ε-edges and no two outgoing edges from the same state overlap").
type Transition struct {
	Interval alphabet.Interval
	Target   StateID
}

// State is one DFA node.
type State struct {
	transitions []Transition
	isMatch     bool
	terminals   []interface{}
}

// IsMatch reports whether reaching this state is an accepting position.
func (s *State) IsMatch() bool { return s.isMatch }

// Terminals returns the terminal tags reported at this accepting state, in
// declaration order (empty for an untagged plain regex).
func (s *State) Terminals() []interface{} { return s.terminals }

// Step returns the state reached by consuming code r, or DeadState if no
// transition covers it.
func (s *State) Step(r rune) StateID {
	ts := s.transitions
	i := sort.Search(len(ts), func(i int) bool { return ts[i].Interval.Hi >= r })
	if i < len(ts) && ts[i].Interval.Lo <= r {
		return ts[i].Target
	}
	return DeadState
}

// DFA is a compiled, deterministic automaton: dense StateID-indexed state
// table plus an entry point. Immutable once Build returns.
type DFA struct {
	Alphabet alphabet.Alphabet
	states   []State
	start    StateID
}

// State returns the state with the given ID.
func (d *DFA) State(id StateID) *State { return &d.states[id] }

// Start returns the entry state.
func (d *DFA) Start() StateID { return d.start }

// Len returns the number of states, including the dead state at index 0.
func (d *DFA) Len() int { return len(d.states) }
