package nfa

import "github.com/coregx/lepl/alphabet"

// StateID identifies a single NFA state. Dense, allocated by a counter —
// this is the "module-level mutable counter" design note of spec.md §9,
// replaced by an explicit per-Builder counter instead of a class-level one.
type StateID uint32

// InvalidState marks an unpatched or absent transition.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies which fields of a State are meaningful.
type StateKind uint8

const (
	// StateMatch is an accepting state. Terminals carries the terminal
	// tags to report (used by the lexer's combined-tokens regex to
	// identify which token(s) matched; empty for a plain Regexp matcher).
	StateMatch StateKind = iota
	// StateRange transitions to Next on any code in Char.
	StateRange
	// StateSplit is an epsilon transition to two states, used for
	// alternation and repetition.
	StateSplit
	// StateEpsilon transitions to Next without consuming input.
	StateEpsilon
)

// State is one node of the NFA, stored in a dense, StateID-indexed table
// (State.id == its own index) mirroring github.com/coregx/coregex's
// nfa.State layout, generalized from byte ranges to alphabet.Character
// ranges.
type State struct {
	id    StateID
	kind  StateKind
	char  *alphabet.Character // StateRange
	next  StateID              // StateRange, StateEpsilon
	left  StateID              // StateSplit
	right StateID              // StateSplit

	terminals []interface{} // StateMatch
}

func (s *State) ID() StateID      { return s.id }
func (s *State) Kind() StateKind  { return s.kind }
func (s *State) IsMatch() bool    { return s.kind == StateMatch }
func (s *State) Char() *alphabet.Character { return s.char }
func (s *State) Next() StateID    { return s.next }
func (s *State) Split() (StateID, StateID) { return s.left, s.right }
func (s *State) Terminals() []interface{}  { return s.terminals }

// NFA is a compiled Thompson construction: a dense state table plus the
// entry point. It is immutable once Compile returns.
type NFA struct {
	Alphabet alphabet.Alphabet
	states   []State
	start    StateID
}

// State returns the state with the given ID.
func (n *NFA) State(id StateID) *State { return &n.states[id] }

// Start returns the entry state.
func (n *NFA) Start() StateID { return n.start }

// Len returns the number of states.
func (n *NFA) Len() int { return len(n.states) }
