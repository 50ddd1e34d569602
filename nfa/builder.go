package nfa

import (
	"github.com/coregx/lepl/alphabet"
	"github.com/coregx/lepl/internal/conv"
)

// Builder constructs an NFA incrementally via Thompson construction,
// grounded on the dense-state-table Builder of github.com/coregx/coregex's
// nfa package and on the frag/ptr back-patching idiom of
// _examples/EnnnOK-matcher/matcher.go's Post2nfa — but directed by a
// recursive descent over a parsed regex tree (see compile.go) rather than
// a postfix token stream.
type Builder struct {
	alphabet alphabet.Alphabet
	states   []State
}

// NewBuilder creates a Builder over the given alphabet.
func NewBuilder(a alphabet.Alphabet) *Builder {
	return &Builder{alphabet: a}
}

// AddMatch appends a match state carrying the given terminal tags (nil for
// an untagged, plain regex) and returns its ID.
func (b *Builder) AddMatch(terminals []interface{}) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id, kind: StateMatch, terminals: terminals})
	return id
}

// AddRange appends a state that transitions to next on any code in char.
// next may be InvalidState to be patched later via patch.
func (b *Builder) AddRange(char *alphabet.Character, next StateID) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id, kind: StateRange, char: char, next: next})
	return id
}

// AddSplit appends an epsilon-split to left and right (either may be
// InvalidState to be patched later).
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id, kind: StateSplit, left: left, right: right})
	return id
}

// AddEpsilon appends a single epsilon transition to next.
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id, kind: StateEpsilon, next: next})
	return id
}

// dangling identifies one outgoing pointer of a not-yet-complete state,
// waiting to be patched to its real target once that target is known.
type dangling struct {
	state StateID
	which int // 0 = next/left, 1 = right
}

func (b *Builder) patchOne(d dangling, target StateID) {
	s := &b.states[d.state]
	switch s.kind {
	case StateRange, StateEpsilon:
		s.next = target
	case StateSplit:
		if d.which == 0 {
			s.left = target
		} else {
			s.right = target
		}
	}
}

// patch resolves every dangling pointer in outs to target.
func (b *Builder) patch(outs []dangling, target StateID) {
	for _, d := range outs {
		b.patchOne(d, target)
	}
}

// frag is an NFA fragment under construction: a single entry point plus a
// list of dangling exits still needing a target.
type frag struct {
	start StateID
	out   []dangling
}

// Build finalizes the NFA with the given entry fragment.
func (b *Builder) Build(start StateID) *NFA {
	return &NFA{Alphabet: b.alphabet, states: b.states, start: start}
}
