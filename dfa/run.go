package dfa

// Match describes the longest accepting position found scanning forward
// from a start position. Unlike nfa.NFA.Matches, a DFA walk never
// backtracks and cannot enumerate every accepting length in one pass — it
// only ever knows the single current state — so callers needing every
// ambiguous length (spec.md §4.2's full longest-first list) compile to an
// NFA instead. A DFA trades that enumeration away for O(length) execution
// with no thread-list bookkeeping, which is the point of compiling one at
// all (spec.md §4.1: "a DFA is an optional, stricter-but-faster compile
// target for grammars that don't need backtracking").
type Match struct {
	Length    int
	Terminals []interface{}
}

// LongestMatch walks the DFA from pos, remembering the most recent
// accepting state seen, and returns it once the walk runs off either the
// input or the DFA's dead state.
func (d *DFA) LongestMatch(input []rune, pos int) (m Match, ok bool) {
	state := d.start
	length := 0

	check := func(s StateID, n int) {
		st := d.State(s)
		if st.IsMatch() {
			m = Match{Length: n, Terminals: st.Terminals()}
			ok = true
		}
	}
	check(state, 0)

	for i := pos; i < len(input); i++ {
		state = d.State(state).Step(input[i])
		if state == DeadState {
			break
		}
		length = i - pos + 1
		check(state, length)
	}
	return m, ok
}
