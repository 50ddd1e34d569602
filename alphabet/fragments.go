package alphabet

// Fragments accumulates Characters into their finest common refinement:
// appending a Character splits every existing fragment at each interval
// boundary it introduces, rather than merging as Character.Append does.
// This is the primitive behind turning a set of NFA transition labels into
// non-overlapping DFA transition labels during subset construction
// (spec.md §4.1, §4.2 stage 3).
//
// Unlike Character, Fragments never merges two fragments just because they
// are adjacent with no gap — only actual overlap causes a split. Two
// appended Characters that happen to be neighbors remain two fragments.
// This resolves an ambiguity spec.md leaves implicit; see SPEC_FULL.md §3,
// grounded on original_source/src/lepl/regexp/interval.py's Fragments,
// which has no before/after adjacency test (unlike Character.__append).
type Fragments struct {
	alphabet  Alphabet
	intervals []Interval
}

// NewFragments creates an empty Fragments over the given alphabet.
func NewFragments(a Alphabet) *Fragments {
	return &Fragments{alphabet: a}
}

// Len returns the number of fragments.
func (f *Fragments) Len() int { return len(f.intervals) }

// At returns the i'th fragment.
func (f *Fragments) At(i int) Interval { return f.intervals[i] }

// Intervals returns all fragments in ascending order.
func (f *Fragments) Intervals() []Interval { return f.intervals }

// Append refines the fragment list with every interval of character.
func (f *Fragments) Append(character *Character) {
	for _, iv := range character.Intervals() {
		f.appendInterval(iv)
	}
}

func (f *Fragments) appendInterval(interval Interval) {
	interval = interval.canonical()
	a1, b1 := interval.Lo, interval.Hi
	alpha := f.alphabet

	var out []Interval
	remaining := f.intervals
	done := false

	for len(remaining) > 0 && !done {
		a0, b0 := remaining[0].Lo, remaining[0].Hi
		remaining = remaining[1:]

		if a0 <= a1 {
			switch {
			case b0 < a1:
				out = append(out, Interval{a0, b0})
			case b1 <= b0:
				if a0 < a1 {
					if before, ok := alpha.Before(a1); ok {
						out = append(out, Interval{a0, before})
					}
				}
				out = append(out, Interval{a1, b1})
				if b1 < b0 {
					if after, ok := alpha.After(b1); ok {
						out = append(out, Interval{after, b0})
					}
				}
				done = true
			default:
				if a0 < a1 {
					if before, ok := alpha.Before(a1); ok {
						out = append(out, Interval{a0, before})
					}
				}
				out = append(out, Interval{a1, b0})
				if after, ok := alpha.After(b0); ok {
					a1 = after
				} else {
					done = true
				}
			}
		} else {
			switch {
			case b1 < a0:
				out = append(out, Interval{a1, b1}, Interval{a0, b0})
				done = true
			case b0 <= b1:
				if before, ok := alpha.Before(a0); ok {
					out = append(out, Interval{a1, before})
				}
				out = append(out, Interval{a0, b0})
				if b1 > b0 {
					if after, ok := alpha.After(b0); ok {
						a1 = after
					} else {
						done = true
					}
				} else {
					done = true
				}
			default:
				if before, ok := alpha.Before(a0); ok {
					out = append(out, Interval{a1, before})
				}
				out = append(out, Interval{a0, b1})
				if after, ok := alpha.After(b1); ok {
					out = append(out, Interval{after, b0})
				}
				done = true
			}
		}
	}
	if !done {
		out = append(out, Interval{a1, b1})
	}
	out = append(out, remaining...)
	f.intervals = out
}

// TaggedFragments is like Fragments, but each initial interval carries a tag
// value; overlapping fragments concatenate the tag lists of every interval
// that contributed to them, preserving insertion order. This is how the
// lexer's combined-tokens regex labels a DFA transition with every token ID
// whose pattern can take it, so that declaration order later breaks ties
// (spec.md §4.2, §4.7).
type TaggedFragments struct {
	alphabet  Alphabet
	intervals []taggedInterval
}

type taggedInterval struct {
	Interval
	tags []interface{}
}

// NewTaggedFragments creates an empty TaggedFragments over the given alphabet.
func NewTaggedFragments(a Alphabet) *TaggedFragments {
	return &TaggedFragments{alphabet: a}
}

// Len returns the number of tagged fragments.
func (f *TaggedFragments) Len() int { return len(f.intervals) }

// At returns the i'th fragment's interval and its tags (insertion order).
func (f *TaggedFragments) At(i int) (Interval, []interface{}) {
	ti := f.intervals[i]
	return ti.Interval, ti.tags
}

// Append adds every interval of character, each tagged with value.
func (f *TaggedFragments) Append(character *Character, value interface{}) {
	for _, iv := range character.Intervals() {
		f.appendInterval(iv, []interface{}{value})
	}
}

func (f *TaggedFragments) appendInterval(interval Interval, v1 []interface{}) {
	interval = interval.canonical()
	a1, b1 := interval.Lo, interval.Hi
	alpha := f.alphabet

	var out []taggedInterval
	remaining := f.intervals
	done := false

	concat := func(a, b []interface{}) []interface{} {
		out := make([]interface{}, 0, len(a)+len(b))
		out = append(out, a...)
		out = append(out, b...)
		return out
	}

	for len(remaining) > 0 && !done {
		cur := remaining[0]
		a0, b0, v0 := cur.Lo, cur.Hi, cur.tags
		remaining = remaining[1:]

		if a0 <= a1 {
			switch {
			case b0 < a1:
				out = append(out, taggedInterval{Interval{a0, b0}, v0})
			case b1 <= b0:
				if a0 < a1 {
					if before, ok := alpha.Before(a1); ok {
						out = append(out, taggedInterval{Interval{a0, before}, v0})
					}
				}
				out = append(out, taggedInterval{Interval{a1, b1}, concat(v0, v1)})
				if b1 < b0 {
					if after, ok := alpha.After(b1); ok {
						out = append(out, taggedInterval{Interval{after, b0}, v0})
					}
				}
				done = true
			default:
				if a0 < a1 {
					if before, ok := alpha.Before(a1); ok {
						out = append(out, taggedInterval{Interval{a0, before}, v0})
					}
				}
				out = append(out, taggedInterval{Interval{a1, b0}, concat(v0, v1)})
				if after, ok := alpha.After(b0); ok {
					a1 = after
				} else {
					done = true
				}
			}
		} else {
			switch {
			case b1 < a0:
				out = append(out, taggedInterval{Interval{a1, b1}, v1}, taggedInterval{Interval{a0, b0}, v0})
				done = true
			case b0 <= b1:
				if before, ok := alpha.Before(a0); ok {
					out = append(out, taggedInterval{Interval{a1, before}, v1})
				}
				out = append(out, taggedInterval{Interval{a0, b0}, concat(v0, v1)})
				if b1 > b0 {
					if after, ok := alpha.After(b0); ok {
						a1 = after
					} else {
						done = true
					}
				} else {
					done = true
				}
			default:
				if before, ok := alpha.Before(a0); ok {
					out = append(out, taggedInterval{Interval{a1, before}, v1})
				}
				out = append(out, taggedInterval{Interval{a0, b1}, concat(v0, v1)})
				if after, ok := alpha.After(b1); ok {
					out = append(out, taggedInterval{Interval{after, b0}, v0})
				}
				done = true
			}
		}
	}
	if !done {
		out = append(out, taggedInterval{Interval{a1, b1}, v1})
	}
	out = append(out, remaining...)
	f.intervals = out
}
