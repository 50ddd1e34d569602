package alphabet

import (
	"sort"
	"strings"
)

// Character is a set of Alphabet codes expressed as a list of disjoint,
// ascending, non-adjacent intervals. Two intervals (a,b) and (c,d) with
// c == alphabet.After(b) are adjacent and merged into (a,d) on Append —
// this is the normalization invariant of spec.md §3.
type Character struct {
	alphabet  Alphabet
	intervals []Interval
	bounds    []rune // cached upper bound of each interval, for bisection
	str       string
}

// NewCharacter builds a Character from zero or more intervals, merging and
// normalizing as each is added.
func NewCharacter(a Alphabet, intervals ...Interval) *Character {
	c := &Character{alphabet: a}
	for _, iv := range intervals {
		c.Append(iv)
	}
	return c
}

// Alphabet returns the Character's alphabet.
func (c *Character) Alphabet() Alphabet { return c.alphabet }

// Len returns the number of disjoint intervals.
func (c *Character) Len() int { return len(c.intervals) }

// At returns the i'th interval (0-indexed, ascending).
func (c *Character) At(i int) Interval { return c.intervals[i] }

// Intervals returns the normalized intervals in ascending order. The
// returned slice must not be mutated by the caller.
func (c *Character) Intervals() []Interval { return c.intervals }

// Append adds an interval to the set, merging it with any overlapping or
// adjacent existing intervals. This is a direct port of lepl's
// Character.__append (original_source/src/lepl/regexp/interval.py):
// walk the existing ascending interval list once, and at each step decide
// whether the old interval lies entirely before the new one (keep and
// continue), entirely swallows it (keep, done), partially overlaps from
// the left (extend the new interval and keep scanning), or the symmetric
// three cases with old and new reversed.
func (c *Character) Append(interval Interval) {
	interval = interval.canonical()
	a1, b1 := interval.Lo, interval.Hi

	var out []Interval
	remaining := c.intervals
	done := false

	for len(remaining) > 0 && !done {
		a0, b0 := remaining[0].Lo, remaining[0].Hi
		remaining = remaining[1:]

		if a0 <= a1 {
			after, ok := c.alphabet.After(b0)
			switch {
			case b0 < a1 && (!ok || after != a1):
				// old interval ends strictly before new, with a gap: keep old, continue.
				out = append(out, Interval{a0, b0})
			case b1 <= b0:
				// old interval swallows new: keep old, new is absorbed.
				out = append(out, Interval{a0, b0})
				done = true
			default:
				// old interval overlaps or directly abuts new from the left:
				// merge into the new interval and keep scanning, since it may
				// overlap further intervals.
				a1 = a0
			}
		} else {
			before, ok := c.alphabet.Before(a0)
			switch {
			case b1 < a0 && (!ok || before != b1):
				// new interval ends strictly before old, with a gap: emit both, done.
				out = append(out, Interval{a1, b1}, Interval{a0, b0})
				done = true
			case b0 <= b1:
				// new interval swallows old: drop old, keep scanning with new.
			default:
				// new interval overlaps old from the left but ends inside it:
				// extend new interval to cover old and stop (nothing further
				// can overlap since b1 was < b0).
				out = append(out, Interval{a1, b0})
				done = true
			}
		}
	}
	if !done {
		out = append(out, Interval{a1, b1})
	}
	out = append(out, remaining...)

	c.intervals = out
	c.rebuildIndex()
}

func (c *Character) rebuildIndex() {
	c.bounds = make([]rune, len(c.intervals))
	for i, iv := range c.intervals {
		c.bounds[i] = iv.Hi
	}
	c.str = fmtIntervals(c.alphabet, c.intervals)
}

// Contains reports whether code lies within one of the set's intervals,
// located by bisecting on the cached upper bounds — O(log n).
func (c *Character) Contains(code rune) bool {
	if len(c.bounds) == 0 {
		return false
	}
	i := sort.Search(len(c.bounds), func(i int) bool { return c.bounds[i] >= code })
	if i >= len(c.intervals) {
		return false
	}
	iv := c.intervals[i]
	return iv.Lo <= code && code <= iv.Hi
}

// IsEmpty reports whether the Character matches no code at all. An empty
// Character is legal (spec.md §4.1 edge case) and simply never Contains
// anything.
func (c *Character) IsEmpty() bool { return len(c.intervals) == 0 }

// String returns the canonical textual form, also used for hashing/equality.
func (c *Character) String() string { return c.str }

// Equal reports whether two Characters describe the same set of codes.
func (c *Character) Equal(other *Character) bool {
	return other != nil && c.str == other.str
}

func fmtIntervals(a Alphabet, intervals []Interval) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, iv := range intervals {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(iv.String())
	}
	b.WriteByte(']')
	return b.String()
}
