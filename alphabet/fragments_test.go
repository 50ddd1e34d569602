package alphabet

import "testing"

func TestFragmentsRefinement(t *testing.T) {
	f := NewFragments(Bytes)
	f.Append(NewCharacter(Bytes, Interval{'a', 'd'}))
	f.Append(NewCharacter(Bytes, Interval{'c', 'f'}))
	// a-d and c-f overlap on c-d: finest refinement is a-b, c-d, e-f.
	want := []Interval{{'a', 'b'}, {'c', 'd'}, {'e', 'f'}}
	got := f.Intervals()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fragment %d: got %v, want %v", i, got, want)
		}
	}
}

func TestFragmentsDoNotMergeAdjacent(t *testing.T) {
	// Unlike Character, Fragments must not merge merely-adjacent, non
	// overlapping intervals (SPEC_FULL.md §3, grounded on lepl's
	// Fragments.__append having no before/after adjacency test).
	f := NewFragments(Bytes)
	f.Append(NewCharacter(Bytes, Interval{'a', 'c'}))
	f.Append(NewCharacter(Bytes, Interval{'d', 'f'}))
	want := []Interval{{'a', 'c'}, {'d', 'f'}}
	got := f.Intervals()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v (adjacent fragments must stay separate)", got, want)
	}
}

func TestFragmentsCoverEveryInputInterval(t *testing.T) {
	// spec.md §8 invariant 2: every input interval is exactly covered by a
	// union of result intervals, and no result interval straddles two
	// inputs' boundaries.
	inputs := []Interval{{'a', 'm'}, {'g', 'z'}, {'a', 'z'}}
	f := NewFragments(Bytes)
	for _, iv := range inputs {
		f.Append(NewCharacter(Bytes, iv))
	}
	for _, in := range inputs {
		covered := make(map[rune]bool)
		for code := in.Lo; code <= in.Hi; code++ {
			covered[code] = false
		}
		for _, frag := range f.Intervals() {
			if frag.Lo >= in.Lo && frag.Hi <= in.Hi {
				for code := frag.Lo; code <= frag.Hi; code++ {
					covered[code] = true
				}
			} else if frag.Lo <= in.Hi && frag.Hi >= in.Lo {
				// a straddling fragment must not partially poke outside in
				// while also being partially inside — that would mean the
				// original interval boundary was not respected.
				if frag.Lo < in.Lo || frag.Hi > in.Hi {
					t.Fatalf("fragment %v straddles boundary of input %v", frag, in)
				}
			}
		}
		for code, ok := range covered {
			if !ok {
				t.Fatalf("code %q of input %v not covered by any fragment", code, in)
			}
		}
	}
}

func TestTaggedFragmentsPreservesTagOrder(t *testing.T) {
	f := NewTaggedFragments(Bytes)
	f.Append(NewCharacter(Bytes, Interval{'a', 'f'}), "first")
	f.Append(NewCharacter(Bytes, Interval{'c', 'h'}), "second")

	found := false
	for i := 0; i < f.Len(); i++ {
		iv, tags := f.At(i)
		if iv == (Interval{'c', 'f'}) {
			found = true
			if len(tags) != 2 || tags[0] != "first" || tags[1] != "second" {
				t.Fatalf("expected tags [first second] in declaration order, got %v", tags)
			}
		}
	}
	if !found {
		t.Fatal("expected an overlap fragment c-f carrying both tags")
	}
}
