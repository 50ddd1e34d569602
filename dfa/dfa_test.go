package dfa

import (
	"reflect"
	"testing"

	"github.com/coregx/lepl/nfa"
)

func buildFrom(t *testing.T, src string) *DFA {
	t.Helper()
	n, err := nfa.Compile(src, nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	d, err := Build(n, DefaultBuildConfig())
	if err != nil {
		t.Fatalf("build %q: %v", src, err)
	}
	return d
}

func TestDFALiteralMatch(t *testing.T) {
	d := buildFrom(t, "abc")
	m, ok := d.LongestMatch([]rune("abcd"), 0)
	if !ok || m.Length != 3 {
		t.Fatalf("expected length 3, got %v ok=%v", m, ok)
	}
	if _, ok := d.LongestMatch([]rune("xyz"), 0); ok {
		t.Fatal("expected no match")
	}
}

func TestDFAStarTakesLongest(t *testing.T) {
	d := buildFrom(t, "a*")
	m, ok := d.LongestMatch([]rune("aaab"), 0)
	if !ok || m.Length != 3 {
		t.Fatalf("expected longest length 3, got %v ok=%v", m, ok)
	}
}

func TestDFACharClass(t *testing.T) {
	d := buildFrom(t, "[a-c]+")
	m, ok := d.LongestMatch([]rune("abccba9"), 0)
	if !ok || m.Length != 6 {
		t.Fatalf("expected length 6, got %v ok=%v", m, ok)
	}
}

func TestDFATransitionsAreDisjoint(t *testing.T) {
	d := buildFrom(t, "[a-m]|[g-z]")
	for i := 0; i < d.Len(); i++ {
		st := d.State(StateID(i))
		for a := 0; a < len(st.transitions); a++ {
			for b := a + 1; b < len(st.transitions); b++ {
				if st.transitions[a].Interval.Lo <= st.transitions[b].Interval.Hi &&
					st.transitions[b].Interval.Lo <= st.transitions[a].Interval.Hi {
					t.Fatalf("state %d has overlapping transitions %v and %v", i, st.transitions[a], st.transitions[b])
				}
			}
		}
	}
	m, ok := d.LongestMatch([]rune("pqr"), 0)
	if !ok || m.Length != 1 {
		t.Fatalf("expected the single-character alternation to match p (length 1), got %v ok=%v", m, ok)
	}
}

func TestDFATaggedTerminalsInDeclarationOrder(t *testing.T) {
	n, err := nfa.CompileTagged([]nfa.TaggedPattern{
		{Source: "foo", Tag: "FOO"},
		{Source: "[a-z]+", Tag: "WORD"},
	}, nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatal(err)
	}
	d, err := Build(n, DefaultBuildConfig())
	if err != nil {
		t.Fatal(err)
	}
	m, ok := d.LongestMatch([]rune("foo"), 0)
	if !ok || m.Length != 3 {
		t.Fatalf("expected length 3, got %v ok=%v", m, ok)
	}
	if !reflect.DeepEqual(m.Terminals, []interface{}{"FOO", "WORD"}) {
		t.Fatalf("expected terminals [FOO WORD], got %v", m.Terminals)
	}
}
