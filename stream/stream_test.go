package stream

import "testing"

func TestNextAdvancesAndTracksMax(t *testing.T) {
	s := New("<string>", "hello world")
	chunk, next := s.Next(5)
	if string(chunk) != "hello" {
		t.Fatalf("got %q", string(chunk))
	}
	if next.Pos() != 5 {
		t.Fatalf("expected pos 5, got %d", next.Pos())
	}
	if s.source.Max.Pos() != 5 {
		t.Fatalf("expected Max to observe 5, got %d", s.source.Max.Pos())
	}
}

func TestEmpty(t *testing.T) {
	s := New("<string>", "ab")
	_, s = s.Next(2)
	if !s.Empty() {
		t.Fatal("expected stream exhausted")
	}
}

func TestLineIncludesOrExcludesEOL(t *testing.T) {
	s := New("<string>", "first\nsecond")
	line, next := s.Line(false)
	if line != "first" {
		t.Fatalf("got %q", line)
	}
	line2, _ := next.Line(true)
	if line2 != "second" {
		t.Fatalf("got %q", line2)
	}
}

func TestSubstreamSharesMax(t *testing.T) {
	s := New("<string>", "abcdef")
	_, s = s.Next(3)
	sub := s.Substream("xyz", "token")
	_, sub = sub.Next(3)
	if s.source.Max.Pos() != 3 {
		t.Fatalf("expected root Max unaffected by substream advance (3), got %d", s.source.Max.Pos())
	}
	if sub.source.Max != s.source.Max {
		t.Fatalf("expected the substream to share the root stream's Max marker")
	}
	// the substream's advance reports its own offset (3) to the *shared*
	// Max, which does not exceed the recorded 3; Max only ever grows.
	if sub.source.Max.Pos() < 3 {
		t.Fatalf("shared Max should never shrink below 3, got %d", sub.source.Max.Pos())
	}
}

func TestKeyDistinguishesPositions(t *testing.T) {
	s := New("<string>", "abcdef")
	_, s2 := s.Next(2)
	if s.Key() == s2.Key() {
		t.Fatal("expected distinct keys at distinct positions")
	}
}
