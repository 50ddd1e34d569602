package trampoline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coregx/lepl/matcher"
	"github.com/coregx/lepl/stream"
)

func TestFirstReturnsOnlyFirstResult(t *testing.T) {
	g := matcher.Or(matcher.Literal("a"), matcher.Literal("ab"))
	tr := New(nil)
	s := stream.New("<string>", "ab")
	p, ok, err := tr.First(g, s)
	if err != nil || !ok {
		t.Fatalf("expected a match, err=%v ok=%v", err, ok)
	}
	if p.Result[0] != "a" {
		t.Fatalf("expected the declaration-first alternative, got %v", p.Result)
	}
}

func TestAllReturnsEveryResult(t *testing.T) {
	g := matcher.Or(matcher.Literal("a"), matcher.Literal("ab"))
	tr := New(nil)
	s := stream.New("<string>", "ab")
	all, err := tr.All(g, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 results, got %d", len(all))
	}
}

func TestTraceResultsWritesPushPop(t *testing.T) {
	var buf bytes.Buffer
	trace := NewTraceResults(&buf)
	tr := New(nil, trace)
	g := matcher.Literal("x")
	s := stream.New("<string>", "x")
	if _, _, err := tr.First(g, s); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "-> Literal") || !strings.Contains(out, "<- Literal") {
		t.Fatalf("expected trace to record push/pop of Literal, got %q", out)
	}
}

func TestGeneratorManagerFlagsExcessiveDepth(t *testing.T) {
	gm := NewGeneratorManager(2)
	tr := New(nil, gm)
	g := matcher.And(matcher.Literal("a"), matcher.Literal("b"), matcher.Literal("c"))
	s := stream.New("<string>", "abc")
	if _, _, err := tr.First(g, s); err != nil {
		t.Fatal(err)
	}
	if !gm.Exceeded {
		t.Fatal("expected depth cap to trip for 3 nested matchers with maxDepth 2")
	}
}
