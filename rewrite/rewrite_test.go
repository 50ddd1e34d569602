package rewrite

import (
	"testing"

	"github.com/coregx/lepl/lexer"
	"github.com/coregx/lepl/matcher"
	"github.com/coregx/lepl/stream"
	"github.com/coregx/lepl/trampoline"
)

func firstResult(t *testing.T, m matcher.Matcher, s stream.Stream) (matcher.Result, bool, error) {
	t.Helper()
	tr := trampoline.New(nil)
	p, ok, err := tr.First(m, s)
	return p.Result, ok, err
}

func allResults(t *testing.T, m matcher.Matcher, s stream.Stream) []matcher.Result {
	t.Helper()
	tr := trampoline.New(nil)
	all, err := tr.All(m, s)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]matcher.Result, len(all))
	for i, p := range all {
		out[i] = p.Result
	}
	return out
}

func TestFlattenCollapsesNestedAndAndOr(t *testing.T) {
	nested := matcher.And(matcher.And(matcher.Literal("a"), matcher.Literal("b")), matcher.Literal("c"))
	flat := Flatten(nested)
	if len(flat.Children()) != 3 {
		t.Fatalf("expected 3 flattened children, got %d", len(flat.Children()))
	}
	r, ok, err := firstResult(t, flat, stream.New("<string>", "abc"))
	if err != nil || !ok {
		t.Fatalf("expected a match, err=%v ok=%v", err, ok)
	}
	if len(r) != 3 || r[0] != "a" || r[1] != "b" || r[2] != "c" {
		t.Fatalf("unexpected result %v", r)
	}

	nestedOr := matcher.Or(matcher.Or(matcher.Literal("x"), matcher.Literal("y")), matcher.Literal("z"))
	flatOr := Flatten(nestedOr)
	if len(flatOr.Children()) != 3 {
		t.Fatalf("expected 3 flattened Or children, got %d", len(flatOr.Children()))
	}
}

func TestComposeTransformsFusesNestedTransformOverLeaf(t *testing.T) {
	inner := matcher.Transform(matcher.Literal("a"), func(r matcher.Result) (interface{}, error) {
		return r[0].(string) + "1", nil
	})
	outer := matcher.Transform(inner, func(r matcher.Result) (interface{}, error) {
		return r[0].(string) + "2", nil
	})
	fused := ComposeTransforms(outer)
	if fused.Kind() != "Transform" {
		t.Fatalf("expected Transform, got %s", fused.Kind())
	}
	if fused.Children()[0].Kind() != "Literal" {
		t.Fatalf("expected the fused Transform to wrap the leaf directly, got %s", fused.Children()[0].Kind())
	}
	r, ok, err := firstResult(t, fused, stream.New("<string>", "a"))
	if err != nil || !ok {
		t.Fatalf("expected a match, err=%v ok=%v", err, ok)
	}
	if r[0] != "a12" {
		t.Fatalf("expected fused transform output a12, got %v", r[0])
	}
}

func TestOptimizeOrMovesRecursiveBranchLast(t *testing.T) {
	delayed := matcher.Delayed()
	or := matcher.Or(
		matcher.And(delayed.Matcher(), matcher.Literal("+1")),
		matcher.Literal("1"),
	)
	delayed.Set(or)

	reordered := OptimizeOr(or, true)
	if reordered.Kind() != "Or" {
		t.Fatalf("expected Or, got %s", reordered.Kind())
	}
	children := reordered.Children()
	if children[0].Kind() != "Literal" {
		t.Fatalf("expected the non-recursive literal branch first, got %s", children[0].Kind())
	}
}

func TestAutoMemoizeWrapsCycleInLMemo(t *testing.T) {
	delayed := matcher.Delayed()
	expr := matcher.Or(
		matcher.Transform(matcher.And(delayed.Matcher(), matcher.Literal("+1")), func(r matcher.Result) (interface{}, error) {
			return r[0].(int) + 1, nil
		}),
		matcher.Transform(matcher.Literal("1"), func(matcher.Result) (interface{}, error) { return 1, nil }),
	)
	delayed.Set(expr)

	memoized := AutoMemoize(expr, true, false)
	results := allResults(t, memoized, stream.New("<string>", "1+1+1"))
	if len(results) == 0 {
		t.Fatal("expected left-recursive grammar to terminate and produce results once auto-memoized")
	}
}

func TestCompileRegexpCollapsesLiteralAlternationIntoOneNode(t *testing.T) {
	g := matcher.Or(matcher.Literal("cat"), matcher.Literal("dog"))
	compiled := CompileRegexp(g, NFA)
	if compiled.Kind() != "NfaRegexp" {
		t.Fatalf("expected the whole Or to collapse into one NfaRegexp, got %s", compiled.Kind())
	}
	r, ok, err := firstResult(t, compiled, stream.New("<string>", "dog"))
	if err != nil || !ok {
		t.Fatalf("expected a match, err=%v ok=%v", err, ok)
	}
	if r[0] != "dog" {
		t.Fatalf("expected dog, got %v", r[0])
	}
}

func TestCompileRegexpLeavesNonRegexNodesAlone(t *testing.T) {
	g := matcher.And(matcher.Literal("a"), matcher.Lookahead(matcher.Literal("b"), false))
	compiled := CompileRegexp(g, NFA)
	if compiled.Kind() != "And" {
		t.Fatalf("expected the outer And to survive unchanged, got %s", compiled.Kind())
	}
}

func TestSetBlockPolicyRebindsEveryBlock(t *testing.T) {
	noop := func(current, observed int) int { return observed }
	g := matcher.Block(matcher.Indent(), noop)

	blocks1 := matcher.NewBlockState(nil, 4)
	tr1 := trampoline.New(blocks1)
	_, ok1, err1 := tr1.First(g, stream.New("<string>", "  x"))
	if err1 != nil || !ok1 {
		t.Fatalf("expected the identity policy to accept its own observed indent, err=%v ok=%v", err1, ok1)
	}

	// Rebinding to a policy that requires one more than what it just
	// observed makes the block's own leading Indent() check impossible to
	// satisfy — proof the rebound policy, not the original, is in effect.
	impossible := func(current, observed int) int { return observed + 1 }
	rebound := SetBlockPolicy(g, impossible)
	blocks2 := matcher.NewBlockState(nil, 4)
	tr2 := trampoline.New(blocks2)
	_, ok2, err2 := tr2.First(rebound, stream.New("<string>", "  x"))
	if err2 != nil {
		t.Fatal(err2)
	}
	if ok2 {
		t.Fatal("expected the rebound policy to make the block's own indent check fail")
	}
}

func TestAddLexerReplacesTokenWithSharedLexerLookup(t *testing.T) {
	lex, err := lexer.New([]lexer.TokenDef{
		{ID: "WORD", Pattern: `[a-z]+`},
		{ID: "NUM", Pattern: `[0-9]+`},
	}, "")
	if err != nil {
		t.Fatal(err)
	}
	g := matcher.Or(matcher.Token(`[0-9]+`, false, "NUM"), matcher.Token(`[a-z]+`, false, "WORD"))
	wired := AddLexer(g, lex)
	r, ok, err := firstResult(t, wired, stream.New("<string>", "42"))
	if err != nil || !ok {
		t.Fatalf("expected a match, err=%v ok=%v", err, ok)
	}
	if r[0] != "42" {
		t.Fatalf("expected 42, got %v", r[0])
	}
}

func TestFullMatchFailsLoudlyWithNoResult(t *testing.T) {
	g := matcher.Literal("a")
	wrapped := FullMatch(g, false)
	tr := trampoline.New(nil)
	_, ok, err := tr.First(wrapped, stream.New("<string>", "b"))
	if ok {
		t.Fatal("expected no match")
	}
	if err == nil {
		t.Fatal("expected a FullMatchError")
	}
	if _, ok := err.(*FullMatchError); !ok {
		t.Fatalf("expected *FullMatchError, got %T", err)
	}
}

func TestFullMatchEosRequiresEntireInputConsumed(t *testing.T) {
	g := matcher.Literal("a")
	wrapped := FullMatch(g, true)
	tr := trampoline.New(nil)
	_, ok, err := tr.First(wrapped, stream.New("<string>", "ab"))
	if ok {
		t.Fatal("expected eos=true to reject a partial match leaving input")
	}
	if err == nil {
		t.Fatal("expected a FullMatchError when eos requires full consumption")
	}
}

func TestDirectEvaluationIsIdentity(t *testing.T) {
	g := matcher.Literal("a")
	if DirectEvaluation(g) != g {
		t.Fatal("expected DirectEvaluation to return its input unchanged")
	}
}
