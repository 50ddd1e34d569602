package lepl

import (
	"testing"

	"github.com/coregx/lepl/lexer"
	"github.com/coregx/lepl/matcher"
	"github.com/coregx/lepl/rewrite"
	"github.com/coregx/lepl/stream"
	"github.com/coregx/lepl/trampoline"
)

// These mirror spec.md §8's end-to-end scenarios, each driven through the
// facade's public surface (or, where a scenario needs a rewriter directly,
// through package rewrite) rather than through any internal helper.

func TestScenarioNamePhoneLines(t *testing.T) {
	type record struct{ name, phone string }
	line := Transform(
		And(Regexp(" *"), Regexp("[a-zA-Z]+"), Literal(","), Regexp(" *"), Regexp("[0-9]+")),
		func(r Result) (interface{}, error) {
			return record{name: r[1].(string), phone: r[4].(string)}, nil
		},
	)
	records := Repeat(line, 1, -1, true, Separator(Literal("\n")))

	tr := trampoline.New(nil)
	pair, ok, err := tr.First(records, stream.New("<string>", "andrew, 3333253\n bob, 12345"))
	if err != nil || !ok {
		t.Fatalf("expected a match, err=%v ok=%v", err, ok)
	}
	if len(pair.Result) != 2 {
		t.Fatalf("expected 2 records, got %d: %v", len(pair.Result), pair.Result)
	}
	got0 := pair.Result[0].(record)
	got1 := pair.Result[1].(record)
	if got0 != (record{"andrew", "3333253"}) {
		t.Fatalf("unexpected first record %+v", got0)
	}
	if got1 != (record{"bob", "12345"}) {
		t.Fatalf("unexpected second record %+v", got1)
	}
}

func TestScenarioLeftRecursiveArithmeticIsAmbiguous(t *testing.T) {
	num := Regexp("[0-9]+")
	exprRef := Delayed()
	// Both operands recurse into expr itself (not a plain number), so the
	// grammar is genuinely ambiguous on "1+2*3": the split point between
	// the left and right operand of the outer operation is not fixed by
	// any precedence rule, only by where each alternative's Literal
	// happens to match.
	plus := Transform(And(exprRef.Matcher(), Literal("+"), exprRef.Matcher()), func(r Result) (interface{}, error) {
		return "(" + r[0].(string) + "+" + r[2].(string) + ")", nil
	})
	times := Transform(And(exprRef.Matcher(), Literal("*"), exprRef.Matcher()), func(r Result) (interface{}, error) {
		return "(" + r[0].(string) + "*" + r[2].(string) + ")", nil
	})
	expr := Or(LMemo(plus), LMemo(times), num)
	exprRef.Set(expr)

	tr := trampoline.New(nil)
	all, err := tr.All(exprRef.Matcher(), stream.New("<string>", "1+2*3"))
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, p := range all {
		if s, ok := p.Result[len(p.Result)-1].(string); ok {
			seen[s] = true
		}
	}
	for _, want := range []string{"((1+2)*3)", "(1+(2*3))"} {
		if !seen[want] {
			t.Errorf("expected ambiguous parse tree %q among results, got %v", want, seen)
		}
	}
}

func TestScenarioRegexCompileEquivalence(t *testing.T) {
	plain := Repeat(Any("ab"), 3, 5, true)
	compiled := rewrite.CompileRegexp(plain, rewrite.NFA)
	if compiled.Kind() != "NfaRegexp" {
		t.Fatalf("expected Repeat-over-Any to compile into one NfaRegexp, got %s", compiled.Kind())
	}

	for _, input := range []string{"abab", "aaaaa", "a"} {
		tr1 := trampoline.New(nil)
		want, err := tr1.All(plain, stream.New("<string>", input))
		if err != nil {
			t.Fatal(err)
		}
		tr2 := trampoline.New(nil)
		got, err := tr2.All(compiled, stream.New("<string>", input))
		if err != nil {
			t.Fatal(err)
		}
		if len(want) != len(got) {
			t.Fatalf("input %q: expected %d results uncompiled, got %d compiled", input, len(want), len(got))
		}
		for i := range want {
			if len(want[i].Result) != len(got[i].Result) {
				t.Fatalf("input %q result %d: length mismatch %v vs %v", input, i, want[i].Result, got[i].Result)
			}
		}
	}
}

func TestScenarioOffsidePythonLike(t *testing.T) {
	body := And(Indent(), Literal("a"), Literal("\n"), Indent(), Literal("b"))
	block := Block(body, func(current, observed int) int { return observed })
	program := And(Literal("if x:"), Literal("\n"), block, Literal("\n"), Indent(), Literal("c"))

	blocks := matcher.NewBlockState(func(current, observed int) int { return observed }, 4)
	tr := trampoline.New(blocks)
	_, ok, err := tr.First(program, stream.New("<string>", "if x:\n    a\n    b\nc"))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected the indented block body and trailing top-level line to match")
	}
}

func TestScenarioLexerDiscard(t *testing.T) {
	lex, err := lexer.New([]lexer.TokenDef{
		{ID: "WORD", Pattern: `[a-zA-Z]+`},
		{ID: "COMMA", Pattern: `,`},
	}, `\s+`)
	if err != nil {
		t.Fatal(err)
	}
	s := stream.New("<string>", " foo ,  bar ")
	var texts []string
	for !s.Empty() {
		em, err := lex.Next(s)
		if err != nil {
			t.Fatal(err)
		}
		texts = append(texts, em.Text)
		s = em.Next
	}
	if len(texts) != 3 || texts[0] != "foo" || texts[1] != "," || texts[2] != "bar" {
		t.Fatalf("expected [foo , bar], got %v", texts)
	}
}

func TestScenarioFullMatchFailureReportsOffset(t *testing.T) {
	wrapped := rewrite.FullMatch(Literal("abc"), true)
	tr := trampoline.New(nil)
	_, ok, err := tr.First(wrapped, stream.New("<string>", "abcd"))
	if ok {
		t.Fatal("expected eos=true to reject the unconsumed trailing d")
	}
	fmErr, isFM := err.(*rewrite.FullMatchError)
	if !isFM {
		t.Fatalf("expected *rewrite.FullMatchError, got %T (%v)", err, err)
	}
	if fmErr.Furthest != 3 {
		t.Fatalf("expected the diagnostic to point at offset 3, got %d", fmErr.Furthest)
	}
}
