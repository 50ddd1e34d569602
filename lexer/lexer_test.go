package lexer

import (
	"testing"

	"github.com/coregx/lepl/stream"
)

func TestLiteralFastPathMatchesLongestDeclarationOrder(t *testing.T) {
	defs := []TokenDef{
		{ID: "IF", Pattern: "if"},
		{ID: "IDENT_IF", Pattern: "if"},
		{ID: "ASSIGN", Pattern: "="},
	}
	l, err := New(defs, "")
	if err != nil {
		t.Fatal(err)
	}
	if l.literal == nil {
		t.Fatal("expected the all-literal fast path to build an automaton")
	}
	s := stream.New("<string>", "if=")
	em, err := l.Next(s)
	if err != nil {
		t.Fatal(err)
	}
	if em.Text != "if" {
		t.Fatalf("expected to match %q, got %q", "if", em.Text)
	}
	if len(em.Terminals) != 2 || em.Terminals[0] != "IF" || em.Terminals[1] != "IDENT_IF" {
		t.Fatalf("expected both IF and IDENT_IF in declaration order, got %v", em.Terminals)
	}

	em2, err := l.Next(em.Next)
	if err != nil {
		t.Fatal(err)
	}
	if em2.Text != "=" || em2.Terminals[0] != "ASSIGN" {
		t.Fatalf("expected ASSIGN next, got %v %v", em2.Text, em2.Terminals)
	}
}

func TestRegexFallbackWhenPatternsAreNotPlainLiterals(t *testing.T) {
	defs := []TokenDef{
		{ID: "NUM", Pattern: `[0-9]+`},
		{ID: "WORD", Pattern: `[a-zA-Z]+`},
	}
	l, err := New(defs, "")
	if err != nil {
		t.Fatal(err)
	}
	if l.literal != nil {
		t.Fatal("expected no literal fast path when a pattern has metacharacters")
	}
	s := stream.New("<string>", "abc123")
	em, err := l.Next(s)
	if err != nil {
		t.Fatal(err)
	}
	if em.Text != "abc" || em.Terminals[0] != "WORD" {
		t.Fatalf("expected WORD match on abc, got %q %v", em.Text, em.Terminals)
	}
	em2, err := l.Next(em.Next)
	if err != nil {
		t.Fatal(err)
	}
	if em2.Text != "123" || em2.Terminals[0] != "NUM" {
		t.Fatalf("expected NUM match on 123, got %q %v", em2.Text, em2.Terminals)
	}
}

func TestDiscardSkipsWhitespaceBetweenTokens(t *testing.T) {
	defs := []TokenDef{{ID: "WORD", Pattern: `[a-z]+`}}
	l, err := New(defs, "")
	if err != nil {
		t.Fatal(err)
	}
	s := stream.New("<string>", "  foo   bar")
	em, err := l.Next(s)
	if err != nil {
		t.Fatal(err)
	}
	if em.Text != "foo" {
		t.Fatalf("expected leading whitespace discarded before foo, got %q", em.Text)
	}
	em2, err := l.Next(em.Next)
	if err != nil {
		t.Fatal(err)
	}
	if em2.Text != "bar" {
		t.Fatalf("expected inter-token whitespace discarded before bar, got %q", em2.Text)
	}
}

func TestCustomDiscardPattern(t *testing.T) {
	defs := []TokenDef{{ID: "WORD", Pattern: `[a-z]+`}}
	l, err := New(defs, `,`)
	if err != nil {
		t.Fatal(err)
	}
	s := stream.New("<string>", "foo,bar")
	em, err := l.Next(s)
	if err != nil {
		t.Fatal(err)
	}
	if em.Text != "foo" {
		t.Fatalf("expected foo, got %q", em.Text)
	}
	em2, err := l.Next(em.Next)
	if err != nil {
		t.Fatal(err)
	}
	if em2.Text != "bar" {
		t.Fatalf("expected comma discarded before bar, got %q", em2.Text)
	}
}

func TestLexErrorWhenNothingMatches(t *testing.T) {
	defs := []TokenDef{{ID: "WORD", Pattern: `[a-z]+`}}
	l, err := New(defs, "")
	if err != nil {
		t.Fatal(err)
	}
	s := stream.New("<string>", "123")
	_, err = l.Next(s)
	if err == nil {
		t.Fatal("expected a LexError for input matching neither token nor discard pattern")
	}
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("expected *LexError, got %T", err)
	}
}

func TestNextOnEmptyStreamIsLexError(t *testing.T) {
	defs := []TokenDef{{ID: "WORD", Pattern: `[a-z]+`}}
	l, err := New(defs, "")
	if err != nil {
		t.Fatal(err)
	}
	s := stream.New("<string>", "")
	_, err = l.Next(s)
	if err == nil {
		t.Fatal("expected a LexError on empty input")
	}
}

func TestIndentLexerMeasuresTabExpandedIndent(t *testing.T) {
	defs := []TokenDef{{ID: "WORD", Pattern: `[a-z]+`}}
	inner, err := New(defs, " ")
	if err != nil {
		t.Fatal(err)
	}
	il := NewIndentLexer(inner, 4)
	s := stream.New("<string>", "\tfoo")
	em, err := il.Next(s, true)
	if err != nil {
		t.Fatal(err)
	}
	if em.Indent == nil || *em.Indent != 4 {
		t.Fatalf("expected a tab to expand to width 4, got %v", em.Indent)
	}
}
