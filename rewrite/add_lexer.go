package rewrite

import (
	"github.com/coregx/lepl/lexer"
	"github.com/coregx/lepl/matcher"
	"github.com/coregx/lepl/stream"
)

// tokenIdentifier is implemented by matcher.Token nodes; matched
// structurally rather than via an exported matcher-package interface since
// the only information AddLexer needs out of a Token node is its ID.
type tokenIdentifier interface {
	ID() interface{}
}

// lexerTokenNode replaces a raw Token combinator once a Lexer has been
// configured: instead of re-scanning the token's own NFA against the raw
// remaining input, it asks the shared Lexer for the next emission and
// succeeds only if this token's ID is among the emission's terminals
// (spec.md §4.4 AddLexer, §4.7: the lexer determines ties/precedence once,
// every Token alternative in the grammar just checks whether it won).
type lexerTokenNode struct {
	lex *lexer.Lexer
	id  interface{}
}

func (n *lexerTokenNode) Kind() string        { return "Token" }
func (n *lexerTokenNode) Children() []matcher.Matcher { return nil }
func (n *lexerTokenNode) WithChildren([]matcher.Matcher) matcher.Matcher { return n }

func (n *lexerTokenNode) Match(d matcher.Driver, s stream.Stream, k matcher.Cont) (bool, error) {
	d.Push("Token")
	defer d.Pop("Token")
	em, err := n.lex.Next(s)
	if err != nil {
		return false, err
	}
	for _, t := range em.Terminals {
		if t == n.id {
			return k(matcher.Result{em.Text}, em.Next)
		}
	}
	return false, nil
}

type addLexerVisitor struct {
	lex *lexer.Lexer
}

func (v *addLexerVisitor) OnLeaf(m matcher.Matcher) matcher.Matcher {
	if m.Kind() != "Token" {
		return m
	}
	t, ok := m.(tokenIdentifier)
	if !ok {
		return m
	}
	return &lexerTokenNode{lex: v.lex, id: t.ID()}
}

func (v *addLexerVisitor) OnLoop(m matcher.Matcher) matcher.Matcher { return m }

func (v *addLexerVisitor) OnNode(m matcher.Matcher, children []matcher.Matcher) matcher.Matcher {
	return m.WithChildren(children)
}

// AddLexer replaces every Token reference in m with a matcher driven by
// lex's shared token stream instead of its own independent NFA scan
// (spec.md §4.4).
func AddLexer(m matcher.Matcher, lex *lexer.Lexer) matcher.Matcher {
	return matcher.Walk(m, &addLexerVisitor{lex: lex})
}
