package nfa

import (
	"regexp/syntax"

	"github.com/coregx/lepl/alphabet"
)

// CompilerConfig configures NFA compilation. Grounded on
// github.com/coregx/coregex's nfa.CompilerConfig, trimmed to the knobs this
// engine's byte/UTF8-agnostic, capture-free construction actually needs.
type CompilerConfig struct {
	// Alphabet the Character transitions are drawn from. Defaults to
	// alphabet.Unicode.
	Alphabet alphabet.Alphabet
	// MaxRepeat caps a bounded repeat's upper bound to guard against a
	// pathological {0,100000000}-style pattern building an enormous NFA.
	MaxRepeat int
}

// DefaultCompilerConfig returns sensible defaults.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{Alphabet: alphabet.Unicode, MaxRepeat: 1000}
}

// Compiler recursively compiles a parsed regexp/syntax.Regexp tree into an
// NFA fragment. One Compiler is used per top-level Compile call; depth is
// bounded implicitly by Go's own call stack, which is generous enough for
// any regex a human would write.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
}

// Compile parses source with regexp/syntax (Perl dialect — reusing the
// standard library's well-tested parser rather than hand-rolling a second
// one, matching how github.com/coregx/coregex's nfa.Compiler does it) and
// compiles it into an NFA whose single match state carries no terminal tag.
// Use CompileTagged to build a multi-pattern union NFA for the lexer.
func Compile(source string, config CompilerConfig) (*NFA, error) {
	return CompileTagged([]TaggedPattern{{Source: source}}, config)
}

// TaggedPattern pairs a regex source with the terminal value reported when
// it matches. Used to compile the lexer's combined-tokens regex: the union
// of every registered token pattern, each carrying its token ID as Tag.
type TaggedPattern struct {
	Source string
	Tag    interface{}
}

// CompileTagged compiles the alternation of every pattern into a single
// NFA. Each pattern keeps its own match state carrying its Tag, so that
// ambiguous matches (two patterns matching the same text) surface every
// terminal tag whose pattern matched, in declaration order — exactly the
// tie-break data spec.md §4.7's lexer needs ("terminals is the list of
// token IDs whose regex matched, ordered by declaration").
func CompileTagged(patterns []TaggedPattern, config CompilerConfig) (*NFA, error) {
	if config.Alphabet == nil {
		config.Alphabet = alphabet.Unicode
	}
	if config.MaxRepeat == 0 {
		config.MaxRepeat = 1000
	}
	b := NewBuilder(config.Alphabet)
	c := &Compiler{config: config, builder: b}

	var branches []frag
	for _, p := range patterns {
		tree, err := syntax.Parse(p.Source, syntax.Perl)
		if err != nil {
			return nil, &CompileError{Pattern: p.Source, Err: err}
		}
		tree = tree.Simplify()
		match := b.AddMatch(tagList(p.Tag))
		f, err := c.compile(tree)
		if err != nil {
			return nil, &CompileError{Pattern: p.Source, Err: err}
		}
		b.patch(f.out, match)
		branches = append(branches, frag{start: f.start})
	}

	start := branches[0].start
	for _, br := range branches[1:] {
		start = b.AddSplit(start, br.start)
	}
	return b.Build(start), nil
}

func tagList(tag interface{}) []interface{} {
	if tag == nil {
		return nil
	}
	return []interface{}{tag}
}

// compile compiles re into a fragment with a single entry state and a list
// of dangling exits the caller must patch to whatever follows.
func (c *Compiler) compile(re *syntax.Regexp) (frag, error) {
	switch re.Op {
	case syntax.OpNoMatch:
		return c.compileNoMatch()
	case syntax.OpEmptyMatch:
		return c.compileEmpty()
	case syntax.OpLiteral:
		return c.compileLiteral(re.Rune, re.Flags&syntax.FoldCase != 0)
	case syntax.OpCharClass:
		return c.compileCharClass(re.Rune)
	case syntax.OpAnyCharNotNL:
		return c.compileAnyCharNotNL()
	case syntax.OpAnyChar:
		return c.compileAnyChar()
	case syntax.OpCapture:
		return c.compile(re.Sub[0])
	case syntax.OpStar:
		return c.compileStar(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub[0], re.Min, re.Max, re.Flags&syntax.NonGreedy != 0)
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)
	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		// Zero-width assertions need stream-level context (line boundaries,
		// word-class lookback) this Character-only NFA does not have; a
		// grammar needing them composes Lookahead matchers around a
		// Regexp/NfaRegexp node instead (spec.md §6), so here they compile
		// to a no-op epsilon — matching lepl's own regexp engine, which
		// likewise has no anchor support and relies on Lookahead.
		return c.compileEmpty()
	default:
		return c.compileEmpty()
	}
}

func (c *Compiler) compileNoMatch() (frag, error) {
	// A state with no consuming transition and no match: a range over an
	// empty Character never advances, so it always fails.
	empty := alphabet.NewCharacter(c.config.Alphabet)
	id := c.builder.AddRange(empty, InvalidState)
	return frag{start: id}, nil
}

func (c *Compiler) compileEmpty() (frag, error) {
	id := c.builder.AddEpsilon(InvalidState)
	return frag{start: id, out: []dangling{{state: id, which: 0}}}, nil
}

func (c *Compiler) compileLiteral(runes []rune, fold bool) (frag, error) {
	if len(runes) == 0 {
		return c.compileEmpty()
	}
	var first frag
	var prevOut []dangling
	for i, r := range runes {
		ch := alphabet.NewCharacter(c.config.Alphabet, alphabet.Interval{Lo: r, Hi: r})
		if fold {
			addFoldedCase(ch, r)
		}
		id := c.builder.AddRange(ch, InvalidState)
		if i == 0 {
			first = frag{start: id}
		} else {
			c.builder.patch(prevOut, id)
		}
		prevOut = []dangling{{state: id, which: 0}}
	}
	first.out = prevOut
	return first, nil
}

// addFoldedCase widens ch to include the simple case-folded partner of r,
// when it differs (ASCII/Latin-1 case folding is sufficient for the
// grammars this engine targets; full Unicode case folding is left to an
// explicit character class in the grammar source, per spec.md's Non-goal
// on host-type reflection/magic — we do not want to silently pull in the
// full Unicode case-fold tables here).
func addFoldedCase(ch *alphabet.Character, r rune) {
	upper, lower := toUpperASCII(r), toLowerASCII(r)
	if upper != r {
		ch.Append(alphabet.Interval{Lo: upper, Hi: upper})
	}
	if lower != r {
		ch.Append(alphabet.Interval{Lo: lower, Hi: lower})
	}
}

func toUpperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func (c *Compiler) compileCharClass(pairs []rune) (frag, error) {
	ch := alphabet.NewCharacter(c.config.Alphabet)
	for i := 0; i+1 < len(pairs); i += 2 {
		ch.Append(alphabet.Interval{Lo: pairs[i], Hi: pairs[i+1]})
	}
	id := c.builder.AddRange(ch, InvalidState)
	return frag{start: id, out: []dangling{{state: id, which: 0}}}, nil
}

func (c *Compiler) compileAnyChar() (frag, error) {
	a := c.config.Alphabet
	ch := alphabet.NewCharacter(a, alphabet.Interval{Lo: a.Min(), Hi: a.Max()})
	id := c.builder.AddRange(ch, InvalidState)
	return frag{start: id, out: []dangling{{state: id, which: 0}}}, nil
}

func (c *Compiler) compileAnyCharNotNL() (frag, error) {
	a := c.config.Alphabet
	ch := alphabet.NewCharacter(a)
	if '\n' > a.Min() {
		if before, ok := a.Before('\n'); ok {
			ch.Append(alphabet.Interval{Lo: a.Min(), Hi: before})
		}
	}
	if '\n' < a.Max() {
		if after, ok := a.After('\n'); ok {
			ch.Append(alphabet.Interval{Lo: after, Hi: a.Max()})
		}
	}
	id := c.builder.AddRange(ch, InvalidState)
	return frag{start: id, out: []dangling{{state: id, which: 0}}}, nil
}

func (c *Compiler) compileConcat(subs []*syntax.Regexp) (frag, error) {
	if len(subs) == 0 {
		return c.compileEmpty()
	}
	result, err := c.compile(subs[0])
	if err != nil {
		return frag{}, err
	}
	for _, sub := range subs[1:] {
		next, err := c.compile(sub)
		if err != nil {
			return frag{}, err
		}
		c.builder.patch(result.out, next.start)
		result.out = next.out
	}
	return result, nil
}

func (c *Compiler) compileAlternate(subs []*syntax.Regexp) (frag, error) {
	if len(subs) == 0 {
		return c.compileEmpty()
	}
	if len(subs) == 1 {
		return c.compile(subs[0])
	}
	first, err := c.compile(subs[0])
	if err != nil {
		return frag{}, err
	}
	outs := append([]dangling{}, first.out...)
	start := first.start
	for _, sub := range subs[1:] {
		f, err := c.compile(sub)
		if err != nil {
			return frag{}, err
		}
		start = c.builder.AddSplit(start, f.start)
		outs = append(outs, f.out...)
	}
	return frag{start: start, out: outs}, nil
}

// compileStar compiles Sub* as split(enter-body, skip), or split(skip,
// enter-body) when reluctant. Matches and LongestMatch do not follow
// branch order (Matches always reports lengths longest first), so the
// order does not change which matches are reported or in what order.
func (c *Compiler) compileStar(sub *syntax.Regexp, reluctant bool) (frag, error) {
	body, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	var split StateID
	if reluctant {
		split = c.builder.AddSplit(InvalidState, body.start)
	} else {
		split = c.builder.AddSplit(body.start, InvalidState)
	}
	c.builder.patch(body.out, split)
	which := 1
	if reluctant {
		which = 0
	}
	return frag{start: split, out: []dangling{{state: split, which: which}}}, nil
}

func (c *Compiler) compilePlus(sub *syntax.Regexp, reluctant bool) (frag, error) {
	body, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	var split StateID
	if reluctant {
		split = c.builder.AddSplit(InvalidState, body.start)
	} else {
		split = c.builder.AddSplit(body.start, InvalidState)
	}
	c.builder.patch(body.out, split)
	which := 1
	if reluctant {
		which = 0
	}
	return frag{start: body.start, out: []dangling{{state: split, which: which}}}, nil
}

func (c *Compiler) compileQuest(sub *syntax.Regexp, reluctant bool) (frag, error) {
	body, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	var split StateID
	if reluctant {
		split = c.builder.AddSplit(InvalidState, body.start)
	} else {
		split = c.builder.AddSplit(body.start, InvalidState)
	}
	which := 1
	if reluctant {
		which = 0
	}
	outs := append([]dangling{{state: split, which: which}}, body.out...)
	return frag{start: split, out: outs}, nil
}

func (c *Compiler) compileRepeat(sub *syntax.Regexp, min, max int, reluctant bool) (frag, error) {
	if max > c.config.MaxRepeat || min > c.config.MaxRepeat {
		return frag{}, &ErrTooComplex{Pattern: sub.String()}
	}
	var pieces []*syntax.Regexp
	for i := 0; i < min; i++ {
		pieces = append(pieces, sub)
	}
	if max < 0 {
		// {min,} == min copies followed by Sub*
		star := &syntax.Regexp{Op: syntax.OpStar, Sub: []*syntax.Regexp{sub}}
		if reluctant {
			star.Flags |= syntax.NonGreedy
		}
		pieces = append(pieces, star)
	} else {
		for i := min; i < max; i++ {
			quest := &syntax.Regexp{Op: syntax.OpQuest, Sub: []*syntax.Regexp{sub}}
			if reluctant {
				quest.Flags |= syntax.NonGreedy
			}
			pieces = append(pieces, quest)
		}
	}
	if len(pieces) == 0 {
		return c.compileEmpty()
	}
	return c.compileConcat(pieces)
}
