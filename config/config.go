// Package config implements the parser-materialization layer of spec.md
// §4.8: a ConfigBuilder that accumulates rewriters and monitors with
// commutative setters, a frozen Configuration value, and the MakeMatcher /
// MakeParser entry points that apply the rewriter chain once and return a
// reusable parse function. Grounded on _examples/coregx-coregex/meta's
// builder-then-freeze pattern (a mutable *Builder accumulating strategy
// choices, materialized into an immutable compiled engine on demand).
package config

import (
	"io"

	"github.com/coregx/lepl/lexer"
	"github.com/coregx/lepl/matcher"
	"github.com/coregx/lepl/rewrite"
	"github.com/coregx/lepl/stream"
	"github.com/coregx/lepl/trampoline"
)

type optimizeOrSetting struct{ conservative bool }
type autoMemoizeSetting struct{ conservative, full bool }
type compileRegexpSetting struct{ mode rewrite.Mode }
type lexerSetting struct {
	defs    []lexer.TokenDef
	discard string
}
type fullMatchSetting struct{ eos bool }
type lineAwareSetting struct {
	tabsize int
	policy  matcher.BlockPolicy
}

// ConfigBuilder accumulates rewriters and monitors via commutative setters
// (spec.md §4.8: "ConfigBuilder accumulates rewriters and monitors").
// Setter order does not matter; MakeMatcher always applies the underlying
// rewriters in the fixed pipeline order documented on Configuration.
type ConfigBuilder struct {
	flatten           bool
	composeTransforms bool
	optimizeOr        *optimizeOrSetting
	autoMemoize       *autoMemoizeSetting
	compileRegexp     *compileRegexpSetting
	lexer             *lexerSetting
	setArguments      matcher.BlockPolicy
	hasSetArguments   bool
	fullMatch         *fullMatchSetting
	traceWriter       io.Writer
	manageMaxDepth    int
	lineAware         *lineAwareSetting
	changed           bool
}

// New creates an empty builder — spec.md §4.8's `default`.
func New() *ConfigBuilder { return &ConfigBuilder{} }

// Flatten enables the Flatten rewriter.
func (b *ConfigBuilder) Flatten() *ConfigBuilder {
	b.flatten, b.changed = true, true
	return b
}

// ComposeTransforms enables the ComposeTransforms rewriter.
func (b *ConfigBuilder) ComposeTransforms() *ConfigBuilder {
	b.composeTransforms, b.changed = true, true
	return b
}

// OptimizeOr enables the OptimizeOr rewriter.
func (b *ConfigBuilder) OptimizeOr(conservative bool) *ConfigBuilder {
	b.optimizeOr, b.changed = &optimizeOrSetting{conservative: conservative}, true
	return b
}

// AutoMemoize enables the AutoMemoize rewriter.
func (b *ConfigBuilder) AutoMemoize(conservative, full bool) *ConfigBuilder {
	b.autoMemoize, b.changed = &autoMemoizeSetting{conservative: conservative, full: full}, true
	return b
}

// CompileToNFA enables CompileRegexp in NFA mode.
func (b *ConfigBuilder) CompileToNFA() *ConfigBuilder {
	b.compileRegexp, b.changed = &compileRegexpSetting{mode: rewrite.NFA}, true
	return b
}

// CompileToDFA enables CompileRegexp in DFA mode.
func (b *ConfigBuilder) CompileToDFA() *ConfigBuilder {
	b.compileRegexp, b.changed = &compileRegexpSetting{mode: rewrite.DFA}, true
	return b
}

// Lexer configures token-based lexing: defs are compiled into a shared
// Lexer, and the AddLexer rewriter replaces every Token reference with a
// matcher drawing from it (spec.md §4.8: `lexer(alphabet, discard,
// source)` — the alphabet parameter is omitted here since every Lexer in
// this engine already compiles over alphabet.Unicode, per SPEC_FULL.md's
// scope).
func (b *ConfigBuilder) Lexer(defs []lexer.TokenDef, discard string) *ConfigBuilder {
	b.lexer, b.changed = &lexerSetting{defs: defs, discard: discard}, true
	return b
}

// SetArguments rebinds every Block node's offside policy (spec.md §4.8's
// `set_arguments(type, …)`, narrowed to the one rebindable argument this
// engine's node set exposes — see rewrite.SetBlockPolicy).
func (b *ConfigBuilder) SetArguments(policy matcher.BlockPolicy) *ConfigBuilder {
	b.setArguments, b.hasSetArguments, b.changed = policy, true, true
	return b
}

// FullMatch enables the FullMatch rewriter.
func (b *ConfigBuilder) FullMatch(eos bool) *ConfigBuilder {
	b.fullMatch, b.changed = &fullMatchSetting{eos: eos}, true
	return b
}

// Trace installs a TraceResults monitor writing to w.
func (b *ConfigBuilder) Trace(w io.Writer) *ConfigBuilder {
	b.traceWriter, b.changed = w, true
	return b
}

// Manage installs a GeneratorManager monitor that sets its Exceeded flag
// when evaluation nests deeper than queueLen (spec.md §4.8's
// `manage(queue_len)`); the depth itself is not capped.
func (b *ConfigBuilder) Manage(queueLen int) *ConfigBuilder {
	b.manageMaxDepth, b.changed = queueLen, true
	return b
}

// LineAware configures offside-rule (indentation-based) evaluation: every
// parse gets a fresh matcher.BlockState using tabsize and policy (spec.md
// §4.8's `line_aware(tabsize, block_policy, block_start, …)`, narrowed to
// the two parameters Indent/Block actually consult — block_start has no
// equivalent here since this engine's BlockState always starts at
// matcher.NoBlocks).
func (b *ConfigBuilder) LineAware(tabsize int, policy matcher.BlockPolicy) *ConfigBuilder {
	b.lineAware, b.changed = &lineAwareSetting{tabsize: tabsize, policy: policy}, true
	return b
}

// DefaultLineAware configures offside-rule evaluation with tabsize 8 and an
// identity policy (new required indent equals the first observed line's
// indent) — spec.md §4.8's `default_line_aware(…)`.
func (b *ConfigBuilder) DefaultLineAware() *ConfigBuilder {
	return b.LineAware(8, func(current, observed int) int { return observed })
}

// Clear resets the builder to empty, as if newly constructed — spec.md
// §4.8's `clear`.
func (b *ConfigBuilder) Clear() *ConfigBuilder {
	*b = ConfigBuilder{}
	return b
}

// Default applies the conservative, broadly-useful rewriter set: Flatten,
// ComposeTransforms, conservative OptimizeOr, and conservative AutoMemoize
// — spec.md §4.8's `default`.
func (b *ConfigBuilder) Default() *ConfigBuilder {
	return b.Flatten().ComposeTransforms().OptimizeOr(true).AutoMemoize(true, false)
}

// Configuration is the frozen value MakeMatcher/MakeParser consume
// (spec.md §4.8: "a frozen value { rewriters: ordered list, monitors:
// ordered list, stream_factory, alphabet }"). Copying a ConfigBuilder's
// current settings into a Configuration clears its changed flag,
// signalling that a previously compiled matcher built from this exact
// configuration may be reused without rebuilding.
type Configuration struct {
	builder ConfigBuilder
}

// Freeze captures the builder's current settings into an immutable
// Configuration and clears the builder's changed flag.
func (b *ConfigBuilder) Freeze() Configuration {
	frozen := Configuration{builder: *b}
	frozen.builder.changed = false
	b.changed = false
	return frozen
}

// Changed reports whether any setter has been called on the builder since
// the last Freeze — callers use this to decide whether a previously
// materialized matcher (via MakeMatcher/MakeParser) can be reused as-is
// (spec.md §4.8: "tracks a changed flag so a previously built matcher can
// be reused when the config is read but not modified between parses").
func (b *ConfigBuilder) Changed() bool { return b.changed }

// rewrite applies every configured rewriter to root, in the fixed pipeline
// order: Flatten, ComposeTransforms, OptimizeOr, AutoMemoize, CompileRegexp,
// AddLexer, SetArguments, FullMatch (spec.md §4.8: "applies rewriters in
// order").
func (c Configuration) rewrite(root matcher.Matcher) (matcher.Matcher, *lexer.Lexer, error) {
	b := c.builder
	m := root
	if b.flatten {
		m = rewrite.Flatten(m)
	}
	if b.composeTransforms {
		m = rewrite.ComposeTransforms(m)
	}
	if b.optimizeOr != nil {
		m = rewrite.OptimizeOr(m, b.optimizeOr.conservative)
	}
	if b.autoMemoize != nil {
		m = rewrite.AutoMemoize(m, b.autoMemoize.conservative, b.autoMemoize.full)
	}
	if b.compileRegexp != nil {
		m = rewrite.CompileRegexp(m, b.compileRegexp.mode)
	}
	var lex *lexer.Lexer
	if b.lexer != nil {
		var err error
		lex, err = lexer.New(b.lexer.defs, b.lexer.discard)
		if err != nil {
			return nil, nil, err
		}
		m = rewrite.AddLexer(m, lex)
	}
	if b.hasSetArguments {
		m = rewrite.SetBlockPolicy(m, b.setArguments)
	}
	if b.fullMatch != nil {
		m = rewrite.FullMatch(m, b.fullMatch.eos)
	}
	return m, lex, nil
}

func (c Configuration) monitors() []trampoline.Monitor {
	var ms []trampoline.Monitor
	if c.builder.traceWriter != nil {
		ms = append(ms, trampoline.NewTraceResults(c.builder.traceWriter))
	}
	if c.builder.manageMaxDepth > 0 {
		ms = append(ms, trampoline.NewGeneratorManager(c.builder.manageMaxDepth))
	}
	return ms
}

func (c Configuration) blocks() *matcher.BlockState {
	if c.builder.lineAware == nil {
		return nil
	}
	return matcher.NewBlockState(c.builder.lineAware.policy, c.builder.lineAware.tabsize)
}

// MakeMatcher rewrites root once per config and returns a function driving
// the rewritten graph against every input string to exhaustion, collecting
// every result (spec.md §4.8: "`make_matcher(root, stream_factory,
// config)`... returns `arg -> trampoline(root.match(stream_factory(arg)),
// monitors)`"; `match` semantics — every result, not just the first).
func MakeMatcher(root matcher.Matcher, config Configuration) (func(input string) ([]matcher.Result, error), error) {
	rewritten, _, err := config.rewrite(root)
	if err != nil {
		return nil, err
	}
	return func(input string) ([]matcher.Result, error) {
		tr := trampoline.New(config.blocks(), config.monitors()...)
		pairs, err := tr.All(rewritten, stream.New("<string>", input))
		if err != nil {
			return nil, err
		}
		out := make([]matcher.Result, len(pairs))
		for i, p := range pairs {
			out[i] = p.Result
		}
		return out, nil
	}, nil
}

// MakeParser wraps MakeMatcher to return only the first result, or
// ok=false if none was found (spec.md §4.8: "`make_parser` wraps
// `make_matcher` to return only the first result (or a not-found
// signal)").
func MakeParser(root matcher.Matcher, config Configuration) (func(input string) (matcher.Result, bool, error), error) {
	rewritten, _, err := config.rewrite(root)
	if err != nil {
		return nil, err
	}
	return func(input string) (matcher.Result, bool, error) {
		tr := trampoline.New(config.blocks(), config.monitors()...)
		pair, ok, err := tr.First(rewritten, stream.New("<string>", input))
		if err != nil || !ok {
			return nil, ok, err
		}
		return pair.Result, true, nil
	}, nil
}
