package matcher

import (
	"github.com/coregx/lepl/nfa"
	"github.com/coregx/lepl/stream"
)

// BlockPolicy computes the new required indent for a Block body given
// the currently-required indent and the indent actually observed at the
// block's first line (spec.md §4.7: "a policy function (current_indent,
// observed_indent) → new_indent").
type BlockPolicy func(current, observed int) int

// NoBlocks is the sentinel "no block configured yet" required-indent
// value; Indent succeeds trivially when the stack is at this sentinel.
const NoBlocks = -1

// BlockState is the per-parse offside-rule stack threaded through
// Indent/Block evaluation via Driver.Blocks (spec.md §5: "The block
// monitor is per-parse state threaded through indent-aware evaluation").
type BlockState struct {
	stack   []int
	policy  BlockPolicy
	tabsize int
	visited map[string]bool // stream keys of Blocks being evaluated; any Block re-entered at the same position is refused
}

// NewBlockState creates offside-rule state using the given policy and
// tab-expansion width.
func NewBlockState(policy BlockPolicy, tabsize int) *BlockState {
	return &BlockState{policy: policy, tabsize: tabsize, visited: map[string]bool{}}
}

func (b *BlockState) top() int {
	if len(b.stack) == 0 {
		return NoBlocks
	}
	return b.stack[len(b.stack)-1]
}

func (b *BlockState) push(indent int) { b.stack = append(b.stack, indent) }
func (b *BlockState) pop() {
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// indentWidth measures the run of spaces/tabs at s's current position,
// expanding tabs to the configured tabsize, and returns the width plus
// the stream advanced past the whitespace.
func indentWidth(s stream.Stream, tabsize int) (int, stream.Stream) {
	width := 0
	cur := s
	for !cur.Empty() {
		chunk, next := cur.Next(1)
		switch chunk[0] {
		case ' ':
			width++
		case '\t':
			width += tabsize - (width % tabsize)
		default:
			return width, cur
		}
		cur = next
	}
	return width, cur
}

// indentNode succeeds, consuming the line's leading whitespace, only
// when the observed indent equals the current required indent (or no
// block has been configured yet) — spec.md §6's `Indent()`.
type indentNode struct{}

// Indent builds the offside-rule indent-check matcher.
func Indent() Matcher { return &indentNode{} }

func (n *indentNode) Kind() string        { return "Indent" }
func (n *indentNode) Children() []Matcher { return nil }
func (n *indentNode) WithChildren([]Matcher) Matcher { return n }

func (n *indentNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("Indent")
	defer d.Pop("Indent")
	blocks := d.Blocks()
	if blocks == nil {
		return false, &OffsideError{Reason: "Indent used without a block configuration"}
	}
	width, next := indentWidth(s, blocks.tabsize)
	required := blocks.top()
	if required != NoBlocks && width != required {
		return false, nil
	}
	return k(Result{width}, next)
}

// blockNode runs body under a newly-computed required indent, pushed
// onto the shared BlockState while body is evaluated; it is popped while
// the continuation (the grammar after the Block) runs, and when the call
// returns regardless of outcome — spec.md §6's `Block(lines…,
// policy=…)`.
type blockNode struct {
	body   Matcher
	policy BlockPolicy
}

// Block builds an offside-rule scope matcher: on entry it measures the
// current line's indent, computes the new required indent via policy,
// and evaluates body with that requirement in force.
func Block(body Matcher, policy BlockPolicy) Matcher {
	return &blockNode{body: body, policy: policy}
}

func (n *blockNode) Kind() string        { return "Block" }
func (n *blockNode) Children() []Matcher { return []Matcher{n.body} }
func (n *blockNode) WithChildren(c []Matcher) Matcher {
	return &blockNode{body: c[0], policy: n.policy}
}

// WithPolicy returns a copy of this Block with its policy replaced,
// letting the SetArguments rewriter (package rewrite) rebind a grammar's
// offside policy after construction without rebuilding the whole graph by
// hand.
func (n *blockNode) WithPolicy(policy BlockPolicy) Matcher {
	return &blockNode{body: n.body, policy: policy}
}

// PolicySetter is implemented by any matcher exposing a rebindable
// BlockPolicy — currently only Block nodes.
type PolicySetter interface {
	WithPolicy(policy BlockPolicy) Matcher
}

func (n *blockNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("Block")
	defer d.Pop("Block")
	blocks := d.Blocks()
	if blocks == nil {
		return false, &OffsideError{Reason: "Block used without a block configuration"}
	}

	guardKey := s.Key()
	if blocks.visited[guardKey] {
		// Left-recursive Block re-entry at the same position: refuse to
		// recurse again (spec.md §4.7: "nested left-recursive Block
		// calls at the same stream position are short-circuited").
		return false, nil
	}
	blocks.visited[guardKey] = true
	defer delete(blocks.visited, guardKey)

	observed, _ := indentWidth(s, blocks.tabsize)
	policy := n.policy
	if policy == nil {
		policy = func(current, observed int) int { return observed }
	}
	newIndent := policy(blocks.top(), observed)
	blocks.push(newIndent)
	defer blocks.pop()

	// The continuation runs under the enclosing indent; this Block's level
	// is restored afterwards so that backtracking into body sees it again.
	return n.body.Match(d, s, func(r Result, next stream.Stream) (bool, error) {
		blocks.pop()
		stop, err := k(r, next)
		blocks.push(newIndent)
		return stop, err
	})
}

// OffsideError reports an offside-rule invariant violation.
type OffsideError struct {
	Reason string
}

func (e *OffsideError) Error() string { return "matcher: offside error: " + e.Reason }

// tokenNode references a lexer token by its compiled pattern and ID.
// Used directly it behaves like Regexp; the AddLexer rewriter (package
// rewrite) replaces Token references with a lexer-driven matcher tree
// when a Lexer has been configured (spec.md §4.4, §4.7).
type tokenNode struct {
	n        *nfa.NFA
	id       interface{}
	complete bool
}

// Token builds a matcher for one lexer token pattern. complete requires
// the match to consume all of the remaining input; id identifies the
// token to the AddLexer rewriter and in diagnostics.
func Token(pattern string, complete bool, id interface{}) Matcher {
	n, err := nfa.Compile(pattern, nfa.DefaultCompilerConfig())
	if err != nil {
		panic(&RegexError{Source: pattern, Err: err})
	}
	return &tokenNode{n: n, id: id, complete: complete}
}

func (t *tokenNode) Kind() string        { return "Token" }
func (t *tokenNode) Children() []Matcher { return nil }
func (t *tokenNode) WithChildren([]Matcher) Matcher { return t }
func (t *tokenNode) ID() interface{}     { return t.id }

func (t *tokenNode) Match(d Driver, s stream.Stream, k Cont) (bool, error) {
	d.Push("Token")
	defer d.Pop("Token")
	text, _ := s.Next(remaining(s))
	m, ok := t.n.LongestMatch(text, 0)
	if !ok {
		return false, nil
	}
	if t.complete && m.Length != len(text) {
		return false, nil
	}
	matched := string(text[:m.Length])
	_, next := s.Next(m.Length)
	return k(Result{matched}, next)
}
