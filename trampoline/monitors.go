package trampoline

import (
	"fmt"
	"io"
)

// TraceResults is a Monitor that writes one line per Push/Pop to an
// injected io.Writer, indented by nesting depth — spec.md §4.5's logging
// monitor, adapted from a global logger to dependency-injected writer
// (SPEC_FULL.md §1: this is a library, not a service, so it has no
// ambient logging configuration of its own to hook into; the grammar
// author supplies where trace output goes).
type TraceResults struct {
	w     io.Writer
	depth int
}

// NewTraceResults creates a trace monitor writing to w.
func NewTraceResults(w io.Writer) *TraceResults { return &TraceResults{w: w} }

func (tr *TraceResults) Push(label string) {
	fmt.Fprintf(tr.w, "%*s-> %s\n", tr.depth*2, "", label)
	tr.depth++
}

func (tr *TraceResults) Pop(label string) {
	tr.depth--
	fmt.Fprintf(tr.w, "%*s<- %s\n", tr.depth*2, "", label)
}

// GeneratorManager watches the number of concurrently active matcher
// evaluations, counted via Push/Pop nesting depth, as a cheap proxy for
// the source's bounded live-coroutine LRU eviction queue (spec.md §4.5).
// Evaluation here is plain recursive CPS rather than a pool of live
// coroutines, so there is nothing to evict. When the depth passes the
// configured limit it sets Exceeded; it does not stop the evaluation or
// return an error.
type GeneratorManager struct {
	maxDepth int
	depth    int
	Exceeded bool
}

// NewGeneratorManager creates a depth-flagging monitor. A non-positive
// limit means unbounded.
func NewGeneratorManager(maxDepth int) *GeneratorManager {
	return &GeneratorManager{maxDepth: maxDepth}
}

func (g *GeneratorManager) Push(string) {
	g.depth++
	if g.maxDepth > 0 && g.depth > g.maxDepth {
		g.Exceeded = true
	}
}

func (g *GeneratorManager) Pop(string) {
	g.depth--
}
