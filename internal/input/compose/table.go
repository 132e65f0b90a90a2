package compose

import (
	"sort"

	"github.com/dshills/keyloom/internal/input/keysym"
)

// Result is what a completed sequence produces: composed text and a
// final symbol. Either may be absent, never both.
type Result struct {
	Text   string
	Symbol keysym.Symbol
}

// Table maps symbol sequences to composed results. Tables are built
// once per locale load and read-only afterwards; the session walks
// them one symbol at a time.
type Table struct {
	name string
	root *node
}

type node struct {
	children map[keysym.Symbol]*node
	result   *Result
}

// NewTable creates an empty compose table.
func NewTable(name string) *Table {
	return &Table{
		name: name,
		root: &node{children: make(map[keysym.Symbol]*node)},
	}
}

// Name returns the table's label, such as its locale.
func (t *Table) Name() string {
	return t.name
}

// Add defines a sequence. Later definitions win over earlier ones:
// redefining a sequence replaces its result, defining a sequence that
// extends an existing one unterminates the shorter, and terminating a
// node drops anything built below it. Terminal nodes are therefore
// always leaves.
func (t *Table) Add(seq []keysym.Symbol, text string, final keysym.Symbol) error {
	if len(seq) == 0 {
		return ErrBadSequence
	}
	if text == "" && final == keysym.None {
		return ErrBadSequence
	}
	for _, s := range seq {
		if s == keysym.None {
			return ErrBadSequence
		}
	}

	cur := t.root
	for _, s := range seq {
		child, ok := cur.children[s]
		if !ok {
			child = &node{children: make(map[keysym.Symbol]*node)}
			cur.children[s] = child
		}
		// A sequence passing through an old terminal shadows it.
		child.result = nil
		cur = child
	}
	cur.children = make(map[keysym.Symbol]*node)
	cur.result = &Result{Text: text, Symbol: final}
	return nil
}

// step advances from a node by one symbol.
func (t *Table) step(cur *node, sym keysym.Symbol) (*node, bool) {
	if cur == nil {
		cur = t.root
	}
	next, ok := cur.children[sym]
	return next, ok
}

// Sequences counts the defined sequences.
func (t *Table) Sequences() int {
	if t == nil {
		return 0
	}
	return countTerminals(t.root)
}

func countTerminals(n *node) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.result != nil {
		count++
	}
	for _, c := range n.children {
		count += countTerminals(c)
	}
	return count
}

// Starters returns the symbols that begin at least one sequence,
// ascending. Diagnostic output only.
func (t *Table) Starters() []keysym.Symbol {
	if t == nil {
		return nil
	}
	out := make([]keysym.Symbol, 0, len(t.root.children))
	for s := range t.root.children {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
