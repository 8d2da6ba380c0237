package dtab

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v2"
)

// NameTree is an immutable, recursive algebraic value describing
// possible bindings for a path: a Leaf, an ordered Alt of alternatives,
// a weighted Union, a Weighted subtree, or one of the three
// distinguished terminals Fail, Neg, Empty.
type NameTree interface {
	// Show is the tree's inner textual rendering, used to build the
	// parent's canonical form; see String for the full form.
	Show() string
	// String is the canonical "NameTree.Xxx(...)" rendering used for
	// structural equality (see Equal) and diagnostics.
	String() string
	// Map applies f to every leaf value in the tree, returning a new
	// tree of the same shape. See DESIGN.md for why Alt recurses
	// (f is applied via each child's own Map) rather than being
	// invoked directly on the child nodes, unlike the implementation
	// this was ported from.
	Map(f func(any) any) NameTree
}

// Equal reports structural equality between two NameTrees: equal
// canonical String() forms. The three terminal singletons additionally
// compare equal only to themselves, which falls out of String()
// already being unique per terminal.
func Equal(a, b NameTree) bool {
	return a.String() == b.String()
}

// Leaf wraps a single value — ordinarily a Path, but Map may rewrap it
// as any value a leaf-rewriting function produces.
type leaf struct {
	value any
}

// NewLeaf constructs a Leaf node wrapping value.
func NewLeaf(value any) NameTree {
	return leaf{value: value}
}

func (l leaf) Show() string {
	if p, ok := l.value.(Path); ok {
		return p.String()
	}
	return fmt.Sprint(l.value)
}

func (l leaf) String() string {
	return "NameTree.Leaf(" + l.Show() + ")"
}

func (l leaf) Map(f func(any) any) NameTree {
	return leaf{value: f(l.value)}
}

// LeafValue returns the value wrapped by a Leaf node, and whether tree
// was in fact a Leaf.
func LeafValue(tree NameTree) (any, bool) {
	l, ok := tree.(leaf)
	if !ok {
		return nil, false
	}
	return l.value, true
}

// alt is the Alt combinator: an ordered list of alternative NameTrees.
type alt struct {
	trees []NameTree
}

// NewAlt constructs an Alt node from one or more alternatives. Unlike
// the parser's tree() production — which collapses a single alternative
// down to that alternative directly — NewAlt always builds a literal
// Alt node, matching the source constructor's unconditional behavior.
func NewAlt(trees ...NameTree) NameTree {
	if len(trees) == 0 {
		panic("dtab: Alt requires at least one tree")
	}
	cp := append([]NameTree{}, trees...)
	return alt{trees: cp}
}

func (a alt) Trees() []NameTree { return a.trees }

func (a alt) Show() string {
	parts := make([]string, len(a.trees))
	for i, t := range a.trees {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

func (a alt) String() string {
	return "NameTree.Alt(" + a.Show() + ")"
}

func (a alt) Map(f func(any) any) NameTree {
	out := make([]NameTree, len(a.trees))
	for i, t := range a.trees {
		out[i] = t.Map(f)
	}
	return alt{trees: out}
}

// weighted pairs a non-negative weight with a subtree that is not
// itself Weighted.
type weighted struct {
	weight *apd.Decimal
	tree   NameTree
}

// NewWeighted constructs a Weighted node. If weight is nil,
// DefaultWeight is used.
func NewWeighted(weight *apd.Decimal, tree NameTree) NameTree {
	if weight == nil {
		weight = DefaultWeight
	}
	return weighted{weight: weight, tree: tree}
}

func (w weighted) Weight() *apd.Decimal { return w.weight }
func (w weighted) Tree() NameTree       { return w.tree }

func (w weighted) Show() string {
	return showWeight(w.weight) + "," + w.tree.String()
}

func (w weighted) String() string {
	return "NameTree.Weighted(" + w.Show() + ")"
}

func (w weighted) Map(f func(any) any) NameTree {
	return weighted{weight: w.weight, tree: w.tree.Map(f)}
}

// union is the Union combinator: a weighted disjunction whose children
// are exclusively Weighted nodes.
type union struct {
	trees []weighted
}

// NewUnion constructs a Union node from one or more Weighted
// alternatives. It returns a *TypeError if any argument is not a
// Weighted NameTree — Union's children must exclusively be Weighted,
// per the data model's invariant.
func NewUnion(trees ...NameTree) (NameTree, error) {
	if len(trees) == 0 {
		panic("dtab: Union requires at least one tree")
	}
	ws := make([]weighted, len(trees))
	for i, t := range trees {
		w, ok := t.(weighted)
		if !ok {
			return nil, &TypeError{Value: t, Want: "Weighted NameTree"}
		}
		ws[i] = w
	}
	return union{trees: ws}, nil
}

func (u union) Trees() []NameTree {
	out := make([]NameTree, len(u.trees))
	for i, w := range u.trees {
		out[i] = w
	}
	return out
}

func (u union) Show() string {
	parts := make([]string, len(u.trees))
	for i, t := range u.trees {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

func (u union) String() string {
	return "NameTree.Union(" + u.Show() + ")"
}

func (u union) Map(f func(any) any) NameTree {
	out := make([]weighted, len(u.trees))
	for i, t := range u.trees {
		out[i] = weighted{weight: t.weight, tree: t.tree.Map(f)}
	}
	return union{trees: out}
}

// The three terminal NameTrees. Each is a process-wide singleton value
// compared by identity; since their String() forms are each unique,
// ordinary value comparison already gives identity semantics.
type failTree struct{}
type negTree struct{}
type emptyTree struct{}

func (failTree) Show() string                { return "Fail" }
func (failTree) String() string              { return "NameTree.Fail" }
func (failTree) Map(f func(any) any) NameTree { return Fail }

func (negTree) Show() string                { return "Neg" }
func (negTree) String() string              { return "NameTree.Neg" }
func (negTree) Map(f func(any) any) NameTree { return Neg }

func (emptyTree) Show() string                { return "Empty" }
func (emptyTree) String() string              { return "NameTree.Empty" }
func (emptyTree) Map(f func(any) any) NameTree { return Empty }

var (
	// Fail is the distinguished failing terminal.
	Fail NameTree = failTree{}
	// Neg is the distinguished negative terminal.
	Neg NameTree = negTree{}
	// Empty is the distinguished empty terminal.
	Empty NameTree = emptyTree{}
)

// UnionFail is a single-element Union of DefaultWeight*Fail, mirroring
// the source's NameTree.unionFail convenience.
func UnionFail() NameTree {
	u, _ := NewUnion(NewWeighted(DefaultWeight, Fail))
	return u
}

// ReadNameTree parses s as a NameTree.
func ReadNameTree(s string) (NameTree, error) {
	return parseAllNameTree(s)
}
