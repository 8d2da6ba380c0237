package dtab

import (
	"fmt"
	"io"

	"github.com/kylelemons/godebug/pretty"
)

// prettyTree is a pretty-printable mirror of a NameTree: godebug/pretty
// walks exported struct fields, which NameTree's unexported
// implementation types (leaf, alt, weighted, union) don't expose, so
// Lookup results are first flattened into this shape.
type prettyTree struct {
	Kind     string       `pretty:"kind"`
	Leaf     string       `pretty:"leaf,omitempty"`
	Weight   string       `pretty:"weight,omitempty"`
	Children []prettyTree `pretty:"children,omitempty"`
}

func toPrettyTree(t NameTree) prettyTree {
	switch v := t.(type) {
	case leaf:
		return prettyTree{Kind: "Leaf", Leaf: v.Show()}
	case alt:
		children := make([]prettyTree, len(v.trees))
		for i, c := range v.trees {
			children[i] = toPrettyTree(c)
		}
		return prettyTree{Kind: "Alt", Children: children}
	case weighted:
		return prettyTree{Kind: "Weighted", Weight: showWeight(v.weight), Children: []prettyTree{toPrettyTree(v.tree)}}
	case union:
		children := make([]prettyTree, len(v.trees))
		for i, c := range v.trees {
			children[i] = toPrettyTree(c)
		}
		return prettyTree{Kind: "Union", Children: children}
	case failTree:
		return prettyTree{Kind: "Fail"}
	case negTree:
		return prettyTree{Kind: "Neg"}
	case emptyTree:
		return prettyTree{Kind: "Empty"}
	default:
		return prettyTree{Kind: fmt.Sprintf("%T", t)}
	}
}

// prettyDentry mirrors a Dentry for pretty.Config's field walk.
type prettyDentry struct {
	Prefix string     `pretty:"prefix"`
	Tree   prettyTree `pretty:"tree"`
}

var prettyConfig = &pretty.Config{
	Compact:           false,
	IncludeUnexported: false,
}

// PrettyPrint writes a multi-line, indented rendering of d to w, one
// dentry per block in insertion order. It supplements the source's
// Dtab.pretty_print, which the distilled form of this library dropped;
// ordinary diagnostics should prefer Dtab.Show/String, which are
// compact and round-trip-stable for structural comparisons — this is
// for humans debugging a large dtab at a terminal.
func PrettyPrint(w io.Writer, d Dtab) error {
	dentries := d.Dentries()
	pretty := make([]prettyDentry, len(dentries))
	for i, dn := range dentries {
		pretty[i] = prettyDentry{Prefix: dn.Prefix().Show(), Tree: toPrettyTree(dn.Tree())}
	}
	_, err := io.WriteString(w, prettyConfig.Sprint(pretty))
	return err
}

// PrettyPrintLookup writes a pretty rendering of a single NameTree —
// typically a Dtab.Lookup result — to w.
func PrettyPrintLookup(w io.Writer, tree NameTree) error {
	_, err := io.WriteString(w, prettyConfig.Sprint(toPrettyTree(tree)))
	return err
}
