// Package dtab parses and evaluates delegation tables: ordered rewrite
// rules that translate hierarchical service paths into name trees for
// request binding.
package dtab

import "strings"

// Path is an ordered sequence of UTF-8 label strings with a canonical
// textual form "/a/b/c". The empty Path's canonical form is "".
type Path struct {
	elems []string
}

// EmptyPath is the canonical empty path.
var EmptyPath = Path{}

// NewPath builds a Path from a sequence of raw UTF-8 labels.
func NewPath(labels ...string) Path {
	p := Path{}
	for _, l := range labels {
		p.elems = append(p.elems, l)
	}
	return p
}

// ReadPath parses s as a Path. An empty string is a parse error: unlike
// a Dtab or a Prefix, a Path has no useful empty-input reading.
func ReadPath(s string) (Path, error) {
	return parseAllPath(s)
}

// Elems returns the path's labels in order. The returned slice must not
// be mutated by callers.
func (p Path) Elems() []string {
	return p.elems
}

// Size is the number of labels in the path.
func (p Path) Size() int {
	return len(p.elems)
}

// IsEmpty reports whether the path has no labels.
func (p Path) IsEmpty() bool {
	return len(p.elems) == 0
}

// Append returns a new Path with value appended. value may be another
// Path (its labels are spliced in), a raw label string, or a NameTree
// leaf whose wrapped value is itself appendable — the last case
// unwraps the leaf the way the Python original's Leaf.__add__ did; see
// DESIGN.md for why this undocumented convenience is preserved.
func (p Path) Append(value any) Path {
	switch v := value.(type) {
	case Path:
		out := Path{elems: append(append([]string{}, p.elems...), v.elems...)}
		return out
	case string:
		return Path{elems: append(append([]string{}, p.elems...), v)}
	case leaf:
		return p.Append(v.value)
	default:
		return p
	}
}

// Concat is Append restricted to a Path argument, kept for readers
// translating the dtab.path grammar's "concat" operation literally: it
// returns a new Path with other's labels after p's.
func (p Path) Concat(other Path) Path {
	return p.Append(other)
}

// StartsWith reports whether p's canonical textual form starts with
// other's canonical textual form.
func (p Path) StartsWith(other Path) bool {
	return strings.HasPrefix(p.Show(), other.Show())
}

// Show is the canonical textual form: "/" + the labels joined by "/",
// or "" for the empty path.
func (p Path) Show() string {
	if p.IsEmpty() {
		return ""
	}
	return "/" + strings.Join(p.elems, "/")
}

// String renders the Path the way NameTree.Show embeds it: Path(/a/b).
func (p Path) String() string {
	return "Path(" + p.Show() + ")"
}

// Equal reports structural equality: equal canonical textual forms.
func (p Path) Equal(other Path) bool {
	return p.Show() == other.Show()
}
