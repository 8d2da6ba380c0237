package dtab

import "strings"

// Prefix is an ordered sequence of Elem matched against a Path
// position-wise. An empty Prefix matches every Path.
type Prefix struct {
	elems []Elem
}

// EmptyPrefix is the canonical empty prefix; it matches every path.
var EmptyPrefix = Prefix{}

// NewPrefix builds a Prefix from elements, coercing any bare string
// argument into a Label (mirroring the source's constructor, which
// accepts either Elem values or raw label strings).
func NewPrefix(elems ...any) Prefix {
	p := Prefix{}
	for _, e := range elems {
		switch v := e.(type) {
		case Elem:
			p.elems = append(p.elems, v)
		case string:
			p.elems = append(p.elems, NewLabel(v))
		default:
			panic("dtab: Prefix element must be an Elem or a string")
		}
	}
	return p
}

// ReadPrefix parses s as a dentry prefix; an empty string yields
// EmptyPrefix without error.
func ReadPrefix(s string) (Prefix, error) {
	return parseAllDentryPrefix(s)
}

// Size is the number of elements in the prefix.
func (p Prefix) Size() int {
	return len(p.elems)
}

// Elems returns the prefix's elements in order. Callers must not
// mutate the returned slice.
func (p Prefix) Elems() []Elem {
	return p.elems
}

// Matches reports whether p matches path: |p| <= |path| and each
// element of p matches the label at the same position in path. Any
// matches any label; Label(s) matches only the equal label.
func (p Prefix) Matches(path Path) bool {
	if p.Size() > path.Size() {
		return false
	}
	for i, e := range p.elems {
		if !e.matches(path.elems[i]) {
			return false
		}
	}
	return true
}

// Show is the comma-separated debug rendering of the prefix's
// elements, used only for diagnostic/structural equality of dentries —
// it is not concrete prefix syntax (see Elem.String).
func (p Prefix) Show() string {
	parts := make([]string, len(p.elems))
	for i, e := range p.elems {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}

// String renders the prefix the way diagnostics expect: Prefix(...).
func (p Prefix) String() string {
	return "Prefix(" + p.Show() + ")"
}
