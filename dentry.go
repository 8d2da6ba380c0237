package dtab

// Dentry is a single delegation table rule: a Prefix paired with the
// NameTree to substitute for matching paths.
type Dentry struct {
	prefix Prefix
	tree   NameTree
}

// NewDentry constructs a Dentry. prefix must be a Prefix or a Path (a
// Path is coerced element-wise into a Prefix of Labels); anything else
// is a *TypeError, mirroring the source constructor's dynamic
// prefix-or-path coercion (the tree argument's type is enforced
// statically by Go and can never fail here).
func NewDentry(prefix any, tree NameTree) (Dentry, error) {
	switch p := prefix.(type) {
	case Prefix:
		return Dentry{prefix: p, tree: tree}, nil
	case Path:
		elems := make([]Elem, len(p.elems))
		for i, l := range p.elems {
			elems[i] = Label(l)
		}
		return Dentry{prefix: Prefix{elems: elems}, tree: tree}, nil
	default:
		return Dentry{}, &TypeError{Value: prefix, Want: "Prefix or Path"}
	}
}

// nopDentry is the internal no-op sentinel: its prefix is "/" (a
// literal slash Label), a prefix the concrete syntax cannot produce,
// so it can never collide with a parsed dentry.
var nopDentry = Dentry{
	prefix: Prefix{elems: []Elem{Label("/")}},
	tree:   Neg,
}

// ReadDentry parses s as a Dentry.
func ReadDentry(s string) (Dentry, error) {
	return parseAllDentry(s)
}

// Prefix returns the dentry's matching prefix.
func (d Dentry) Prefix() Prefix {
	return d.prefix
}

// Tree returns the dentry's name tree.
func (d Dentry) Tree() NameTree {
	return d.tree
}

// Show is "prefix.Show=>tree.String", matching the source's diagnostic
// rendering (not concrete dentry syntax — see Prefix.Show).
func (d Dentry) Show() string {
	return d.prefix.Show() + "=>" + d.tree.String()
}

// String renders the dentry the way diagnostics expect: Dentry(...).
func (d Dentry) String() string {
	return "Dentry(" + d.Show() + ")"
}

// Equal compares two dentries via Show, matching the source's
// __eq__ (valid only between two Dentry values, which Go's static
// typing already guarantees).
func (d Dentry) Equal(other Dentry) bool {
	return d.Show() == other.Show()
}
