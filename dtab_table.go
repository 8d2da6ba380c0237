package dtab

import (
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/slices"
)

// Dtab is an immutable, ordered sequence of Dentry rules. Dentries are
// kept in insertion order for iteration and rendering; Lookup scans
// them in reverse so that later rules take precedence.
type Dtab struct {
	dentries []Dentry
}

// EmptyDtab is the canonical Dtab with no dentries.
var EmptyDtab = Dtab{}

// NewDtab builds a Dtab from dentries, in the order given.
func NewDtab(dentries ...Dentry) Dtab {
	return Dtab{dentries: slices.Clone(dentries)}
}

var (
	failDtabOnce sync.Once
	failDtabVal  Dtab
)

// FailDtab is the distinguished failing delegation table: the Dtab
// parsed from "/=>!".
func FailDtab() Dtab {
	failDtabOnce.Do(func() {
		d, err := ReadDtab("/=>!")
		if err != nil {
			panic(err)
		}
		failDtabVal = d
	})
	return failDtabVal
}

// baseDtab is the process-wide "system" Dtab applied to every request.
// It is realized as an atomic pointer swap so readers never observe a
// half-assigned value, per the concurrency model's requirement that
// Dtab.Base be safe to read from any goroutine while another writes it.
var baseDtab atomic.Pointer[Dtab]

func init() {
	empty := EmptyDtab
	baseDtab.Store(&empty)
}

// Base returns the current process-wide base Dtab.
func Base() Dtab {
	return *baseDtab.Load()
}

// SetBase assigns the process-wide base Dtab. value must be a Dtab;
// anything else is a *TypeError, mirroring the source's dynamically
// typed property setter (Go's static Dtab.Base getter/setter pair
// can't reject a bad type at compile time because the source models
// this as an untyped assignment point).
func SetBase(value any) error {
	d, ok := value.(Dtab)
	if !ok {
		return &TypeError{Value: value, Want: "Dtab"}
	}
	baseDtab.Store(&d)
	return nil
}

// ReadDtab parses s as a Dtab; an empty string yields EmptyDtab without
// error.
func ReadDtab(s string) (Dtab, error) {
	return parseAllDtab(s)
}

// Dentries returns the dtab's dentries in insertion order. The
// returned slice is a copy; mutating it does not affect d.
func (d Dtab) Dentries() []Dentry {
	return slices.Clone(d.dentries)
}

// Length is the number of dentries in the dtab.
func (d Dtab) Length() int {
	return len(d.dentries)
}

// IsEmpty reports whether the dtab has no dentries.
func (d Dtab) IsEmpty() bool {
	return len(d.dentries) == 0
}

// Add returns a new Dtab with dentry appended.
func (d Dtab) Add(dentry Dentry) Dtab {
	out := slices.Clone(d.dentries)
	out = append(out, dentry)
	return Dtab{dentries: out}
}

// Concat returns a new Dtab with other's dentries appended after d's,
// preserving insertion order. If either side is empty the other is
// returned unchanged (empty-dtab neutrality).
func (d Dtab) Concat(other Dtab) Dtab {
	if d.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return d
	}
	out := slices.Clone(d.dentries)
	out = append(out, other.dentries...)
	return Dtab{dentries: out}
}

// Show is the dtab's canonical textual form: its dentries' Show
// strings joined with ';'.
func (d Dtab) Show() string {
	parts := make([]string, len(d.dentries))
	for i, dn := range d.dentries {
		parts[i] = dn.Show()
	}
	return strings.Join(parts, ";")
}

// String renders the dtab the way diagnostics expect: Dtab(...).
func (d Dtab) String() string {
	return "Dtab(" + d.Show() + ")"
}

// Equal compares two dtabs structurally, via their canonical textual
// forms.
func (d Dtab) Equal(other Dtab) bool {
	return d.String() == other.String()
}

// Lookup resolves path against d's dentries, matching Dtab's core
// rewrite semantics: dentries are scanned in reverse insertion order
// (later rules win), each matching dentry's tree is rewritten with the
// path's unmatched suffix spliced onto every leaf, and the results are
// combined into Neg (no match), the bare tree (one match), or an Alt in
// reverse-scan order (multiple matches). Lookup never errors.
func (d Dtab) Lookup(path Path) NameTree {
	var matches []NameTree
	for i := len(d.dentries) - 1; i >= 0; i-- {
		dentry := d.dentries[i]
		if !dentry.prefix.Matches(path) {
			continue
		}
		suffix := Path{elems: append([]string{}, path.elems[dentry.prefix.Size():]...)}
		rewrite := func(v any) any {
			p, ok := v.(Path)
			if !ok {
				return v
			}
			return p.Append(suffix)
		}
		matches = append(matches, dentry.tree.Map(rewrite))
	}
	switch len(matches) {
	case 0:
		return Neg
	case 1:
		return matches[0]
	default:
		return NewAlt(matches...)
	}
}
