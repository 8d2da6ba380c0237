package dtab

import "testing"

func TestReadDtabEquality(t *testing.T) {
	d1, err := ReadDtab("/a=>/b;/c=>/d")
	if err != nil {
		t.Fatalf("ReadDtab: %v", err)
	}
	d2, err := ReadDtab(`
		/a => /b; # a comment
		/c => /d;
	`)
	if err != nil {
		t.Fatalf("ReadDtab: %v", err)
	}
	if !d1.Equal(d2) {
		t.Fatalf("%v should equal %v", d1, d2)
	}
}

func TestReadDtabEmpty(t *testing.T) {
	d, err := ReadDtab("")
	if err != nil {
		t.Fatalf("ReadDtab(\"\"): %v", err)
	}
	if !d.IsEmpty() {
		t.Fatalf("ReadDtab(\"\") = %v, want empty", d)
	}
}

func TestReadDtabStraySemicolonIsAnError(t *testing.T) {
	for _, src := range []string{";", ";;"} {
		if _, err := ReadDtab(src); err == nil {
			t.Fatalf("ReadDtab(%q): want error, got nil", src)
		}
	}
}

func TestReadDtabTrailingSemicolon(t *testing.T) {
	d, err := ReadDtab("/a=>/b;")
	if err != nil {
		t.Fatalf("ReadDtab: %v", err)
	}
	if d.Length() != 1 {
		t.Fatalf("Length() = %d, want 1", d.Length())
	}
}

func TestDtabFail(t *testing.T) {
	want, err := ReadDtab("/=>!")
	if err != nil {
		t.Fatalf("ReadDtab: %v", err)
	}
	if !FailDtab().Equal(want) {
		t.Fatalf("FailDtab() = %v, want %v", FailDtab(), want)
	}
}

func TestDtabBase(t *testing.T) {
	orig := Base()
	defer func() { _ = SetBase(orig) }()

	d, _ := ReadDtab("/a=>/b")
	if err := SetBase(d); err != nil {
		t.Fatalf("SetBase: %v", err)
	}
	if !Base().Equal(d) {
		t.Fatalf("Base() = %v, want %v", Base(), d)
	}
	if err := SetBase("not a dtab"); err == nil {
		t.Fatal("SetBase with non-Dtab: want error, got nil")
	}
}

func TestDtabLookupLastRuleWins(t *testing.T) {
	d, err := ReadDtab("/a=>/x;/a=>/y")
	if err != nil {
		t.Fatalf("ReadDtab: %v", err)
	}
	path, _ := ReadPath("/a")
	got := d.Lookup(path)

	a, ok := got.(alt)
	if !ok {
		t.Fatalf("Lookup = %T, want alt (two dentries match)", got)
	}
	if len(a.trees) != 2 {
		t.Fatalf("got %d alternatives, want 2", len(a.trees))
	}
	// Reverse insertion order: the later dentry ("=>/y") comes first.
	firstVal, _ := LeafValue(a.trees[0])
	firstPath := firstVal.(Path)
	want, _ := ReadPath("/y")
	if !firstPath.Equal(want) {
		t.Fatalf("first alternative = %v, want %v (last-rule-wins)", firstPath, want)
	}
}

func TestDtabLookupNoMatchIsNeg(t *testing.T) {
	d, _ := ReadDtab("/a=>/b")
	path, _ := ReadPath("/z")
	got := d.Lookup(path)
	if !Equal(got, Neg) {
		t.Fatalf("Lookup(%v) = %v, want Neg", path, got)
	}
}

func TestDtabLookupSplicesSuffix(t *testing.T) {
	d, err := ReadDtab("/a/*/c=>/d")
	if err != nil {
		t.Fatalf("ReadDtab: %v", err)
	}
	path, _ := ReadPath("/a/b/c/e/f")
	got := d.Lookup(path)
	val, ok := LeafValue(got)
	if !ok {
		t.Fatalf("Lookup = %v, want a Leaf", got)
	}
	gotPath := val.(Path)
	want, _ := ReadPath("/d/e/f")
	if !gotPath.Equal(want) {
		t.Fatalf("Lookup(%v) = %v, want %v", path, gotPath, want)
	}
}

func TestDtabConcatEmptyIsNeutral(t *testing.T) {
	d, _ := ReadDtab("/a=>/b")
	if !d.Concat(EmptyDtab).Equal(d) {
		t.Fatalf("Concat(Empty) should be a no-op")
	}
	if !EmptyDtab.Concat(d).Equal(d) {
		t.Fatalf("Empty.Concat(d) should equal d")
	}
}

func TestDtabConcatPreservesOrder(t *testing.T) {
	d1, _ := ReadDtab("/a=>/b")
	d2, _ := ReadDtab("/c=>/d")
	got := d1.Concat(d2)
	want, _ := ReadDtab("/a=>/b;/c=>/d")
	if !got.Equal(want) {
		t.Fatalf("Concat = %v, want %v", got, want)
	}
}

// TestDtabConcatScenario pins spec.md §8's concrete concatenation
// scenario literally.
func TestDtabConcatScenario(t *testing.T) {
	left, err := ReadDtab("/foo => /bar")
	if err != nil {
		t.Fatalf("ReadDtab: %v", err)
	}
	right, err := ReadDtab("/foo=>/biz;/biz=>/$/inet/0/8080;/bar=>/$/inet/0/9090")
	if err != nil {
		t.Fatalf("ReadDtab: %v", err)
	}
	got := left.Concat(right)
	want, err := ReadDtab("/foo=>/bar;/foo=>/biz;/biz=>/$/inet/0/8080;/bar=>/$/inet/0/9090")
	if err != nil {
		t.Fatalf("ReadDtab: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// TestDtabLookupScenario pins spec.md §8's concrete lookup/suffix-
// splicing scenario literally.
func TestDtabLookupScenario(t *testing.T) {
	d, err := ReadDtab("/a/*/c => /d")
	if err != nil {
		t.Fatalf("ReadDtab: %v", err)
	}
	p, err := ReadPath("/a/b/c/e/f")
	if err != nil {
		t.Fatalf("ReadPath: %v", err)
	}
	got := d.Lookup(p)
	wantPath, _ := ReadPath("/d/e/f")
	want := NewLeaf(wantPath)
	if !Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// TestDtabTwoDentriesInOrder pins spec.md §8's two-dentry ordering
// scenario literally.
func TestDtabTwoDentriesInOrder(t *testing.T) {
	d, err := ReadDtab("/=>!;/foo=>/bar")
	if err != nil {
		t.Fatalf("ReadDtab: %v", err)
	}
	if d.Length() != 2 {
		t.Fatalf("Length() = %d, want 2", d.Length())
	}
	dentries := d.Dentries()
	if dentries[0].Prefix().Size() != 0 {
		t.Fatalf("first dentry's prefix should be empty, got %v", dentries[0].Prefix())
	}
	if !Equal(dentries[0].Tree(), Fail) {
		t.Fatalf("first dentry's tree should be Fail, got %v", dentries[0].Tree())
	}
	wantSecondPath, _ := ReadPath("/bar")
	secondVal, _ := LeafValue(dentries[1].Tree())
	if !secondVal.(Path).Equal(wantSecondPath) {
		t.Fatalf("second dentry's tree = %v, want Leaf(/bar)", dentries[1].Tree())
	}
}

func TestDtabAdd(t *testing.T) {
	d, _ := ReadDtab("/a=>/b")
	dentry, _ := ReadDentry("/c=>/d")
	got := d.Add(dentry)
	want, _ := ReadDtab("/a=>/b;/c=>/d")
	if !got.Equal(want) {
		t.Fatalf("Add = %v, want %v", got, want)
	}
	if d.Length() != 1 {
		t.Fatalf("Add mutated the receiver: d.Length() = %d, want 1", d.Length())
	}
}
