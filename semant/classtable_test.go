package semant

import (
	"testing"

	"cool-checker/ast"
)

const hierarchy = "class A { };\nclass B inherits A { };\nclass C inherits B { };\nclass D inherits A { };\nclass E inherits D { };\n"

func newTable(t *testing.T, src string) *ClassTable {
	t.Helper()
	return NewClassTable(parseProgram(t, src))
}

func TestConforms(t *testing.T) {
	ct := newTable(t, hierarchy)

	t.Run("chain", func(t *testing.T) {
		if !ct.Conforms("C", "A") {
			t.Error("C should conform to A")
		}
		if ct.Conforms("A", "C") {
			t.Error("A should not conform to C")
		}
		if !ct.Conforms("C", "C") {
			t.Error("C should conform to itself")
		}
		if ct.Conforms("C", "D") || ct.Conforms(ast.Int, "A") {
			t.Error("unrelated classes should not conform")
		}
	})

	t.Run("object is top", func(t *testing.T) {
		for _, c := range ct.Classes() {
			if !ct.Conforms(c.Name.Value, ast.Object) {
				t.Errorf("%s should conform to Object", c.Name.Value)
			}
		}
	})

	t.Run("no type is bottom", func(t *testing.T) {
		for _, c := range ct.Classes() {
			if !ct.Conforms(ast.NoType, c.Name.Value) {
				t.Errorf("NoType should conform to %s", c.Name.Value)
			}
		}
	})
}

func TestLub(t *testing.T) {
	ct := newTable(t, hierarchy)

	tests := []struct {
		a, b, want ast.Symbol
	}{
		{"C", "E", "A"},
		{"C", "B", "B"},
		{"B", "D", "A"},
		{"A", "A", "A"},
		{ast.Int, ast.Str, ast.Object},
		{ast.IO, "C", ast.Object},
		{ast.NoType, "C", "C"},
		{"E", ast.NoType, "E"},
	}
	for _, tt := range tests {
		if got := ct.Lub(tt.a, tt.b); got != tt.want {
			t.Errorf("Lub(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}

	t.Run("commutative", func(t *testing.T) {
		for _, x := range ct.Classes() {
			for _, y := range ct.Classes() {
				a, b := x.Name.Value, y.Name.Value
				if ct.Lub(a, b) != ct.Lub(b, a) {
					t.Errorf("Lub(%s, %s) != Lub(%s, %s)", a, b, b, a)
				}
			}
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, x := range ct.Classes() {
			if got := ct.Lub(x.Name.Value, x.Name.Value); got != x.Name.Value {
				t.Errorf("Lub(%s, %s) = %s", x.Name.Value, x.Name.Value, got)
			}
		}
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		t, current, want ast.Symbol
	}{
		{ast.SelfType, "A", "A"},
		{ast.Int, "A", ast.Int},
		{ast.NoType, "A", ast.NoType},
		{"B", "A", "B"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.t, tt.current); got != tt.want {
			t.Errorf("Normalize(%s, %s) = %s, want %s", tt.t, tt.current, got, tt.want)
		}
	}
}

func TestParentAndFilename(t *testing.T) {
	ct := newTable(t, hierarchy)

	if got := ct.ParentOf("C"); got != "B" {
		t.Errorf("ParentOf(C) = %s", got)
	}
	if got := ct.ParentOf(ast.Object); got != ast.NoClass {
		t.Errorf("ParentOf(Object) = %s", got)
	}
	if got := ct.ParentOf("Nope"); got != ast.NoClass {
		t.Errorf("ParentOf(Nope) = %s", got)
	}
	if got := ct.FilenameOf("C"); got != "test.cl" {
		t.Errorf("FilenameOf(C) = %s", got)
	}
	if got := ct.FilenameOf(ast.IO); got != BasicFilename {
		t.Errorf("FilenameOf(IO) = %s", got)
	}
	if got := ct.FilenameOf("Nope"); got != UnknownFilename {
		t.Errorf("FilenameOf(Nope) = %s", got)
	}
	if len(ct.Classes()) != 10 || ct.Classes()[0].Name.Value != ast.Object {
		t.Errorf("basic classes are not prepended: %d classes", len(ct.Classes()))
	}
}

func TestLookupMethod(t *testing.T) {
	ct := newTable(t, `
		class Base inherits IO { greet() : String { "base" }; };
		class Derived inherits Base { greet() : String { "derived" }; };
	`)

	tests := []struct {
		class, method, owner ast.Symbol
	}{
		{"Derived", "greet", "Derived"},
		{"Base", "greet", "Base"},
		{"Derived", ast.OutString, ast.IO},
		{"Derived", ast.Copy, ast.Object},
		{ast.Str, ast.Substr, ast.Str},
	}
	for _, tt := range tests {
		m, owner, ok := ct.LookupMethod(tt.class, tt.method)
		if !ok {
			t.Errorf("%s.%s not found", tt.class, tt.method)
			continue
		}
		if owner != tt.owner || m.Name.Value != tt.method {
			t.Errorf("%s.%s resolved to %s.%s", tt.class, tt.method, owner, m.Name.Value)
		}
	}

	if _, _, ok := ct.LookupMethod("Derived", "missing"); ok {
		t.Error("missing method should not resolve")
	}
	if _, _, ok := ct.LookupMethod(ast.SelfType, ast.Copy); ok {
		t.Error("SELF_TYPE must be normalized before lookup")
	}
}

func TestAttributesOrder(t *testing.T) {
	ct := newTable(t, "class A { a : Int; }; class B inherits A { b : String; c : A; };")

	var got []string
	for _, a := range ct.Attributes("B") {
		got = append(got, a.Owner.String()+"."+a.Name.Value.String())
	}
	want := []string{"A.a", "B.b", "B.c"}
	if len(got) != len(want) {
		t.Fatalf("attributes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("attributes = %v, want %v", got, want)
		}
	}

	if attrs := ct.Attributes(ast.Str); len(attrs) != 2 || attrs[1].Name.Value != ast.StrField {
		t.Errorf("unexpected String attributes: %d", len(attrs))
	}
}

func TestCyclicGraphTerminates(t *testing.T) {
	ct := newTable(t, "class X inherits Y { }; class Y inherits X { };")

	if ct.Conforms("X", ast.Int) {
		t.Error("X should not conform to Int")
	}
	if got := ct.Lub("X", ast.Int); got != ast.Object {
		t.Errorf("Lub(X, Int) = %s", got)
	}
	if _, _, ok := ct.LookupMethod("X", "nothing"); ok {
		t.Error("lookup on a cycle should fail")
	}
}
