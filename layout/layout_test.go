package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llir/llvm/ir/types"

	"cool-checker/ast"
	"cool-checker/diag"
	"cool-checker/parser"
	"cool-checker/semant"
)

const program = `
class A {
  n : Int;
  me : SELF_TYPE;
};
class B inherits A {
  flag : Bool;
  name : String;
  peer : A;
};
class Main { main() : Object { 0 }; };
`

func build(t *testing.T, src string) *Layout {
	t.Helper()
	prog, errs := parser.ParseFile("test.cl", strings.NewReader(src))
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	sink := diag.NewSink(diag.LogLevelSilent)
	ct := semant.Analyze(prog, sink, semant.Options{})
	if sink.Count() > 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	return Build(ct)
}

func fieldStrings(st *types.StructType) []string {
	var out []string
	for _, f := range st.Fields {
		out = append(out, f.String())
	}
	return out
}

func TestClassLayout(t *testing.T) {
	l := build(t, program)

	tests := []struct {
		class ast.Symbol
		want  []string
	}{
		{ast.Object, []string{"i8**"}},
		{ast.Int, []string{"i8**", "i32"}},
		{ast.Bool, []string{"i8**", "i1"}},
		{ast.Str, []string{"i8**", "i32", "i8*"}},
		{"A", []string{"i8**", "i32", "%A*"}},
		{"B", []string{"i8**", "i32", "%A*", "i1", "i8*", "%A*"}},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			st, ok := l.Struct(tt.class)
			if !ok {
				t.Fatalf("no struct for %s", tt.class)
			}
			got := fieldStrings(st)
			if strings.Join(got, ", ") != strings.Join(tt.want, ", ") {
				t.Errorf("fields = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldIndex(t *testing.T) {
	l := build(t, program)

	tests := []struct {
		class, attr ast.Symbol
		want        int
	}{
		{"A", "n", 1},
		{"B", "n", 1},
		{"B", "me", 2},
		{"B", "peer", 5},
		{ast.Str, ast.StrField, 2},
	}
	for _, tt := range tests {
		if got, ok := l.FieldIndex(tt.class, tt.attr); !ok || got != tt.want {
			t.Errorf("FieldIndex(%s, %s) = %d, %v; want %d", tt.class, tt.attr, got, ok, tt.want)
		}
	}
	if _, ok := l.FieldIndex("B", "missing"); ok {
		t.Error("missing attribute has an index")
	}
}

func TestWrite(t *testing.T) {
	l := build(t, program)
	path := filepath.Join(t.TempDir(), "out", "layout.ll")

	if err := l.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"%Object = type { i8** }", "%B = type {"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("layout missing %q:\n%s", want, data)
		}
	}
}
