package semant

import (
	"strings"
	"testing"

	"cool-checker/ast"
	"cool-checker/diag"
	"cool-checker/parser"
)

const mainClass = "class Main { main() : Object { 0 }; };\n"

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, errs := parser.ParseFile("test.cl", strings.NewReader(src))
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return program
}

func analyze(t *testing.T, src string, opts Options) (*ClassTable, *diag.Sink, *ast.Program) {
	t.Helper()
	program := parseProgram(t, src)
	sink := diag.NewSink(diag.LogLevelSilent)
	ct := Analyze(program, sink, opts)
	return ct, sink, program
}

// analyzeWithMain appends a trivial Main class after src so that line
// numbers inside src are unchanged.
func analyzeWithMain(t *testing.T, src string) (*ClassTable, *diag.Sink, *ast.Program) {
	t.Helper()
	return analyze(t, src+mainClass, Options{})
}

func messages(sink *diag.Sink) []string {
	var out []string
	for _, d := range sink.Diagnostics() {
		out = append(out, d.String())
	}
	return out
}

func methodBody(t *testing.T, program *ast.Program, class, method ast.Symbol) ast.Expression {
	t.Helper()
	for _, c := range program.Classes {
		if c.Name.Value != class {
			continue
		}
		for _, f := range c.Features {
			if m, ok := f.(*ast.Method); ok && m.Name.Value == method {
				return m.Body
			}
		}
	}
	t.Fatalf("method %s.%s not found", class, method)
	return nil
}

func assertErrorsContain(t *testing.T, errors []string, substr string) {
	t.Helper()
	for _, err := range errors {
		if strings.Contains(err, substr) {
			return
		}
	}
	t.Errorf("Expected error containing %q, got: %v", substr, errors)
}

func assertNoErrors(t *testing.T, errors []string) {
	t.Helper()
	if len(errors) > 0 {
		t.Errorf("Expected no errors, got: %v", errors)
	}
}

func assertErrorCount(t *testing.T, errors []string, n int) {
	t.Helper()
	if len(errors) != n {
		t.Errorf("Expected %d errors, got %d: %v", n, len(errors), errors)
	}
}
