package ast

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestAnnotationFirstWriteWins(t *testing.T) {
	lit := &IntegerLiteral{Value: 1}
	if lit.StaticType() != "" {
		t.Fatalf("fresh node has type %s", lit.StaticType())
	}

	lit.SetStaticType(Int)
	lit.SetStaticType(Str)
	if lit.StaticType() != Int {
		t.Errorf("annotation rewritten to %s", lit.StaticType())
	}
}

func TestParentName(t *testing.T) {
	root := &Class{Name: &TypeIdentifier{Value: "A"}}
	child := &Class{Name: &TypeIdentifier{Value: "B"}, Parent: &TypeIdentifier{Value: "A"}}

	if root.ParentName() != NoClass {
		t.Errorf("root parent = %s", root.ParentName())
	}
	if child.ParentName() != "A" {
		t.Errorf("child parent = %s", child.ParentName())
	}
}

func TestInspectOrder(t *testing.T) {
	// if x then f(1) else { 2; } fi
	exp := &IfExpression{
		Condition: &ObjectIdentifier{Value: "x"},
		Consequence: &MethodCall{
			Object:    &ObjectIdentifier{Value: Self},
			Method:    &ObjectIdentifier{Value: "f"},
			Arguments: []Expression{&IntegerLiteral{Value: 1}},
		},
		Alternative: &BlockExpression{Expressions: []Expression{&IntegerLiteral{Value: 2}}},
	}

	var got []string
	Inspect(exp, func(e Expression) bool {
		got = append(got, strings.TrimPrefix(fmt.Sprintf("%T", e), "*ast."))
		return true
	})

	want := []string{
		"IfExpression", "ObjectIdentifier", "MethodCall", "ObjectIdentifier",
		"IntegerLiteral", "BlockExpression", "IntegerLiteral",
	}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Errorf("visit order differs: %v", diff)
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	exp := &BlockExpression{Expressions: []Expression{
		&NotExpression{Expression: &BooleanLiteral{Value: true}},
		&IntegerLiteral{Value: 3},
	}}

	count := 0
	Inspect(exp, func(e Expression) bool {
		count++
		_, isNot := e.(*NotExpression)
		return !isNot
	})
	if count != 3 {
		t.Errorf("visited %d nodes, want 3", count)
	}
}

func TestPrintAST(t *testing.T) {
	body := &InfixExpression{
		Left:     &IntegerLiteral{Value: 1},
		Operator: "+",
		Right:    &IntegerLiteral{Value: 2},
	}
	body.SetStaticType(Int)

	program := &Program{Classes: []*Class{{
		Name:     &TypeIdentifier{Value: Main},
		Parent:   &TypeIdentifier{Value: IO},
		Filename: "main.cl",
		Features: []Feature{
			&Attribute{Name: &ObjectIdentifier{Value: "n"}, Type: &TypeIdentifier{Value: Int}},
			&Method{
				Name:       &ObjectIdentifier{Value: MainMethod},
				ReturnType: &TypeIdentifier{Value: Int},
				Body:       body,
			},
		},
	}}}

	out := PrintAST(program)
	for _, want := range []string{
		"Class: Main inherits IO (main.cl)",
		"Attribute: n: Int",
		"Method: main(): Int",
		"Integer: 1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, ": Int\n") {
		t.Errorf("typed node printed without its type:\n%s", out)
	}
}
