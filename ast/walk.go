package ast

// Inspect visits exp and its subexpressions in source order. If f returns
// false the children of that expression are skipped.
func Inspect(exp Expression, f func(Expression) bool) {
	if exp == nil || !f(exp) {
		return
	}

	switch n := exp.(type) {
	case *Assignment:
		Inspect(n.Expression, f)
	case *MethodCall:
		Inspect(n.Object, f)
		for _, arg := range n.Arguments {
			Inspect(arg, f)
		}
	case *StaticMethodCall:
		Inspect(n.Object, f)
		for _, arg := range n.Arguments {
			Inspect(arg, f)
		}
	case *BlockExpression:
		for _, e := range n.Expressions {
			Inspect(e, f)
		}
	case *IfExpression:
		Inspect(n.Condition, f)
		Inspect(n.Consequence, f)
		Inspect(n.Alternative, f)
	case *WhileExpression:
		Inspect(n.Condition, f)
		Inspect(n.Body, f)
	case *LetExpression:
		Inspect(n.Init, f)
		Inspect(n.Body, f)
	case *CaseExpression:
		Inspect(n.Expression, f)
		for _, c := range n.Cases {
			Inspect(c.Expression, f)
		}
	case *IsVoidExpression:
		Inspect(n.Expression, f)
	case *NotExpression:
		Inspect(n.Expression, f)
	case *NegExpression:
		Inspect(n.Expression, f)
	case *InfixExpression:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	}
}

// InspectProgram runs Inspect over every attribute initializer and method
// body of every class.
func InspectProgram(program *Program, f func(Expression) bool) {
	for _, class := range program.Classes {
		for _, feature := range class.Features {
			switch ft := feature.(type) {
			case *Attribute:
				Inspect(ft.Init, f)
			case *Method:
				Inspect(ft.Body, f)
			}
		}
	}
}
