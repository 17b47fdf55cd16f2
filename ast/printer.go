package ast

import (
	"fmt"
	"strings"
)

// PrintAST renders the program as a tree. Expressions are suffixed with their
// static type once semantic analysis has decorated them.
func PrintAST(program *Program) string {
	var sb strings.Builder
	sb.WriteString("Program\n")

	for i, class := range program.Classes {
		last := i == len(program.Classes)-1
		sb.WriteString(branch(last) + "Class: " + class.Name.Value.String())
		if class.Parent != nil {
			sb.WriteString(" inherits " + class.Parent.Value.String())
		}
		if class.Filename != "" {
			sb.WriteString(" (" + class.Filename + ")")
		}
		sb.WriteString("\n")

		classIndent := indent(last)
		for j, feature := range class.Features {
			printFeature(&sb, feature, classIndent, j == len(class.Features)-1)
		}
	}
	return sb.String()
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func indent(last bool) string {
	if last {
		return "    "
	}
	return "│   "
}

func printFeature(sb *strings.Builder, feature Feature, prefix string, last bool) {
	switch f := feature.(type) {
	case *Method:
		formals := make([]string, len(f.Formals))
		for i, formal := range f.Formals {
			formals[i] = formal.Name.Value.String() + ": " + formal.Type.Value.String()
		}
		fmt.Fprintf(sb, "%sMethod: %s(%s): %s\n", prefix+branch(last), f.Name.Value,
			strings.Join(formals, ", "), f.ReturnType.Value)
		printExpression(sb, f.Body, prefix+indent(last), true)

	case *Attribute:
		fmt.Fprintf(sb, "%sAttribute: %s: %s\n", prefix+branch(last), f.Name.Value, f.Type.Value)
		if f.Init != nil {
			printExpression(sb, f.Init, prefix+indent(last), true)
		}
	}
}

func typeSuffix(e Expression) string {
	if t := e.StaticType(); t != "" {
		return " : " + t.String()
	}
	return ""
}

func printExpression(sb *strings.Builder, exp Expression, prefix string, last bool) {
	if exp == nil {
		return
	}
	line := prefix + branch(last)
	child := prefix + indent(last)

	switch node := exp.(type) {
	case *IntegerLiteral:
		fmt.Fprintf(sb, "%sInteger: %d%s\n", line, node.Value, typeSuffix(node))

	case *StringLiteral:
		fmt.Fprintf(sb, "%sString: %q%s\n", line, node.Value, typeSuffix(node))

	case *BooleanLiteral:
		fmt.Fprintf(sb, "%sBoolean: %t%s\n", line, node.Value, typeSuffix(node))

	case *ObjectIdentifier:
		fmt.Fprintf(sb, "%sIdentifier: %s%s\n", line, node.Value, typeSuffix(node))

	case *NoExpression:
		fmt.Fprintf(sb, "%sNoExpr%s\n", line, typeSuffix(node))

	case *Assignment:
		fmt.Fprintf(sb, "%sAssign: %s%s\n", line, node.Name.Value, typeSuffix(node))
		printExpression(sb, node.Expression, child, true)

	case *MethodCall:
		fmt.Fprintf(sb, "%sDispatch: %s%s\n", line, node.Method.Value, typeSuffix(node))
		printExpression(sb, node.Object, child, len(node.Arguments) == 0)
		printList(sb, node.Arguments, child)

	case *StaticMethodCall:
		fmt.Fprintf(sb, "%sStaticDispatch: @%s.%s%s\n", line, node.Type.Value, node.Method.Value, typeSuffix(node))
		printExpression(sb, node.Object, child, len(node.Arguments) == 0)
		printList(sb, node.Arguments, child)

	case *BlockExpression:
		fmt.Fprintf(sb, "%sBlock%s\n", line, typeSuffix(node))
		printList(sb, node.Expressions, child)

	case *IfExpression:
		fmt.Fprintf(sb, "%sIf%s\n", line, typeSuffix(node))
		printExpression(sb, node.Condition, child, false)
		printExpression(sb, node.Consequence, child, false)
		printExpression(sb, node.Alternative, child, true)

	case *WhileExpression:
		fmt.Fprintf(sb, "%sWhile%s\n", line, typeSuffix(node))
		printExpression(sb, node.Condition, child, false)
		printExpression(sb, node.Body, child, true)

	case *LetExpression:
		fmt.Fprintf(sb, "%sLet: %s: %s%s\n", line, node.Name.Value, node.Type.Value, typeSuffix(node))
		if node.Init != nil {
			printExpression(sb, node.Init, child, false)
		}
		printExpression(sb, node.Body, child, true)

	case *CaseExpression:
		fmt.Fprintf(sb, "%sCase%s\n", line, typeSuffix(node))
		printExpression(sb, node.Expression, child, len(node.Cases) == 0)
		for i, c := range node.Cases {
			lastCase := i == len(node.Cases)-1
			fmt.Fprintf(sb, "%sBranch: %s: %s\n", child+branch(lastCase), c.Name.Value, c.Type.Value)
			printExpression(sb, c.Expression, child+indent(lastCase), true)
		}

	case *NewExpression:
		fmt.Fprintf(sb, "%sNew: %s%s\n", line, node.Type.Value, typeSuffix(node))

	case *IsVoidExpression:
		fmt.Fprintf(sb, "%sIsVoid%s\n", line, typeSuffix(node))
		printExpression(sb, node.Expression, child, true)

	case *NotExpression:
		fmt.Fprintf(sb, "%sNot%s\n", line, typeSuffix(node))
		printExpression(sb, node.Expression, child, true)

	case *NegExpression:
		fmt.Fprintf(sb, "%sNegation%s\n", line, typeSuffix(node))
		printExpression(sb, node.Expression, child, true)

	case *InfixExpression:
		fmt.Fprintf(sb, "%sInfix: %s%s\n", line, node.Operator, typeSuffix(node))
		printExpression(sb, node.Left, child, false)
		printExpression(sb, node.Right, child, true)
	}
}

func printList(sb *strings.Builder, exps []Expression, prefix string) {
	for i, e := range exps {
		printExpression(sb, e, prefix, i == len(exps)-1)
	}
}
