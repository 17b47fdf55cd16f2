package ast

import (
	"cool-checker/lexer"
)

type Node interface {
	TokenLiteral() string
	Line() int
}

// Expression is the closed set of COOL expression kinds. Every expression
// carries exactly one static type once semantic analysis has visited it.
type Expression interface {
	Node
	StaticType() Symbol
	SetStaticType(Symbol)
	expressionNode()
}

// Feature is either an *Attribute or a *Method.
type Feature interface {
	Node
	FeatureName() Symbol
	featureNode()
}

// Annotation holds the inferred type of an expression. The first write wins;
// later writes are ignored so a decorated tree is never rewritten.
type Annotation struct {
	typ Symbol
}

func (a *Annotation) StaticType() Symbol { return a.typ }

func (a *Annotation) SetStaticType(t Symbol) {
	if a.typ == "" {
		a.typ = t
	}
}

type TypeIdentifier struct {
	Token lexer.Token
	Value Symbol
}

func (ti *TypeIdentifier) TokenLiteral() string { return ti.Token.Literal }
func (ti *TypeIdentifier) Line() int            { return ti.Token.Line }

type ObjectIdentifier struct {
	Annotation
	Token lexer.Token
	Value Symbol
}

func (oi *ObjectIdentifier) TokenLiteral() string { return oi.Token.Literal }
func (oi *ObjectIdentifier) Line() int            { return oi.Token.Line }
func (oi *ObjectIdentifier) expressionNode()      {}

type Program struct {
	Classes []*Class
}

func (p *Program) TokenLiteral() string { return "" }

type Class struct {
	Token    lexer.Token
	Name     *TypeIdentifier
	Parent   *TypeIdentifier
	Features []Feature
	Filename string
}

func (c *Class) TokenLiteral() string { return c.Token.Literal }
func (c *Class) Line() int            { return c.Token.Line }

// ParentName returns the declared parent, or NoClass for a root class.
func (c *Class) ParentName() Symbol {
	if c.Parent == nil {
		return NoClass
	}
	return c.Parent.Value
}

type Attribute struct {
	Token lexer.Token
	Name  *ObjectIdentifier
	Type  *TypeIdentifier
	Init  Expression // nil when there is no initializer
}

func (a *Attribute) TokenLiteral() string { return a.Token.Literal }
func (a *Attribute) Line() int            { return a.Token.Line }
func (a *Attribute) FeatureName() Symbol  { return a.Name.Value }
func (a *Attribute) featureNode()         {}

type Method struct {
	Token      lexer.Token
	Name       *ObjectIdentifier
	Formals    []*Formal
	ReturnType *TypeIdentifier
	Body       Expression
}

func (m *Method) TokenLiteral() string { return m.Token.Literal }
func (m *Method) Line() int            { return m.Token.Line }
func (m *Method) FeatureName() Symbol  { return m.Name.Value }
func (m *Method) featureNode()         {}

type Formal struct {
	Token lexer.Token
	Name  *ObjectIdentifier
	Type  *TypeIdentifier
}

func (f *Formal) TokenLiteral() string { return f.Token.Literal }
func (f *Formal) Line() int            { return f.Token.Line }

// { e1; e2; ... }
type BlockExpression struct {
	Annotation
	Token       lexer.Token
	Expressions []Expression
}

func (be *BlockExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BlockExpression) Line() int            { return be.Token.Line }
func (be *BlockExpression) expressionNode()      {}

type IfExpression struct {
	Annotation
	Token       lexer.Token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (ie *IfExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IfExpression) Line() int            { return ie.Token.Line }
func (ie *IfExpression) expressionNode()      {}

type WhileExpression struct {
	Annotation
	Token     lexer.Token
	Condition Expression
	Body      Expression
}

func (we *WhileExpression) TokenLiteral() string { return we.Token.Literal }
func (we *WhileExpression) Line() int            { return we.Token.Line }
func (we *WhileExpression) expressionNode()      {}

// LetExpression binds exactly one name. A source-level let with several
// bindings is nested, one LetExpression per binding.
type LetExpression struct {
	Annotation
	Token lexer.Token
	Name  *ObjectIdentifier
	Type  *TypeIdentifier
	Init  Expression // nil when there is no initializer
	Body  Expression
}

func (le *LetExpression) TokenLiteral() string { return le.Token.Literal }
func (le *LetExpression) Line() int            { return le.Token.Line }
func (le *LetExpression) expressionNode()      {}

type CaseExpression struct {
	Annotation
	Token      lexer.Token
	Expression Expression
	Cases      []*Case
}

func (ce *CaseExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CaseExpression) Line() int            { return ce.Token.Line }
func (ce *CaseExpression) expressionNode()      {}

// Case is one branch of a case expression: Name : Type => Expression.
type Case struct {
	Token      lexer.Token
	Name       *ObjectIdentifier
	Type       *TypeIdentifier
	Expression Expression
}

func (c *Case) TokenLiteral() string { return c.Token.Literal }
func (c *Case) Line() int            { return c.Token.Line }

type NewExpression struct {
	Annotation
	Token lexer.Token
	Type  *TypeIdentifier
}

func (ne *NewExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NewExpression) Line() int            { return ne.Token.Line }
func (ne *NewExpression) expressionNode()      {}

type IsVoidExpression struct {
	Annotation
	Token      lexer.Token
	Expression Expression
}

func (ie *IsVoidExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IsVoidExpression) Line() int            { return ie.Token.Line }
func (ie *IsVoidExpression) expressionNode()      {}

// NotExpression is the boolean complement.
type NotExpression struct {
	Annotation
	Token      lexer.Token
	Expression Expression
}

func (ne *NotExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NotExpression) Line() int            { return ne.Token.Line }
func (ne *NotExpression) expressionNode()      {}

// NegExpression is integer negation (~e).
type NegExpression struct {
	Annotation
	Token      lexer.Token
	Expression Expression
}

func (ne *NegExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NegExpression) Line() int            { return ne.Token.Line }
func (ne *NegExpression) expressionNode()      {}

type BooleanLiteral struct {
	Annotation
	Token lexer.Token
	Value bool
}

func (be *BooleanLiteral) TokenLiteral() string { return be.Token.Literal }
func (be *BooleanLiteral) Line() int            { return be.Token.Line }
func (be *BooleanLiteral) expressionNode()      {}

type IntegerLiteral struct {
	Annotation
	Token lexer.Token
	Value int
}

func (ie *IntegerLiteral) TokenLiteral() string { return ie.Token.Literal }
func (ie *IntegerLiteral) Line() int            { return ie.Token.Line }
func (ie *IntegerLiteral) expressionNode()      {}

type StringLiteral struct {
	Annotation
	Token lexer.Token
	Value string
}

func (se *StringLiteral) TokenLiteral() string { return se.Token.Literal }
func (se *StringLiteral) Line() int            { return se.Token.Line }
func (se *StringLiteral) expressionNode()      {}

// MethodCall is dynamic dispatch: Object.Method(Arguments). A call written
// without a receiver has an implicit self receiver.
type MethodCall struct {
	Annotation
	Token     lexer.Token
	Object    Expression
	Method    *ObjectIdentifier
	Arguments []Expression
}

func (mc *MethodCall) TokenLiteral() string { return mc.Token.Literal }
func (mc *MethodCall) Line() int            { return mc.Token.Line }
func (mc *MethodCall) expressionNode()      {}

// StaticMethodCall is static dispatch: Object@Type.Method(Arguments).
type StaticMethodCall struct {
	Annotation
	Token     lexer.Token
	Object    Expression
	Type      *TypeIdentifier
	Method    *ObjectIdentifier
	Arguments []Expression
}

func (sc *StaticMethodCall) TokenLiteral() string { return sc.Token.Literal }
func (sc *StaticMethodCall) Line() int            { return sc.Token.Line }
func (sc *StaticMethodCall) expressionNode()      {}

type Assignment struct {
	Annotation
	Token      lexer.Token
	Name       *ObjectIdentifier
	Expression Expression
}

func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) Line() int            { return a.Token.Line }
func (a *Assignment) expressionNode()      {}

// InfixExpression covers arithmetic (+ - * /), relational (< <=) and
// equality (=) operators.
type InfixExpression struct {
	Annotation
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) Line() int            { return ie.Token.Line }
func (ie *InfixExpression) expressionNode()      {}

// IsArithmetic reports whether the operator yields an Int.
func (ie *InfixExpression) IsArithmetic() bool {
	switch ie.Operator {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// NoExpression stands for an absent expression, such as the bodies of the
// built-in methods. Its type is NoType.
type NoExpression struct {
	Annotation
}

func (ne *NoExpression) TokenLiteral() string { return "" }
func (ne *NoExpression) Line() int            { return 0 }
func (ne *NoExpression) expressionNode()      {}
