package semant

import (
	"cool-checker/ast"
)

// checkExpr infers the static type of e, records it on the node and returns
// it. A missing expression has type NoType.
func (c *Checker) checkExpr(e ast.Expression) ast.Symbol {
	if e == nil {
		return ast.NoType
	}
	t := c.infer(e)
	e.SetStaticType(t)
	return t
}

func (c *Checker) infer(e ast.Expression) ast.Symbol {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return ast.Int
	case *ast.StringLiteral:
		return ast.Str
	case *ast.BooleanLiteral:
		return ast.Bool
	case *ast.NoExpression:
		return ast.NoType

	case *ast.ObjectIdentifier:
		return c.checkIdentifier(n)
	case *ast.Assignment:
		return c.checkAssignment(n)

	case *ast.BlockExpression:
		last := ast.Object
		for _, exp := range n.Expressions {
			last = c.checkExpr(exp)
		}
		return last

	case *ast.NewExpression:
		if !c.typeDefined(n.Type.Value) {
			c.errorf(n, "'new' used with undefined class %s.", n.Type.Value)
		}
		return n.Type.Value

	case *ast.IsVoidExpression:
		c.checkExpr(n.Expression)
		return ast.Bool
	case *ast.NotExpression:
		c.checkExpr(n.Expression)
		return ast.Bool
	case *ast.NegExpression:
		c.checkExpr(n.Expression)
		return ast.Int

	case *ast.InfixExpression:
		c.checkExpr(n.Left)
		c.checkExpr(n.Right)
		if n.IsArithmetic() {
			return ast.Int
		}
		return ast.Bool

	case *ast.IfExpression:
		return c.checkIf(n)

	case *ast.WhileExpression:
		if c.checkExpr(n.Condition) != ast.Bool {
			c.errorf(n, "Loop condition does not have type Bool.")
		}
		c.checkExpr(n.Body)
		return ast.Object

	case *ast.LetExpression:
		return c.checkLet(n)
	case *ast.CaseExpression:
		return c.checkCase(n)
	case *ast.MethodCall:
		return c.checkDispatch(n)
	case *ast.StaticMethodCall:
		return c.checkStaticDispatch(n)
	}

	return ast.Object
}

func (c *Checker) checkIdentifier(n *ast.ObjectIdentifier) ast.Symbol {
	if n.Value == ast.Self {
		return ast.SelfType
	}
	if t, ok := c.env.Lookup(n.Value); ok {
		return t
	}
	c.errorf(n, "Undeclared identifier %s.", n.Value)
	return ast.Object
}

func (c *Checker) checkAssignment(n *ast.Assignment) ast.Symbol {
	name := n.Name.Value
	if name == ast.Self {
		c.errorf(n, "Cannot assign to 'self'.")
		c.checkExpr(n.Expression)
		return ast.Object
	}

	t := c.checkExpr(n.Expression)

	declared, ok := c.env.Lookup(name)
	if !ok {
		c.errorf(n, "Assignment to undeclared variable %s.", name)
		return t
	}
	if !c.assignable(t, declared) {
		c.errorf(n, "Type %s of assigned expression does not conform to declared type %s of identifier %s.",
			t, declared, name)
	}
	return t
}

func (c *Checker) checkIf(n *ast.IfExpression) ast.Symbol {
	if c.checkExpr(n.Condition) != ast.Bool {
		c.errorf(n, "Predicate of 'if' does not have type Bool.")
	}

	thenType := c.checkExpr(n.Consequence)
	elseType := c.checkExpr(n.Alternative)
	if thenType == ast.SelfType && elseType == ast.SelfType {
		return ast.SelfType
	}
	return c.classes.Lub(c.normalize(thenType), c.normalize(elseType))
}

// checkLet checks the initializer outside the new scope, so the bound name
// is only visible in the body.
func (c *Checker) checkLet(n *ast.LetExpression) ast.Symbol {
	name, declared := n.Name.Value, n.Type.Value

	initType := c.checkExpr(n.Init)
	if !c.typeDefined(declared) {
		c.errorf(n, "Class %s of let-bound identifier %s is undefined.", declared, name)
	} else if n.Init != nil && !c.assignable(initType, declared) {
		c.errorf(n, "Inferred type %s of initialization of %s does not conform to identifier's declared type %s.",
			initType, name, declared)
	}

	c.env.EnterScope()
	defer c.env.ExitScope()

	if name == ast.Self {
		c.errorf(n, "'self' cannot be bound in a 'let' expression.")
	} else {
		c.env.AddID(name, declared)
	}
	return c.checkExpr(n.Body)
}

func (c *Checker) checkCase(n *ast.CaseExpression) ast.Symbol {
	c.checkExpr(n.Expression)

	result := ast.NoType
	allSelfType := true
	seen := make(map[ast.Symbol]bool)

	for _, branch := range n.Cases {
		branchType := branch.Type.Value
		if seen[branchType] {
			c.errorf(branch, "Duplicate branch %s in case statement.", branchType)
		}
		seen[branchType] = true

		if !c.typeDefined(branchType) {
			c.errorf(branch, "Class %s of case branch is undefined.", branchType)
		}

		t := c.checkBranch(branch)
		if t != ast.SelfType {
			allSelfType = false
		}
		result = c.classes.Lub(result, c.normalize(t))
	}

	switch {
	case len(n.Cases) == 0:
		return ast.Object
	case allSelfType:
		return ast.SelfType
	case result == ast.NoType:
		return ast.Object
	}
	return result
}

func (c *Checker) checkBranch(branch *ast.Case) ast.Symbol {
	c.env.EnterScope()
	defer c.env.ExitScope()

	if branch.Name.Value == ast.Self {
		c.errorf(branch, "'self' bound in 'case'.")
	} else {
		c.env.AddID(branch.Name.Value, branch.Type.Value)
	}
	return c.checkExpr(branch.Expression)
}
