package semant

import (
	"cool-checker/ast"
)

// checkDispatch types e.m(args). The method is resolved on the receiver's
// class with SELF_TYPE standing for the current class; a SELF_TYPE return
// yields the receiver's own static type.
func (c *Checker) checkDispatch(n *ast.MethodCall) ast.Symbol {
	receiver := c.checkExpr(n.Object)
	args := c.checkArguments(n.Arguments)

	name := n.Method.Value
	m, _, ok := c.classes.LookupMethod(c.normalize(receiver), name)
	if !ok {
		c.errorf(n, "Dispatch to undefined method %s.", name)
		return ast.Object
	}

	c.checkActuals(n, m, args, "")

	if m.ReturnType.Value == ast.SelfType {
		return receiver
	}
	return m.ReturnType.Value
}

// checkStaticDispatch types e@T.m(args). The method is resolved on T and a
// SELF_TYPE return yields T.
func (c *Checker) checkStaticDispatch(n *ast.StaticMethodCall) ast.Symbol {
	receiver := c.checkExpr(n.Object)

	declared := n.Type.Value
	if declared == ast.SelfType {
		c.errorf(n, "Static dispatch to SELF_TYPE.")
	}

	target := c.normalize(declared)
	if !c.classes.IsDefined(target) {
		c.errorf(n, "Static dispatch to undefined class %s.", declared)
		c.checkArguments(n.Arguments)
		return ast.Object
	}

	if !c.classes.Conforms(c.normalize(receiver), target) {
		c.errorf(n, "Expression type %s does not conform to declared static dispatch type %s.",
			receiver, declared)
	}

	args := c.checkArguments(n.Arguments)

	name := n.Method.Value
	m, _, ok := c.classes.LookupMethod(target, name)
	if !ok {
		c.errorf(n, "Dispatch to undefined method %s.", name)
		return ast.Object
	}

	c.checkActuals(n, m, args, target)

	if m.ReturnType.Value == ast.SelfType {
		return declared
	}
	return m.ReturnType.Value
}

func (c *Checker) checkArguments(args []ast.Expression) []ast.Symbol {
	types := make([]ast.Symbol, len(args))
	for i, arg := range args {
		types[i] = c.checkExpr(arg)
	}
	return types
}

// checkActuals matches argument types against m's formals. With a non-empty
// static type, a SELF_TYPE formal is read as that type; otherwise it only
// accepts a SELF_TYPE argument. Argument types are not compared when the
// count is wrong.
func (c *Checker) checkActuals(call ast.Node, m *ast.Method, args []ast.Symbol, static ast.Symbol) {
	name := m.Name.Value
	if len(args) != len(m.Formals) {
		c.errorf(call, "Method %s called with wrong number of arguments.", name)
		return
	}

	for i, formal := range m.Formals {
		given, declared := args[i], formal.Type.Value

		var ok bool
		if declared == ast.SelfType && static != "" {
			ok = c.classes.Conforms(c.normalize(given), static)
		} else {
			ok = c.assignable(given, declared)
		}

		if !ok {
			c.errorf(call, "In call of method %s, type %s of parameter %s does not conform to declared type %s.",
				name, given, formal.Name.Value, declared)
		}
	}
}
