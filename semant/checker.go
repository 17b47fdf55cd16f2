package semant

import (
	"cool-checker/ast"
	"cool-checker/diag"
)

// Options tune how analysis proceeds once errors have been reported.
type Options struct {
	// HaltAfterClass stops at the first class whose pass reported an error
	// instead of going on to the remaining classes.
	HaltAfterClass bool
}

// Checker type checks the classes of one program and decorates every
// expression with its static type.
type Checker struct {
	classes *ClassTable
	sink    *diag.Sink
	opts    Options

	// per-class state
	current  ast.Symbol
	filename string
	env      *Environment
}

func NewChecker(classes *ClassTable, sink *diag.Sink, opts Options) *Checker {
	return &Checker{
		classes: classes,
		sink:    sink,
		opts:    opts,
	}
}

// Analyze builds the class table for program, validates the class hierarchy
// and, when that succeeds, type checks every class. The class table is
// returned even when errors were reported.
func Analyze(program *ast.Program, sink *diag.Sink, opts Options) *ClassTable {
	ct := NewClassTable(program)

	ValidateClasses(ct, sink)
	if !sink.ShouldProceed() {
		return ct
	}

	NewChecker(ct, sink, opts).Check()
	return ct
}

// Check runs every user class in declaration order.
func (c *Checker) Check() {
	for _, class := range c.classes.UserClasses() {
		c.CheckClass(class)

		if c.opts.HaltAfterClass && !c.sink.ShouldProceed() {
			return
		}
	}
}

// CheckClass opens the class scope holding self and every visible attribute,
// checks the attribute initializers in it and then each method in a nested
// scope of its own.
func (c *Checker) CheckClass(class *ast.Class) {
	c.sink.Progress("class %s", class.Name.Value)

	c.current = class.Name.Value
	c.filename = class.Filename
	c.env = NewEnvironment()

	c.validateFeatures(class)

	c.env.EnterScope()
	defer c.env.ExitScope()

	c.env.AddID(ast.Self, ast.SelfType)
	for _, a := range c.classes.Attributes(c.current) {
		if a.Name.Value != ast.Self {
			c.env.AddID(a.Name.Value, a.Type.Value)
		}
	}

	for _, feature := range class.Features {
		if a, ok := feature.(*ast.Attribute); ok {
			c.checkAttribute(a)
		}
	}
	for _, feature := range class.Features {
		if m, ok := feature.(*ast.Method); ok {
			c.checkMethod(m)
		}
	}
}

func (c *Checker) checkAttribute(a *ast.Attribute) {
	if a.Init == nil {
		return
	}

	t := c.checkExpr(a.Init)
	declared := a.Type.Value
	if c.typeDefined(declared) && !c.assignable(t, declared) {
		c.errorf(a, "Inferred type %s of initialization of attribute %s does not conform to declared type %s.",
			t, a.Name.Value, declared)
	}
}

func (c *Checker) checkMethod(m *ast.Method) {
	c.env.EnterScope()
	defer c.env.ExitScope()

	for _, formal := range m.Formals {
		if formal.Name.Value != ast.Self {
			c.env.AddID(formal.Name.Value, formal.Type.Value)
		}
	}

	inferred := c.checkExpr(m.Body)
	declared := m.ReturnType.Value
	if !c.typeDefined(declared) {
		return
	}

	if !c.classes.Conforms(c.normalize(inferred), c.normalize(declared)) {
		c.errorf(m, "Inferred return type %s of method %s does not conform to declared return type %s.",
			inferred, m.Name.Value, declared)
	}
}

func (c *Checker) errorf(node ast.Node, format string, args ...interface{}) {
	c.sink.Errorf(c.filename, node.Line(), format, args...)
}

func (c *Checker) normalize(t ast.Symbol) ast.Symbol {
	return Normalize(t, c.current)
}

// typeDefined reports whether t may appear as a declared type.
func (c *Checker) typeDefined(t ast.Symbol) bool {
	return t == ast.SelfType || c.classes.IsDefined(t)
}

// assignable reports whether a value of static type given may be stored in a
// slot declared as declared. A SELF_TYPE slot only takes SELF_TYPE values.
func (c *Checker) assignable(given, declared ast.Symbol) bool {
	if given == ast.NoType {
		return true
	}
	if declared == ast.SelfType {
		return given == ast.SelfType
	}
	return c.classes.Conforms(c.normalize(given), declared)
}
