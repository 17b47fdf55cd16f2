package semant

import (
	"cool-checker/ast"
	"cool-checker/diag"
)

// inheritance from these is forbidden
var sealedClasses = map[ast.Symbol]bool{
	ast.Int:      true,
	ast.Bool:     true,
	ast.Str:      true,
	ast.SelfType: true,
}

// ValidateClasses checks the class hierarchy: redefinitions, bad or missing
// parents, inheritance cycles and the Main class. Type checking must not run
// when it reports anything.
func ValidateClasses(ct *ClassTable, sink *diag.Sink) {
	defined := make(map[ast.Symbol]bool)

	for _, class := range ct.UserClasses() {
		name := class.Name.Value

		switch {
		case ast.IsBasic(name) || name == ast.SelfType:
			sink.Errorf(class.Filename, class.Line(), "Redefinition of basic class %s.", name)
			continue
		case defined[name]:
			sink.Errorf(class.Filename, class.Line(), "Class %s was previously defined.", name)
			continue
		}
		defined[name] = true

		parent := class.ParentName()
		switch {
		case parent == ast.NoClass:
		case sealedClasses[parent]:
			sink.Errorf(class.Filename, class.Line(), "Class %s cannot inherit class %s.", name, parent)
		case !ct.IsDefined(parent):
			sink.Errorf(class.Filename, class.Line(), "Class %s inherits from an undefined class %s.", name, parent)
		}
	}

	for _, class := range ct.UserClasses() {
		if onCycle(ct, class.Name.Value) {
			sink.Errorf(class.Filename, class.Line(),
				"Class %s, or an ancestor of %s, is involved in an inheritance cycle.",
				class.Name.Value, class.Name.Value)
		}
	}

	validateMain(ct, sink)
}

// onCycle reports whether following parents from name leads back to name.
func onCycle(ct *ClassTable, name ast.Symbol) bool {
	seen := make(map[ast.Symbol]bool)
	for cur := ct.ParentOf(name); cur != ast.NoClass && !seen[cur]; cur = ct.ParentOf(cur) {
		if cur == name {
			return true
		}
		seen[cur] = true
	}
	return false
}

func validateMain(ct *ClassTable, sink *diag.Sink) {
	mainClass, ok := ct.Class(ast.Main)
	if !ok {
		sink.Error("Class Main is not defined.")
		return
	}

	m, owner, ok := ct.LookupMethod(ast.Main, ast.MainMethod)
	if !ok {
		sink.Errorf(mainClass.Filename, mainClass.Line(), "No 'main' method in class Main.")
		return
	}
	if len(m.Formals) > 0 {
		sink.Errorf(ct.FilenameOf(owner), m.Line(), "'main' method in class Main should have no arguments.")
	}
}

// validateFeatures checks the attribute and method declarations of class
// before its expressions are typed.
func (c *Checker) validateFeatures(class *ast.Class) {
	attrs := make(map[ast.Symbol]bool)
	methods := make(map[ast.Symbol]bool)

	for _, feature := range class.Features {
		switch f := feature.(type) {
		case *ast.Attribute:
			c.validateAttribute(class, f, attrs)
		case *ast.Method:
			c.validateMethod(class, f, methods)
		}
	}
}

func (c *Checker) validateAttribute(class *ast.Class, a *ast.Attribute, seen map[ast.Symbol]bool) {
	name := a.Name.Value

	switch {
	case name == ast.Self:
		c.errorf(a, "'self' cannot be the name of an attribute.")
	case seen[name]:
		c.errorf(a, "Attribute %s is multiply defined in class.", name)
	default:
		if _, inherited := c.classes.inheritedAttribute(class.Name.Value, name); inherited {
			c.errorf(a, "Attribute %s is an attribute of an inherited class.", name)
		}
	}
	seen[name] = true

	if !c.typeDefined(a.Type.Value) {
		c.errorf(a, "Class %s of attribute %s is undefined.", a.Type.Value, name)
	}
}

func (c *Checker) validateMethod(class *ast.Class, m *ast.Method, seen map[ast.Symbol]bool) {
	name := m.Name.Value
	if seen[name] {
		c.errorf(m, "Method %s is multiply defined.", name)
	}
	seen[name] = true

	formals := make(map[ast.Symbol]bool)
	for _, formal := range m.Formals {
		fname, ftype := formal.Name.Value, formal.Type.Value

		switch {
		case fname == ast.Self:
			c.errorf(formal, "'self' cannot be the name of a formal parameter.")
		case formals[fname]:
			c.errorf(formal, "Formal parameter %s is multiply defined.", fname)
		}
		formals[fname] = true

		switch {
		case ftype == ast.SelfType:
			c.errorf(formal, "Formal parameter %s cannot have type SELF_TYPE.", fname)
		case !c.classes.IsDefined(ftype):
			c.errorf(formal, "Class %s of formal parameter %s is undefined.", ftype, fname)
		}
	}

	if !c.typeDefined(m.ReturnType.Value) {
		c.errorf(m, "Undefined return type %s in method %s.", m.ReturnType.Value, name)
	}

	c.validateOverride(class, m)
}

// validateOverride requires a redefined method to keep the signature of the
// nearest ancestor declaration exactly.
func (c *Checker) validateOverride(class *ast.Class, m *ast.Method) {
	name := m.Name.Value
	original, _, ok := c.classes.LookupMethod(c.classes.ParentOf(class.Name.Value), name)
	if !ok {
		return
	}

	if len(original.Formals) != len(m.Formals) {
		c.errorf(m, "Incompatible number of formal parameters in redefined method %s.", name)
		return
	}
	for i, formal := range m.Formals {
		if got, want := formal.Type.Value, original.Formals[i].Type.Value; got != want {
			c.errorf(formal, "In redefined method %s, parameter type %s is different from original type %s.",
				name, got, want)
		}
	}
	if got, want := m.ReturnType.Value, original.ReturnType.Value; got != want {
		c.errorf(m, "In redefined method %s, return type %s is different from original return type %s.",
			name, got, want)
	}
}
