package semant

import (
	"cool-checker/ast"
)

// UnknownFilename is returned by FilenameOf for names that are not classes.
const UnknownFilename = "<unknown>"

// ClassTable is the inheritance graph: the basic classes followed by the
// program's classes. It is read-only once built.
type ClassTable struct {
	classes []*ast.Class
	user    []*ast.Class

	// first declaration of each name wins, so basics shadow user redefinitions
	index map[ast.Symbol]*ast.Class
}

func NewClassTable(program *ast.Program) *ClassTable {
	ct := &ClassTable{index: make(map[ast.Symbol]*ast.Class)}

	ct.classes = append(basicClasses(), program.Classes...)
	ct.user = program.Classes

	for _, c := range ct.classes {
		if _, exists := ct.index[c.Name.Value]; !exists {
			ct.index[c.Name.Value] = c
		}
	}
	return ct
}

// Classes returns every class, basic classes first.
func (ct *ClassTable) Classes() []*ast.Class {
	return ct.classes
}

// UserClasses returns the program's own classes in declaration order.
func (ct *ClassTable) UserClasses() []*ast.Class {
	return ct.user
}

func (ct *ClassTable) Class(name ast.Symbol) (*ast.Class, bool) {
	c, ok := ct.index[name]
	return c, ok
}

func (ct *ClassTable) IsDefined(name ast.Symbol) bool {
	_, ok := ct.index[name]
	return ok
}

// ParentOf returns the declared parent of name, or NoClass when name is the
// root or unknown. SELF_TYPE must already be normalized by the caller.
func (ct *ClassTable) ParentOf(name ast.Symbol) ast.Symbol {
	if c, ok := ct.index[name]; ok {
		return c.ParentName()
	}
	return ast.NoClass
}

func (ct *ClassTable) FilenameOf(name ast.Symbol) string {
	if c, ok := ct.index[name]; ok {
		return c.Filename
	}
	return UnknownFilename
}

// walk calls visit for name and each of its ancestors until visit returns
// false or the chain ends. The walk is bounded by the number of classes so
// a cyclic graph cannot hang it.
func (ct *ClassTable) walk(name ast.Symbol, visit func(ast.Symbol) bool) {
	cur := name
	for steps := 0; cur != ast.NoClass && steps <= len(ct.classes); steps++ {
		if !visit(cur) {
			return
		}
		cur = ct.ParentOf(cur)
	}
}

// Ancestors returns name and its ancestors, nearest first.
func (ct *ClassTable) Ancestors(name ast.Symbol) []ast.Symbol {
	var chain []ast.Symbol
	ct.walk(name, func(s ast.Symbol) bool {
		chain = append(chain, s)
		return true
	})
	return chain
}

// Conforms reports whether child is a subtype of parent. SELF_TYPE must be
// normalized by the caller.
func (ct *ClassTable) Conforms(child, parent ast.Symbol) bool {
	if child == parent || child == ast.NoType || parent == ast.Object {
		return true
	}

	found := false
	ct.walk(child, func(s ast.Symbol) bool {
		found = s == parent
		return !found
	})
	return found
}

// Lub returns the least upper bound of a and b. NoType is its identity.
// SELF_TYPE must be normalized by the caller.
func (ct *ClassTable) Lub(a, b ast.Symbol) ast.Symbol {
	if a == ast.NoType {
		return b
	}
	if b == ast.NoType {
		return a
	}

	ancestors := make(map[ast.Symbol]bool)
	ct.walk(a, func(s ast.Symbol) bool {
		ancestors[s] = true
		return true
	})

	result := ast.Object
	ct.walk(b, func(s ast.Symbol) bool {
		if ancestors[s] {
			result = s
			return false
		}
		return true
	})
	return result
}

// Normalize replaces SELF_TYPE with the enclosing class. Every comparison and
// join goes through it; result types keep SELF_TYPE literally.
func Normalize(t, current ast.Symbol) ast.Symbol {
	if t == ast.SelfType {
		return current
	}
	return t
}

// LookupMethod finds the nearest declaration of method name starting at
// class and walking towards Object. It also returns the declaring class.
func (ct *ClassTable) LookupMethod(class, name ast.Symbol) (*ast.Method, ast.Symbol, bool) {
	var (
		found *ast.Method
		owner ast.Symbol
	)

	ct.walk(class, func(s ast.Symbol) bool {
		c, ok := ct.index[s]
		if !ok {
			return true
		}
		for _, feature := range c.Features {
			if m, ok := feature.(*ast.Method); ok && m.Name.Value == name {
				found, owner = m, s
				return false
			}
		}
		return true
	})

	return found, owner, found != nil
}

// OwnedAttribute pairs an attribute with the class declaring it.
type OwnedAttribute struct {
	Owner ast.Symbol
	*ast.Attribute
}

// Attributes returns every attribute visible in class: inherited ones first,
// from Object down, then the class's own in declaration order.
func (ct *ClassTable) Attributes(class ast.Symbol) []OwnedAttribute {
	chain := ct.Ancestors(class)

	var attrs []OwnedAttribute
	for i := len(chain) - 1; i >= 0; i-- {
		c, ok := ct.index[chain[i]]
		if !ok {
			continue
		}
		for _, feature := range c.Features {
			if a, ok := feature.(*ast.Attribute); ok {
				attrs = append(attrs, OwnedAttribute{Owner: chain[i], Attribute: a})
			}
		}
	}
	return attrs
}

// inheritedAttribute finds an attribute called name declared by a proper
// ancestor of class.
func (ct *ClassTable) inheritedAttribute(class, name ast.Symbol) (OwnedAttribute, bool) {
	for _, a := range ct.Attributes(ct.ParentOf(class)) {
		if a.Name.Value == name {
			return a, true
		}
	}
	return OwnedAttribute{}, false
}
