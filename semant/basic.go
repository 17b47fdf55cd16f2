package semant

import (
	"cool-checker/ast"
	"cool-checker/lexer"
)

// BasicFilename is the filename reported for the built-in classes.
const BasicFilename = "<basic class>"

// basicClasses builds Object, IO, Int, Bool and String. Their method bodies
// are empty since the runtime provides them.
func basicClasses() []*ast.Class {
	object := class(ast.Object, ast.NoClass,
		method(ast.Abort, ast.Object),
		method(ast.TypeName, ast.Str),
		method(ast.Copy, ast.SelfType),
	)

	io := class(ast.IO, ast.Object,
		method(ast.OutString, ast.SelfType, formal(ast.Arg, ast.Str)),
		method(ast.OutInt, ast.SelfType, formal(ast.Arg, ast.Int)),
		method(ast.InString, ast.Str),
		method(ast.InInt, ast.Int),
	)

	integer := class(ast.Int, ast.Object,
		attr(ast.Val, ast.PrimSlot),
	)

	boolean := class(ast.Bool, ast.Object,
		attr(ast.Val, ast.PrimSlot),
	)

	str := class(ast.Str, ast.Object,
		attr(ast.Val, ast.Int),
		attr(ast.StrField, ast.PrimSlot),
		method(ast.Length, ast.Int),
		method(ast.Concat, ast.Str, formal(ast.Arg, ast.Str)),
		method(ast.Substr, ast.Str, formal(ast.Arg, ast.Int), formal(ast.Arg2, ast.Int)),
	)

	return []*ast.Class{object, io, integer, boolean, str}
}

func class(name, parent ast.Symbol, features ...ast.Feature) *ast.Class {
	c := &ast.Class{
		Token:    lexer.Token{Type: lexer.CLASS, Literal: "class"},
		Name:     typeID(name),
		Features: features,
		Filename: BasicFilename,
	}
	if parent != ast.NoClass {
		c.Parent = typeID(parent)
	}
	return c
}

func method(name, ret ast.Symbol, formals ...*ast.Formal) *ast.Method {
	return &ast.Method{
		Name:       objectID(name),
		Formals:    formals,
		ReturnType: typeID(ret),
		Body:       &ast.NoExpression{},
	}
}

func formal(name, typ ast.Symbol) *ast.Formal {
	return &ast.Formal{Name: objectID(name), Type: typeID(typ)}
}

func attr(name, typ ast.Symbol) *ast.Attribute {
	return &ast.Attribute{Name: objectID(name), Type: typeID(typ)}
}

func typeID(name ast.Symbol) *ast.TypeIdentifier {
	return &ast.TypeIdentifier{
		Token: lexer.Token{Type: lexer.TYPEID, Literal: name.String()},
		Value: name,
	}
}

func objectID(name ast.Symbol) *ast.ObjectIdentifier {
	return &ast.ObjectIdentifier{
		Token: lexer.Token{Type: lexer.OBJECTID, Literal: name.String()},
		Value: name,
	}
}
