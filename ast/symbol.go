package ast

// Symbol is an identifier used for class, type, method and attribute names.
// Symbols compare by value.
type Symbol string

func (s Symbol) String() string { return string(s) }

// Reserved names. These are fixed for the lifetime of the program and are
// shared by every phase instead of being initialized at startup.
const (
	Object   Symbol = "Object"
	IO       Symbol = "IO"
	Int      Symbol = "Int"
	Bool     Symbol = "Bool"
	Str      Symbol = "String"
	SelfType Symbol = "SELF_TYPE"
	Main     Symbol = "Main"

	// NoClass is the parent of Object and the answer for unknown classes.
	NoClass Symbol = "_no_class"
	// NoType is the bottom type: the type of an absent expression.
	NoType Symbol = "_no_type"
	// PrimSlot is the declared type of the raw value slot of basic classes.
	PrimSlot Symbol = "_prim_slot"

	Self       Symbol = "self"
	MainMethod Symbol = "main"

	Arg      Symbol = "arg"
	Arg2     Symbol = "arg2"
	Val      Symbol = "_val"
	StrField Symbol = "_str_field"

	Abort     Symbol = "abort"
	TypeName  Symbol = "type_name"
	Copy      Symbol = "copy"
	OutString Symbol = "out_string"
	OutInt    Symbol = "out_int"
	InString  Symbol = "in_string"
	InInt     Symbol = "in_int"
	Length    Symbol = "length"
	Concat    Symbol = "concat"
	Substr    Symbol = "substr"
)

// IsBasic reports whether s names one of the five built-in classes.
func IsBasic(s Symbol) bool {
	switch s {
	case Object, IO, Int, Bool, Str:
		return true
	}
	return false
}
