package layout

import (
	"os"
	"path/filepath"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/pkg/errors"

	"cool-checker/ast"
	"cool-checker/semant"
)

// Field 0 of every object is the vtable pointer.
const VtableField = 0

// Layout is the object layout of every class of a checked program, held as
// named struct types of an LLVM module.
type Layout struct {
	Module *ir.Module

	structs map[ast.Symbol]*types.StructType

	// field index of each attribute, keyed by class then attribute name
	fields map[ast.Symbol]map[ast.Symbol]int
}

// Build lays out every class in ct. ct must come from a program that checked
// without errors.
func Build(ct *semant.ClassTable) *Layout {
	l := &Layout{
		Module:  ir.NewModule(),
		structs: make(map[ast.Symbol]*types.StructType),
		fields:  make(map[ast.Symbol]map[ast.Symbol]int),
	}

	// declare all structs first so fields can point at any class
	for _, class := range ct.Classes() {
		name := class.Name.Value
		if _, exists := l.structs[name]; exists {
			continue
		}
		st := types.NewStruct()
		l.Module.NewTypeDef(name.String(), st)
		l.structs[name] = st
	}

	for _, class := range ct.Classes() {
		name := class.Name.Value
		st := l.structs[name]
		if len(st.Fields) > 0 {
			continue
		}

		st.Fields = []types.Type{types.NewPointer(types.I8Ptr)}
		index := make(map[ast.Symbol]int)
		for _, a := range ct.Attributes(name) {
			index[a.Name.Value] = len(st.Fields)
			st.Fields = append(st.Fields, l.fieldType(a.Owner, a.Type.Value))
		}
		l.fields[name] = index
	}

	return l
}

// fieldType maps the declared type of an attribute of owner to its LLVM
// representation.
func (l *Layout) fieldType(owner, t ast.Symbol) types.Type {
	switch t {
	case ast.Int:
		return types.I32
	case ast.Bool:
		return types.I1
	case ast.Str:
		return types.I8Ptr
	case ast.PrimSlot:
		switch owner {
		case ast.Int:
			return types.I32
		case ast.Bool:
			return types.I1
		}
		return types.I8Ptr
	case ast.SelfType:
		t = owner
	}

	if st, ok := l.structs[t]; ok {
		return types.NewPointer(st)
	}
	return types.I8Ptr
}

func (l *Layout) Struct(class ast.Symbol) (*types.StructType, bool) {
	st, ok := l.structs[class]
	return st, ok
}

// FieldIndex returns the struct field holding attribute attr of class.
func (l *Layout) FieldIndex(class, attr ast.Symbol) (int, bool) {
	i, ok := l.fields[class][attr]
	return i, ok
}

func (l *Layout) String() string {
	return l.Module.String()
}

// Write stores the layout module as textual LLVM IR at path.
func (l *Layout) Write(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "unable to create output directory for `%s`", path)
		}
	}

	if err := os.WriteFile(path, []byte(l.String()), 0644); err != nil {
		return errors.Wrapf(err, "unable to write layout to `%s`", path)
	}
	return nil
}
