package gen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"strings"

	"github.com/syssam/langtab/compiler/load"
)

// defaultValueType is used for tables without a declared value type.
const defaultValueType = "string"

// resolveValueType resolves the declared value type of a table to a Go
// predeclared basic type.
func resolveValueType(t *load.Table) (*types.Basic, error) {
	name := t.ValueType
	if name == "" {
		name = defaultValueType
	}
	fail := func(msg string) error {
		pos := t.ValueTypePos
		if !pos.IsValid() {
			pos = t.Pos
		}
		return &TypeError{
			Location: Location{Pos: pos, Table: t.Name},
			Type:     name,
			Message:  msg,
		}
	}
	obj, ok := types.Universe.Lookup(name).(*types.TypeName)
	if !ok {
		return nil, fail("value type " + name + " is not a predeclared Go type")
	}
	basic, ok := obj.Type().(*types.Basic)
	if !ok || basic.Info()&types.IsUntyped != 0 {
		return nil, fail("value type " + name + " is not a basic Go type")
	}
	return basic, nil
}

// typedValue is a value literal to check, with the entry it came from.
type typedValue struct {
	category string
	entry    *load.Entry
}

// checkValues type-checks every value literal against the value type by
// compiling a throwaway package with one blank declaration per value:
//
//	var _ T = <literal>
//
// It returns a *TypeError for the first value, in declaration order, that is
// not assignable to (or not representable by) the value type.
func checkValues(t *load.Table, typ string, values []typedValue) error {
	if len(values) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("package p\n\n")
	for _, v := range values {
		b.WriteString("var _ ")
		b.WriteString(typ)
		b.WriteString(" = ")
		b.WriteString(v.entry.Value.Expr)
		b.WriteByte('\n')
	}
	// Line of the first declaration in the generated source.
	const firstLine = 3
	at := func(line int) *typedValue {
		if i := line - firstLine; i >= 0 && i < len(values) {
			return &values[i]
		}
		return &values[0]
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "values.go", b.String(), parser.SkipObjectResolution)
	if err != nil {
		line := firstLine
		var list scanner.ErrorList
		if errors.As(err, &list) && len(list) > 0 {
			line = list[0].Pos.Line
		}
		return valueError(t, typ, at(line), err.Error(), err)
	}
	var first error
	conf := types.Config{
		Error: func(err error) {
			if first == nil {
				first = err
			}
		},
	}
	_, _ = conf.Check("p", fset, []*ast.File{f}, nil)
	if first == nil {
		return nil
	}
	var terr types.Error
	if errors.As(first, &terr) {
		return valueError(t, typ, at(fset.Position(terr.Pos).Line), terr.Msg, first)
	}
	return valueError(t, typ, at(firstLine), first.Error(), first)
}

func valueError(t *load.Table, typ string, v *typedValue, msg string, cause error) error {
	sels := make([]string, len(v.entry.Selectors))
	for i, s := range v.entry.Selectors {
		sels[i] = s.Name
	}
	return &TypeError{
		Location: Location{
			Pos:      v.entry.Value.Pos,
			Table:    t.Name,
			Category: v.category,
			Selector: strings.Join(sels, "|"),
		},
		Type:    typ,
		Value:   v.entry.Value.Expr,
		Message: msg,
		Cause:   cause,
	}
}
