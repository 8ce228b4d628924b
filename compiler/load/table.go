// Package load parses langtab table source text into table descriptions.
//
// The description is purely syntactic: alias groups are kept as written and
// nothing is checked beyond well-formed identifiers and literals. Semantic
// validation lives in the gen package.
package load

import (
	"errors"
	"fmt"
	"go/constant"
	"go/token"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed table source file.
type File struct {
	Path   string   `json:"path,omitempty"`
	Tables []*Table `json:"tables,omitempty"`
}

// Table represents one table declaration.
type Table struct {
	Name string `json:"name,omitempty"`
	// Public reports whether the declaration carries the pub flag.
	Public bool `json:"public,omitempty"`
	// ValueType is the declared value type name. Empty when omitted.
	ValueType    string      `json:"value_type,omitempty"`
	ValueTypePos Position    `json:"-"`
	Categories   []*Category `json:"categories,omitempty"`
	Annotations  []string    `json:"annotations,omitempty"`
	Pos          Position    `json:"-"`
}

// Category represents one category block of a table.
type Category struct {
	Name        string   `json:"name,omitempty"`
	Entries     []*Entry `json:"entries,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
	Pos         Position `json:"-"`
}

// Entry is one entry line. Selectors holds the alias group, unexpanded.
type Entry struct {
	Selectors   []*Selector `json:"selectors,omitempty"`
	Value       *Value      `json:"value,omitempty"`
	Annotations []string    `json:"annotations,omitempty"`
	Pos         Position    `json:"-"`
}

// Selector is a selector reference inside an entry.
type Selector struct {
	Name string   `json:"name,omitempty"`
	Pos  Position `json:"-"`
}

// ValueKind is the lexical kind of a value literal.
type ValueKind int

// Value literal kinds.
const (
	KindString ValueKind = iota + 1
	KindChar
	KindInt
	KindFloat
	KindImag
	KindBool
)

var kindNames = [...]string{
	KindString: "string",
	KindChar:   "char",
	KindInt:    "int",
	KindFloat:  "float",
	KindImag:   "imaginary",
	KindBool:   "bool",
}

// String returns the kind name.
func (k ValueKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Value is a value literal.
type Value struct {
	Kind ValueKind `json:"kind,omitempty"`
	// Expr is the literal as Go source, including a leading minus sign.
	Expr string   `json:"expr,omitempty"`
	Pos  Position `json:"-"`
}

// Position describes a position in table source text.
type Position struct {
	Filename string
	Line     int
	Column   int
}

// IsValid reports whether the position carries a line number.
func (p Position) IsValid() bool { return p.Line > 0 }

// String returns the position as file:line:col.
func (p Position) String() string {
	var b strings.Builder
	b.WriteString(p.Filename)
	if p.IsValid() {
		if b.Len() > 0 {
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%d:%d", p.Line, p.Column)
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func position(p lexer.Position) Position {
	return Position{Filename: p.Filename, Line: p.Line, Column: p.Column}
}

// ParseFile reads and parses the table source file at path.
func ParseFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read %s: %w", path, err)
	}
	return Parse(path, src)
}

// Parse parses table source text. The filename is only used for positions.
// Malformed input yields a *SyntaxError and no partial result.
func Parse(filename string, src []byte) (*File, error) {
	tree, err := tableParser.ParseBytes(filename, src)
	if err != nil {
		return nil, syntaxError(filename, err)
	}
	f := &File{Path: filename, Tables: make([]*Table, 0, len(tree.Tables))}
	for _, tn := range tree.Tables {
		t, err := newTable(tn)
		if err != nil {
			return nil, err
		}
		f.Tables = append(f.Tables, t)
	}
	return f, nil
}

func newTable(tn *tableNode) (*Table, error) {
	t := &Table{
		Name:        tn.Name,
		Public:      tn.Public,
		Annotations: annotations(tn.Annotations),
		Categories:  make([]*Category, 0, len(tn.Categories)),
		Pos:         position(tn.Pos),
	}
	if tn.ValueType != nil {
		t.ValueType = tn.ValueType.Name
		t.ValueTypePos = position(tn.ValueType.Pos)
	}
	for _, cn := range tn.Categories {
		c := &Category{
			Name:        cn.Name,
			Annotations: annotations(cn.Annotations),
			Entries:     make([]*Entry, 0, len(cn.Entries)),
			Pos:         position(cn.Pos),
		}
		for _, en := range cn.Entries {
			e, err := newEntry(en)
			if err != nil {
				return nil, err
			}
			c.Entries = append(c.Entries, e)
		}
		t.Categories = append(t.Categories, c)
	}
	return t, nil
}

func newEntry(en *entryNode) (*Entry, error) {
	e := &Entry{
		Annotations: annotations(en.Annotations),
		Selectors:   make([]*Selector, 0, len(en.Selectors)),
		Pos:         position(en.Pos),
	}
	for _, sn := range en.Selectors {
		e.Selectors = append(e.Selectors, &Selector{Name: sn.Name, Pos: position(sn.Pos)})
	}
	v, err := newValue(en.Value)
	if err != nil {
		return nil, err
	}
	e.Value = v
	return e, nil
}

// newValue checks the literal the same way the Go scanner would.
func newValue(ln *literalNode) (*Value, error) {
	v := &Value{Pos: position(ln.Pos)}
	var tok token.Token
	switch {
	case ln.Bool != nil:
		v.Kind, v.Expr = KindBool, *ln.Bool
		return v, nil
	case ln.Quoted != nil:
		v.Expr = *ln.Quoted
		v.Kind, tok = KindString, token.STRING
		if strings.HasPrefix(v.Expr, "'") {
			v.Kind, tok = KindChar, token.CHAR
			// MakeFromLiteral ignores trailing runes, Unquote does not.
			if _, err := strconv.Unquote(v.Expr); err != nil {
				return nil, &SyntaxError{Pos: v.Pos, Message: "malformed char literal " + v.Expr}
			}
		}
	case ln.Number != nil:
		v.Expr = *ln.Number
		switch {
		case strings.HasSuffix(v.Expr, "i"):
			v.Kind, tok = KindImag, token.IMAG
		case isFloat(v.Expr):
			v.Kind, tok = KindFloat, token.FLOAT
		default:
			v.Kind, tok = KindInt, token.INT
		}
	default:
		return nil, &SyntaxError{Pos: v.Pos, Message: "missing value literal"}
	}
	if constant.MakeFromLiteral(v.Expr, tok, 0).Kind() == constant.Unknown {
		return nil, &SyntaxError{Pos: v.Pos, Message: fmt.Sprintf("malformed %s literal %s", v.Kind, v.Expr)}
	}
	if ln.Minus {
		v.Expr = "-" + v.Expr
	}
	return v, nil
}

// isFloat reports whether a number literal is a float. Hex floats
// always carry a 'p' exponent.
func isFloat(lit string) bool {
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		return strings.ContainsAny(lit, "pP")
	}
	return strings.ContainsAny(lit, ".eE")
}

// annotations strips the leading "///" of every annotation line, keeping the
// rest of the line verbatim.
func annotations(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(strings.TrimPrefix(l, "///"), "\r")
	}
	return out
}

func syntaxError(filename string, err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := position(perr.Position())
		if pos.Filename == "" {
			pos.Filename = filename
		}
		return &SyntaxError{Pos: pos, Message: perr.Message(), Cause: err}
	}
	return &SyntaxError{Pos: Position{Filename: filename}, Message: err.Error(), Cause: err}
}
