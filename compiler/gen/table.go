package gen

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/langtab/compiler/load"
)

type (
	// Table is a validated table, ready for code generation.
	// Its selector set is closed, every category binds every selector
	// exactly once and every value has the value type.
	Table struct {
		*Config
		// Name is the table name as declared.
		Name string
		// Public reports whether the generated surface is exported.
		Public bool
		// ValueType is the Go type of every value, e.g. "string".
		ValueType string
		// Annotations are the metadata lines attached to the table.
		Annotations []string
		// Selectors is the global selector set in first-appearance order.
		Selectors []*Selector
		// Categories in declaration order.
		Categories []*Category
		// Pos is the position of the table declaration.
		Pos load.Position

		recv, param, typeParam string
	}

	// Selector is one member of the closed selector enumeration.
	Selector struct {
		// Name is the selector name as declared.
		Name string
		// Index is the ordinal of the selector, starting at 0.
		Index int
		// Pos is the position of the first appearance.
		Pos load.Position
	}

	// Category is a group of bindings, one per selector.
	Category struct {
		Name        string
		Annotations []string
		// Bindings are ordered by selector index.
		Bindings []*Binding
		Pos      load.Position
	}

	// Binding binds a selector to a value inside a category.
	Binding struct {
		Selector *Selector
		Value    *load.Value
		// Annotations are the metadata lines of the entry the binding
		// was expanded from.
		Annotations []string
		// Pos is the position of the selector reference.
		Pos load.Position
	}
)

// NewTable validates a parsed table and returns it ready for generation.
// It stops on the first violation and returns it as a *DuplicateBindingError,
// *TotalityError, *TypeError or *NamingError.
func NewTable(c *Config, lt *load.Table) (*Table, error) {
	if c == nil {
		c = DefaultConfig()
	}
	t := &Table{
		Config:      c,
		Name:        lt.Name,
		Public:      lt.Public,
		Annotations: lt.Annotations,
		Pos:         lt.Pos,
	}
	t.collectSelectors(lt)
	if err := t.bind(lt); err != nil {
		return nil, err
	}
	basic, err := resolveValueType(lt)
	if err != nil {
		return nil, err
	}
	t.ValueType = basic.Name()
	var values []typedValue
	for _, c := range lt.Categories {
		for _, e := range c.Entries {
			values = append(values, typedValue{category: c.Name, entry: e})
		}
	}
	if err := checkValues(lt, t.ValueType, values); err != nil {
		return nil, err
	}
	if err := t.checkNames(); err != nil {
		return nil, err
	}
	t.pickLocals()
	for _, f := range AllFeatures {
		if f.check != nil && t.HasFeature(f.Name) {
			if err := f.check(t); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// collectSelectors computes the global selector set: the union of the
// selectors of all categories, ordered by first appearance.
func (t *Table) collectSelectors(lt *load.Table) {
	seen := make(map[string]struct{})
	for _, c := range lt.Categories {
		for _, e := range c.Entries {
			for _, s := range e.Selectors {
				if _, ok := seen[s.Name]; ok {
					continue
				}
				seen[s.Name] = struct{}{}
				t.Selectors = append(t.Selectors, &Selector{Name: s.Name, Index: len(t.Selectors), Pos: s.Pos})
			}
		}
	}
}

// bind expands alias groups and checks every category for duplicate and
// missing bindings.
func (t *Table) bind(lt *load.Table) error {
	index := make(map[string]*Selector, len(t.Selectors))
	for _, s := range t.Selectors {
		index[s.Name] = s
	}
	for _, lc := range lt.Categories {
		c := &Category{
			Name:        lc.Name,
			Annotations: lc.Annotations,
			Bindings:    make([]*Binding, len(t.Selectors)),
			Pos:         lc.Pos,
		}
		for _, e := range lc.Entries {
			for _, ls := range e.Selectors {
				s := index[ls.Name]
				if prev := c.Bindings[s.Index]; prev != nil {
					return &DuplicateBindingError{
						Location: Location{Pos: ls.Pos, Table: t.Name, Category: c.Name, Selector: s.Name},
						First:    prev.Pos,
					}
				}
				c.Bindings[s.Index] = &Binding{
					Selector:    s,
					Value:       e.Value,
					Annotations: e.Annotations,
					Pos:         ls.Pos,
				}
			}
		}
		for i, b := range c.Bindings {
			if b == nil {
				return &TotalityError{
					Location: Location{Pos: lc.Pos, Table: t.Name, Category: c.Name, Selector: t.Selectors[i].Name},
				}
			}
		}
		t.Categories = append(t.Categories, c)
	}
	return nil
}

// checkNames validates the declared names and the identifiers derived from
// them.
func (t *Table) checkNames() error {
	fail := func(pos load.Position, category, selector, name, msg string) error {
		return &NamingError{
			Location: Location{Pos: pos, Table: t.Name, Category: category, Selector: selector},
			Name:     name,
			Message:  msg,
		}
	}
	if !validIdent(t.Name) || isKeyword(t.Name) {
		return fail(t.Pos, "", "", t.Name, "table name must be a Go identifier and not a keyword")
	}
	if t.Public && !exportable(t.Name) {
		return fail(t.Pos, "", "", t.Name, "public table name cannot be exported")
	}
	selectors := make(map[string]*Selector, len(t.Selectors))
	methods := make(map[string]*Selector, len(t.Selectors))
	for _, s := range t.Selectors {
		selectors[s.Name] = s
		if !validIdent(s.Name) || isKeyword(s.Name) {
			return fail(s.Pos, "", s.Name, s.Name, "selector must be a Go identifier and not a keyword")
		}
		if t.Public && !exportable(s.Name) {
			return fail(s.Pos, "", s.Name, s.Name, "selector of a public table cannot be exported")
		}
		m := t.MethodName(s)
		if prev, ok := methods[m]; ok {
			return fail(s.Pos, "", s.Name, m, "provider method collides with selector "+prev.Name)
		}
		methods[m] = s
	}
	categories := make(map[string]*Category, len(t.Categories))
	for _, c := range t.Categories {
		if prev, ok := categories[c.Name]; ok {
			return fail(c.Pos, c.Name, "", c.Name, "category already declared at "+prev.Pos.String())
		}
		categories[c.Name] = c
		if _, ok := selectors[c.Name]; ok {
			return fail(c.Pos, c.Name, "", c.Name, "category has the same name as a selector")
		}
		if !validIdent(c.Name) || isKeyword(c.Name) {
			return fail(c.Pos, c.Name, "", c.Name, "category must be a Go identifier and not a keyword")
		}
		if t.Public && !exportable(c.Name) {
			return fail(c.Pos, c.Name, "", c.Name, "category of a public table cannot be exported")
		}
	}
	declared := make(map[string]load.Position)
	for _, d := range t.decls() {
		switch {
		case isKeyword(d.name):
			return fail(d.pos, d.category, d.selector, d.name, "generated identifier is a Go keyword")
		case predeclared(d.name):
			return fail(d.pos, d.category, d.selector, d.name, "generated identifier shadows a predeclared Go identifier")
		}
		if _, ok := importIdent[d.name]; ok {
			return fail(d.pos, d.category, d.selector, d.name, "generated identifier shadows an imported package")
		}
		if _, ok := declared[d.name]; ok {
			return fail(d.pos, d.category, d.selector, d.name, "generated identifier is declared twice")
		}
		declared[d.name] = d.pos
	}
	return nil
}

// pickLocals chooses receiver, parameter and type parameter names that
// shadow none of the identifiers used by generated method bodies.
func (t *Table) pickLocals() {
	taken := names(t.TypeName(), t.ProviderName())
	t.param = pickName(taken, "p", "q", "c")
	taken[t.param] = struct{}{}
	t.recv = pickName(taken, receiverFor(t.TypeName())...)
	t.typeParam = pickName(names(t.TypeName(), t.ProviderName()), "P", "Q", "C")
}

// decl is a package-level identifier declared by the generated code.
type decl struct {
	name               string
	pos                load.Position
	category, selector string
}

// decls returns the package-level identifiers generated for the table.
func (t *Table) decls() []decl {
	ds := []decl{
		{name: t.TypeName(), pos: t.Pos},
		{name: t.ProviderName(), pos: t.Pos},
		{name: t.LookupFuncName(), pos: t.Pos},
		{name: t.ValuesName(), pos: t.Pos},
		{name: t.ParseName(), pos: t.Pos},
		{name: t.namesVar(), pos: t.Pos},
		{name: t.tagsVar(), pos: t.Pos},
	}
	for _, s := range t.Selectors {
		ds = append(ds, decl{name: t.ConstName(s), pos: s.Pos, selector: s.Name})
	}
	for _, c := range t.Categories {
		ds = append(ds, decl{name: t.CategoryName(c), pos: c.Pos, category: c.Name})
	}
	return ds
}

// base returns the table name with an upper-case first rune, the stem of
// every generated identifier.
func (t *Table) base() string { return upperFirst(t.Name) }

// TypeName returns the name of the selector type, e.g. "Lang".
func (t *Table) TypeName() string { return visible(t.Name, t.Public) }

// ProviderName returns the name of the capability interface, e.g. "LangProvider".
func (t *Table) ProviderName() string { return visible(t.base()+"Provider", t.Public) }

// LookupName returns the name of the dispatch method, e.g. "Lookup".
func (t *Table) LookupName() string { return visible("Lookup", t.Public) }

// LookupFuncName returns the name of the generic dispatch function, e.g. "LookupLang".
func (t *Table) LookupFuncName() string { return visible("Lookup"+t.base(), t.Public) }

// ValuesName returns the name of the function listing all selectors, e.g. "LangValues".
func (t *Table) ValuesName() string { return visible(t.base()+"Values", t.Public) }

// ParseName returns the name of the selector parse function, e.g. "ParseLang".
func (t *Table) ParseName() string { return visible("Parse"+t.base(), t.Public) }

// IsValidName returns the name of the range check method, e.g. "IsValid".
func (t *Table) IsValidName() string { return visible("IsValid", t.Public) }

// TagName returns the name of the language tag method, e.g. "Tag".
func (t *Table) TagName() string { return visible("Tag", t.Public) }

// ConstName returns the name of the selector constant, e.g. "LangEN_UK".
func (t *Table) ConstName(s *Selector) string { return t.TypeName() + s.Name }

// MethodName returns the name of the provider method of the selector.
func (t *Table) MethodName(s *Selector) string {
	if t.Public {
		return upperFirst(s.Name)
	}
	return s.Name
}

// CategoryName returns the name of the provider type of the category.
func (t *Table) CategoryName(c *Category) string { return visible(c.Name, t.Public) }

func (t *Table) namesVar() string { return lowerFirst(t.base()) + "Names" }

func (t *Table) tagsVar() string { return lowerFirst(t.base()) + "Tags" }

// Unit is the set of validated tables of one source file. Each unit
// generates exactly one Go file.
type Unit struct {
	*Config
	// Source is the path of the table source file.
	Source string
	Tables []*Table
}

// NewUnit validates every table of a parsed file. Besides the checks of
// NewTable, it rejects package-level identifiers declared by two tables.
func NewUnit(c *Config, f *load.File) (*Unit, error) {
	if c == nil {
		c = DefaultConfig()
	}
	if len(f.Tables) == 0 {
		return nil, &NamingError{Location: Location{Pos: load.Position{Filename: f.Path}}, Message: "file declares no tables"}
	}
	u := &Unit{Config: c, Source: f.Path}
	declared := make(map[string]*Table)
	for _, lt := range f.Tables {
		t, err := NewTable(c, lt)
		if err != nil {
			return nil, err
		}
		for _, d := range t.decls() {
			if prev, ok := declared[d.name]; ok {
				return nil, &NamingError{
					Location: Location{Pos: d.pos, Table: t.Name, Category: d.category, Selector: d.selector},
					Name:     d.name,
					Message:  "generated identifier is also declared by table " + prev.Name,
				}
			}
			declared[d.name] = t
		}
		u.Tables = append(u.Tables, t)
	}
	return u, nil
}

// NewUnits validates every file and joins the errors of all files.
// The resulting units are checked together with CheckUnits.
func NewUnits(c *Config, files ...*load.File) ([]*Unit, error) {
	var (
		units = make([]*Unit, 0, len(files))
		errs  []error
	)
	for _, f := range files {
		u, err := NewUnit(c, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		units = append(units, u)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := CheckUnits(units...); err != nil {
		return nil, err
	}
	return units, nil
}

// CheckUnits rejects units that cannot be generated side by side: two
// units writing the same output file, or two units in one output
// directory (and so one Go package) declaring the same identifier.
func CheckUnits(units ...*Unit) error {
	type owner struct {
		table  *Table
		source string
	}
	var (
		errs  []error
		paths = make(map[string]*Unit)
		dirs  = make(map[string]map[string]owner)
	)
	for _, u := range units {
		path := absPath(u.Path())
		if prev, ok := paths[path]; ok {
			errs = append(errs, &NamingError{
				Location: Location{Pos: load.Position{Filename: u.Source}},
				Name:     u.Filename(),
				Message:  "output file is also generated from " + prev.Source,
			})
			continue
		}
		paths[path] = u
		dir := absPath(u.Dir())
		declared := dirs[dir]
		if declared == nil {
			declared = make(map[string]owner)
			dirs[dir] = declared
		}
	tables:
		for _, t := range u.Tables {
			for _, d := range t.decls() {
				if prev, ok := declared[d.name]; ok && prev.source != u.Source {
					errs = append(errs, &NamingError{
						Location: Location{Pos: d.pos, Table: t.Name, Category: d.category, Selector: d.selector},
						Name:     d.name,
						Message:  "generated identifier is also declared by table " + prev.table.Name + " in " + prev.source,
					})
					continue tables
				}
			}
			for _, d := range t.decls() {
				declared[d.name] = owner{table: t, source: u.Source}
			}
		}
	}
	return errors.Join(errs...)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Filename returns the name of the generated file, e.g. "lang_langtab.go"
// for "lang.langtab".
func (u *Unit) Filename() string {
	base := filepath.Base(u.Source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return inflect.Underscore(base) + "_langtab.go"
}

// Dir returns the directory the generated file is written to.
func (u *Unit) Dir() string {
	if out := u.Output(); out.Target != "" {
		return out.Target
	}
	return filepath.Dir(u.Source)
}

// Path returns the path of the generated file.
func (u *Unit) Path() string {
	return filepath.Join(u.Dir(), u.Filename())
}
