package gen

import (
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
)

const (
	strconvPkg  = "strconv"
	errorsPkg   = "errors"
	languagePkg = "golang.org/x/text/language"
)

// Emit renders the Go file of a validated unit. It has no side effects;
// the same unit always yields the same file.
func Emit(u *Unit) *jen.File {
	out := u.Output()
	f := jen.NewFile(out.Package)
	f.ImportName(languagePkg, "language")
	f.HeaderComment(defaultHeader)
	for _, l := range headerLines(out.Header) {
		f.HeaderComment(l)
	}
	if u.Source != "" {
		f.HeaderComment("Source: " + filepath.ToSlash(filepath.Base(u.Source)))
	}
	for _, t := range u.Tables {
		emitTable(f, t)
	}
	return f
}

// headerLines splits a custom header into comment lines, dropping the
// default header if it was repeated.
func headerLines(h string) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(h), "\n") {
		l = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), "//"))
		if l == "" || l == defaultHeader {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// annotate writes metadata lines verbatim as line comments, in a
// paragraph of their own unless every line is a directive.
func annotate(f *jen.File, lines []string) {
	for _, l := range lines {
		if !directive(l) {
			f.Comment("//")
			break
		}
	}
	for _, l := range lines {
		f.Comment("//" + l)
	}
}

// directive reports whether an annotation line is a comment directive
// such as "go:generate", recognized the way go/ast recognizes them.
func directive(l string) bool {
	for _, prefix := range []string{"line ", "extern ", "export "} {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	ns, rest, ok := strings.Cut(l, ":")
	if !ok || ns == "" || rest == "" || !isDirectiveRune(rest[0]) {
		return false
	}
	for i := 0; i < len(ns); i++ {
		if !isDirectiveRune(ns[i]) {
			return false
		}
	}
	return true
}

func isDirectiveRune(c byte) bool {
	return 'a' <= c && c <= 'z' || '0' <= c && c <= '9'
}

// underlying returns the smallest unsigned integer type able to hold
// n selectors.
func underlying(n int) string {
	switch {
	case n <= 1<<8:
		return "uint8"
	case n <= 1<<16:
		return "uint16"
	default:
		return "uint32"
	}
}

func emitTable(f *jen.File, t *Table) {
	var (
		typ  = t.TypeName()
		prov = t.ProviderName()
		recv = t.recv
	)

	f.Line()
	f.Comment(typ + " selects a value of every " + t.Name + " category.")
	annotate(f, t.Annotations)
	f.Type().Id(typ).Id(underlying(len(t.Selectors)))

	f.Line()
	f.Comment(typ + " values, in declaration order.")
	f.Const().DefsFunc(func(g *jen.Group) {
		for i, s := range t.Selectors {
			if i == 0 {
				g.Id(t.ConstName(s)).Id(typ).Op("=").Iota()
				continue
			}
			g.Id(t.ConstName(s))
		}
	})

	f.Line()
	f.Var().Id(t.namesVar()).Op("=").Index(jen.Op("...")).String().ValuesFunc(func(g *jen.Group) {
		for _, s := range t.Selectors {
			g.Lit(s.Name)
		}
	})

	f.Line()
	f.Comment(t.ValuesName() + " returns all " + typ + " values in declaration order.")
	f.Func().Id(t.ValuesName()).Params().Index().Id(typ).Block(
		jen.Return(jen.Index().Id(typ).ValuesFunc(func(g *jen.Group) {
			for _, s := range t.Selectors {
				g.Id(t.ConstName(s))
			}
		})),
	)

	f.Line()
	f.Comment(t.ParseName() + " returns the " + typ + " value with the given name.")
	f.Func().Id(t.ParseName()).Params(jen.Id("s").String()).Params(jen.Id(typ), jen.Bool()).Block(
		jen.Switch(jen.Id("s")).BlockFunc(func(g *jen.Group) {
			for _, s := range t.Selectors {
				g.Case(jen.Lit(s.Name)).Block(jen.Return(jen.Id(t.ConstName(s)), jen.True()))
			}
		}),
		jen.Return(jen.Lit(0), jen.False()),
	)

	f.Line()
	f.Comment(t.IsValidName() + " reports whether " + recv + " is a declared " + typ + " value.")
	f.Func().Params(jen.Id(recv).Id(typ)).Id(t.IsValidName()).Params().Bool().Block(
		jen.Return(jen.Int().Call(jen.Id(recv)).Op("<").Len(jen.Id(t.namesVar()))),
	)

	f.Line()
	f.Comment("String returns the selector name of " + recv + ".")
	f.Func().Params(jen.Id(recv).Id(typ)).Id("String").Params().String().Block(
		jen.If(jen.Id(recv).Dot(t.IsValidName()).Call()).Block(
			jen.Return(jen.Id(t.namesVar()).Index(jen.Id(recv))),
		),
		jen.Return(jen.Lit(typ+"(").Op("+").Add(itoa(recv)).Op("+").Lit(")")),
	)

	f.Line()
	f.Comment(prov + " is implemented by every category of the " + t.Name + " table.")
	f.Type().Id(prov).InterfaceFunc(func(g *jen.Group) {
		for _, s := range t.Selectors {
			g.Id(t.MethodName(s)).Params().Add(jen.Id(t.ValueType))
		}
	})

	f.Line()
	f.Comment(t.LookupName() + " returns the value " + t.param + " binds to " + recv + ".")
	f.Comment("It panics if " + recv + " is not a declared " + typ + " value.")
	f.Func().Params(jen.Id(recv).Id(typ)).Id(t.LookupName()).Params(jen.Id(t.param).Id(prov)).Add(jen.Id(t.ValueType)).Block(
		jen.Switch(jen.Id(recv)).BlockFunc(func(g *jen.Group) {
			for _, s := range t.Selectors {
				g.Case(jen.Id(t.ConstName(s))).Block(
					jen.Return(jen.Id(t.param).Dot(t.MethodName(s)).Call()),
				)
			}
		}),
		jen.Panic(jen.Lit("invalid "+typ+" ").Op("+").Add(itoa(recv))),
	)

	f.Line()
	f.Comment(t.LookupFuncName() + " returns the value the category " + t.typeParam + " binds to " + recv + ".")
	f.Func().Id(t.LookupFuncName()).Types(jen.Id(t.typeParam).Id(prov)).Params(jen.Id(recv).Id(typ)).Add(jen.Id(t.ValueType)).Block(
		jen.Var().Id(t.param).Id(t.typeParam),
		jen.Return(jen.Id(recv).Dot(t.LookupName()).Call(jen.Id(t.param))),
	)

	for _, feat := range AllFeatures {
		if feat.emit != nil && t.HasFeature(feat.Name) {
			feat.emit(f, t)
		}
	}

	for _, c := range t.Categories {
		emitCategory(f, t, c)
	}
}

func emitCategory(f *jen.File, t *Table, c *Category) {
	name := t.CategoryName(c)
	f.Line()
	f.Comment(name + " provides the " + c.Name + " values of the " + t.Name + " table.")
	annotate(f, c.Annotations)
	f.Type().Id(name).Struct()

	f.Line()
	f.Var().Id("_").Id(t.ProviderName()).Op("=").Id(name).Values()

	for _, b := range c.Bindings {
		m := t.MethodName(b.Selector)
		f.Line()
		f.Comment(m + " implements " + t.ProviderName() + ".")
		annotate(f, b.Annotations)
		f.Func().Params(jen.Id(name)).Id(m).Params().Id(t.ValueType).Block(
			jen.Return(jen.Id(b.Value.Expr)),
		)
	}
}

// itoa renders strconv.Itoa(int(id)).
func itoa(id string) *jen.Statement {
	return jen.Qual(strconvPkg, "Itoa").Call(jen.Int().Call(jen.Id(id)))
}

// emitText adds MarshalText and UnmarshalText to the selector type.
func emitText(f *jen.File, t *Table) {
	typ, recv := t.TypeName(), t.recv

	f.Line()
	f.Comment("MarshalText implements encoding.TextMarshaler.")
	f.Func().Params(jen.Id(recv).Id(typ)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.If(jen.Op("!").Id(recv).Dot(t.IsValidName()).Call()).Block(
			jen.Return(jen.Nil(), jen.Qual(errorsPkg, "New").Call(jen.Lit("invalid "+typ+" ").Op("+").Add(itoa(recv)))),
		),
		jen.Return(jen.Index().Byte().Call(jen.Id(t.namesVar()).Index(jen.Id(recv))), jen.Nil()),
	)

	f.Line()
	f.Comment("UnmarshalText implements encoding.TextUnmarshaler.")
	f.Func().Params(jen.Id(recv).Op("*").Id(typ)).Id("UnmarshalText").Params(jen.Id("text").Index().Byte()).Error().Block(
		jen.List(jen.Id("sel"), jen.Id("ok")).Op(":=").Id(t.ParseName()).Call(jen.String().Call(jen.Id("text"))),
		jen.If(jen.Op("!").Id("ok")).Block(
			jen.Return(jen.Qual(errorsPkg, "New").Call(
				jen.Lit("invalid "+typ+" ").Op("+").Qual(strconvPkg, "Quote").Call(jen.String().Call(jen.Id("text"))),
			)),
		),
		jen.Op("*").Id(recv).Op("=").Id("sel"),
		jen.Return(jen.Nil()),
	)
}
