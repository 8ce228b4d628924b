package gen

import (
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/text/language"
)

// selectorTag reads a selector name as a BCP 47 tag, with '_' as the
// subtag separator.
func selectorTag(s *Selector) (language.Tag, error) {
	return language.Parse(strings.ReplaceAll(s.Name, "_", "-"))
}

// checkLocale rejects selectors that do not name a language tag.
func checkLocale(t *Table) error {
	for _, s := range t.Selectors {
		if _, err := selectorTag(s); err != nil {
			return &NamingError{
				Location: Location{Pos: s.Pos, Table: t.Name, Selector: s.Name},
				Name:     s.Name,
				Message:  "selector is not a BCP 47 language tag: " + err.Error(),
			}
		}
	}
	return nil
}

// emitLocale adds the tag table and the Tag method to the selector type.
func emitLocale(f *jen.File, t *Table) {
	typ, recv := t.TypeName(), t.recv

	f.Line()
	f.Var().Id(t.tagsVar()).Op("=").Index(jen.Op("...")).Qual(languagePkg, "Tag").ValuesFunc(func(g *jen.Group) {
		for _, s := range t.Selectors {
			// Checked by checkLocale.
			tag, _ := selectorTag(s)
			g.Qual(languagePkg, "MustParse").Call(jen.Lit(tag.String()))
		}
	})

	f.Line()
	f.Comment(t.TagName() + " returns the language tag of " + recv + ", or language.Und if " + recv + " is not a declared " + typ + " value.")
	f.Func().Params(jen.Id(recv).Id(typ)).Id(t.TagName()).Params().Qual(languagePkg, "Tag").Block(
		jen.If(jen.Op("!").Id(recv).Dot(t.IsValidName()).Call()).Block(
			jen.Return(jen.Qual(languagePkg, "Und")),
		),
		jen.Return(jen.Id(t.tagsVar()).Index(jen.Id(recv))),
	)
}
