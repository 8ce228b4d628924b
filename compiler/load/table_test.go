package load

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	t.Run("scenario table", func(t *testing.T) {
		f, err := ParseFile(filepath.Join("testdata", "lang.langtab"))
		require.NoError(t, err)
		require.Len(t, f.Tables, 1)

		tbl := f.Tables[0]
		assert.Equal(t, "Lang", tbl.Name)
		assert.True(t, tbl.Public)
		assert.Equal(t, "string", tbl.ValueType)
		assert.Equal(t, []string{" Lang selects a greeting language."}, tbl.Annotations)
		require.Len(t, tbl.Categories, 2)

		hi := tbl.Categories[0]
		assert.Equal(t, "Hi", hi.Name)
		require.Len(t, hi.Entries, 2)
		// Alias groups are kept unexpanded.
		require.Len(t, hi.Entries[0].Selectors, 2)
		assert.Equal(t, "EN_UK", hi.Entries[0].Selectors[0].Name)
		assert.Equal(t, "EN_US", hi.Entries[0].Selectors[1].Name)
		assert.Equal(t, KindString, hi.Entries[0].Value.Kind)
		assert.Equal(t, `"Hi"`, hi.Entries[0].Value.Expr)

		how := tbl.Categories[1]
		assert.Equal(t, []string{" HowAreYou asks after someone's wellbeing."}, how.Annotations)
		require.Len(t, how.Entries, 3)
		assert.Equal(t, []string{" Norwegian."}, how.Entries[2].Annotations)
		assert.Equal(t, `"Hvordan har du det?"`, how.Entries[2].Value.Expr)
	})

	t.Run("positions", func(t *testing.T) {
		f, err := ParseFile(filepath.Join("testdata", "lang.langtab"))
		require.NoError(t, err)
		hi := f.Tables[0].Categories[0]
		assert.Equal(t, 5, hi.Pos.Line)
		no := hi.Entries[1].Selectors[0]
		assert.Equal(t, 7, no.Pos.Line)
		assert.Equal(t, 9, no.Pos.Column)
		assert.Contains(t, no.Pos.String(), "lang.langtab:7:9")
	})

	t.Run("numeric and bool tables", func(t *testing.T) {
		f, err := ParseFile(filepath.Join("testdata", "numbers.langtab"))
		require.NoError(t, err)
		require.Len(t, f.Tables, 2)

		limit := f.Tables[0]
		assert.False(t, limit.Public)
		assert.Equal(t, "int64", limit.ValueType)
		offset := limit.Categories[1]
		assert.Equal(t, "-1", offset.Entries[0].Value.Expr)
		assert.Equal(t, KindInt, offset.Entries[0].Value.Kind)
		assert.Equal(t, "0x10", offset.Entries[1].Value.Expr)

		flag := f.Tables[1]
		assert.True(t, flag.Public)
		assert.Equal(t, KindBool, flag.Categories[0].Entries[0].Value.Kind)
		assert.Equal(t, "true", flag.Categories[0].Entries[0].Value.Expr)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join("testdata", "nope.langtab"))
		require.Error(t, err)
		assert.False(t, IsSyntaxError(err))
	})

	t.Run("syntax error carries position", func(t *testing.T) {
		_, err := ParseFile(filepath.Join("testdata", "missing_semicolon.langtab"))
		require.Error(t, err)
		require.True(t, IsSyntaxError(err))
		assert.True(t, errors.Is(err, ErrSyntax))

		var synErr *SyntaxError
		require.True(t, errors.As(err, &synErr))
		assert.Equal(t, 4, synErr.Pos.Line)
		assert.Contains(t, err.Error(), "missing_semicolon.langtab:4:")
	})
}

func TestParse(t *testing.T) {
	t.Run("value type is optional", func(t *testing.T) {
		f, err := Parse("t.langtab", []byte(`table T { category C { A = "a"; } }`))
		require.NoError(t, err)
		assert.Empty(t, f.Tables[0].ValueType)
		assert.False(t, f.Tables[0].Public)
	})

	t.Run("comments are ignored", func(t *testing.T) {
		src := `
// leading
table T { /* inline */ category C {
	A = "a"; // trailing
} }`
		f, err := Parse("t.langtab", []byte(src))
		require.NoError(t, err)
		assert.Nil(t, f.Tables[0].Annotations)
		assert.Nil(t, f.Tables[0].Categories[0].Entries[0].Annotations)
	})

	t.Run("literal kinds", func(t *testing.T) {
		tests := []struct {
			lit  string
			kind ValueKind
			expr string
		}{
			{`"x"`, KindString, `"x"`},
			{"`raw\\n`", KindString, "`raw\\n`"},
			{`'x'`, KindChar, `'x'`},
			{`42`, KindInt, `42`},
			{`-42`, KindInt, `-42`},
			{`0b1010`, KindInt, `0b1010`},
			{`1.5`, KindFloat, `1.5`},
			{`-2e3`, KindFloat, `-2e3`},
			{`0x1p-2`, KindFloat, `0x1p-2`},
			{`-0x1.8p1`, KindFloat, `-0x1.8p1`},
			{`0X.8P+1`, KindFloat, `0X.8P+1`},
			{`0x1F`, KindInt, `0x1F`},
			{`3i`, KindImag, `3i`},
			{`0x1p-2i`, KindImag, `0x1p-2i`},
			{`false`, KindBool, `false`},
		}
		for _, tt := range tests {
			t.Run(tt.lit, func(t *testing.T) {
				f, err := Parse("t.langtab", []byte("table T { category C { A = "+tt.lit+"; } }"))
				require.NoError(t, err)
				v := f.Tables[0].Categories[0].Entries[0].Value
				assert.Equal(t, tt.kind, v.Kind)
				assert.Equal(t, tt.expr, v.Expr)
			})
		}
	})

	t.Run("multiple tables", func(t *testing.T) {
		src := `
table A { category X { S = 1; } }
pub table B: int { category Y { T = 2; } }`
		f, err := Parse("t.langtab", []byte(src))
		require.NoError(t, err)
		require.Len(t, f.Tables, 2)
		assert.Equal(t, "A", f.Tables[0].Name)
		assert.Equal(t, "B", f.Tables[1].Name)
		assert.True(t, f.Tables[1].Public)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		tests := []struct {
			name string
			src  string
		}{
			{"empty", ``},
			{"no categories", `table T {}`},
			{"no entries", `table T { category C {} }`},
			{"missing value", `table T { category C { A = ; } }`},
			{"missing equals", `table T { category C { A "a"; } }`},
			{"dangling alias", `table T { category C { A | = "a"; } }`},
			{"bad identifier", `table 9T { category C { A = "a"; } }`},
			{"negated string", `table T { category C { A = -"a"; } }`},
			{"bad escape", `table T { category C { A = "\q"; } }`},
			{"bad octal", `table T { category C { A = 09; } }`},
			{"multi-rune char", `table T { category C { A = 'ab'; } }`},
			{"unterminated block", `table T { category C { A = "a"; }`},
			{"unknown keyword", `tabel T { category C { A = "a"; } }`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f, err := Parse("bad.langtab", []byte(tt.src))
				require.Error(t, err)
				assert.Nil(t, f)
				assert.True(t, IsSyntaxError(err), "got %T: %v", err, err)
				assert.Contains(t, err.Error(), "langtab: syntax error")
			})
		}
	})
}

func TestPosition(t *testing.T) {
	assert.Equal(t, "a.langtab:3:7", Position{Filename: "a.langtab", Line: 3, Column: 7}.String())
	assert.Equal(t, "3:7", Position{Line: 3, Column: 7}.String())
	assert.Equal(t, "a.langtab", Position{Filename: "a.langtab"}.String())
	assert.Equal(t, "-", Position{}.String())
	assert.False(t, Position{}.IsValid())
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "imaginary", KindImag.String())
	assert.Equal(t, "ValueKind(0)", ValueKind(0).String())
}
