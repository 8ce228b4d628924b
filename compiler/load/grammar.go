package load

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// tableLexer tokenizes table source text. Rule order matters: annotations
// must win over plain comments and imaginary/float literals over integers.
var tableLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Annotation", Pattern: `///[^\n]*`},
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "RawString", Pattern: "`[^`]*`"},
	{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"`},
	{Name: "Char", Pattern: `'(?:\\.|[^'\\\n])+'`},
	{Name: "Imaginary", Pattern: `(?:0[xX](?:[\da-fA-F_]+\.?[\da-fA-F_]*|\.[\da-fA-F_]+)[pP][+-]?\d[\d_]*|\d[\d_]*(?:\.[\d_]*)?(?:[eE][+-]?\d+)?|\.\d[\d_]*(?:[eE][+-]?\d+)?)i`},
	{Name: "Float", Pattern: `0[xX](?:[\da-fA-F_]+\.?[\da-fA-F_]*|\.[\da-fA-F_]+)[pP][+-]?\d[\d_]*|\d[\d_]*\.[\d_]*(?:[eE][+-]?\d+)?|\d[\d_]*[eE][+-]?\d+|\.\d[\d_]*(?:[eE][+-]?\d+)?`},
	{Name: "Int", Pattern: `0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|\d[\d_]*`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{Nd}_]*`},
	{Name: "Punct", Pattern: `[{}:;|=\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// tableParser builds the parse tree declared by the struct tags below.
var tableParser = participle.MustBuild[fileNode](
	participle.Lexer(tableLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

type (
	fileNode struct {
		Pos    lexer.Position
		Tables []*tableNode `@@+`
	}

	tableNode struct {
		Pos         lexer.Position
		Annotations []string        `@Annotation*`
		Public      bool            `@"pub"?`
		Name        string          `"table" @Ident`
		ValueType   *identNode      `( ":" @@ )?`
		Categories  []*categoryNode `"{" @@+ "}"`
	}

	categoryNode struct {
		Pos         lexer.Position
		Annotations []string     `@Annotation*`
		Name        string       `"category" @Ident`
		Entries     []*entryNode `"{" @@+ "}"`
	}

	entryNode struct {
		Pos         lexer.Position
		Annotations []string     `@Annotation*`
		Selectors   []*identNode `@@ ( "|" @@ )*`
		Value       *literalNode `"=" @@ ";"`
	}

	identNode struct {
		Pos  lexer.Position
		Name string `@Ident`
	}

	literalNode struct {
		Pos    lexer.Position
		Minus  bool    `(   @"-"?`
		Number *string `    @( Imaginary | Float | Int )`
		Quoted *string `  | @( String | RawString | Char )`
		Bool   *string `  | @( "true" | "false" ) )`
	}
)
