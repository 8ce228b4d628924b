package gen

import (
	"go/token"
	"go/types"
	"unicode"
	"unicode/utf8"
)

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}

// importIdent holds the package names the generated files may import.
// Package-level identifiers must not shadow them.
var importIdent = names(
	"errors",
	"language",
	"strconv",
)

// upperFirst returns s with its first rune upper-cased.
func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// lowerFirst returns s with its first rune lower-cased.
func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// visible returns s exported or unexported by the table visibility.
func visible(s string, public bool) string {
	if public {
		return upperFirst(s)
	}
	return lowerFirst(s)
}

// validIdent reports whether s can name a Go declaration.
func validIdent(s string) bool {
	return token.IsIdentifier(s) && s != "_"
}

// predeclared reports whether s is a Go predeclared identifier.
func predeclared(s string) bool {
	return types.Universe.Lookup(s) != nil
}

// pickName returns the first candidate not in taken.
func pickName(taken map[string]struct{}, candidates ...string) string {
	for _, c := range candidates {
		if _, ok := taken[c]; !ok {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

// receiverFor returns the receiver candidates for a type name.
func receiverFor(typeName string) []string {
	r, _ := utf8.DecodeRuneInString(typeName)
	first := string(unicode.ToLower(r))
	if !unicode.IsLetter(r) || !validIdent(first) {
		return []string{"v", "x"}
	}
	return []string{first, "v", "x"}
}

// isKeyword reports whether s is a Go keyword.
func isKeyword(s string) bool {
	return token.IsKeyword(s)
}

// exportable reports whether s can be turned into an exported identifier
// by upper-casing its first rune.
func exportable(s string) bool {
	return token.IsExported(upperFirst(s))
}
