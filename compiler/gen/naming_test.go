package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"lang", "Lang"},
		{"Lang", "Lang"},
		{"en_UK", "En_UK"},
		{"élan", "Élan"},
		{"_x", "_x"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, upperFirst(tt.input))
		})
	}
}

func TestLowerFirst(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Lang", "lang"},
		{"LangProvider", "langProvider"},
		{"EN_UK", "eN_UK"},
		{"Élan", "élan"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, lowerFirst(tt.input))
		})
	}
}

func TestVisible(t *testing.T) {
	assert.Equal(t, "Lookup", visible("Lookup", true))
	assert.Equal(t, "lookup", visible("Lookup", false))
	assert.Equal(t, "Hi", visible("hi", true))
	assert.Equal(t, "hi", visible("Hi", false))
}

func TestReceiverFor(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Lang", []string{"l", "v", "x"}},
		{"farewell", []string{"f", "v", "x"}},
		{"Ωmega", []string{"ω", "v", "x"}},
		{"_lang", []string{"v", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, receiverFor(tt.input))
		})
	}
}

func TestPickName(t *testing.T) {
	taken := names("p", "q")
	assert.Equal(t, "c", pickName(taken, "p", "q", "c"))
	assert.Equal(t, "p", pickName(names(), "p", "q", "c"))
	assert.Equal(t, "c", pickName(names("p", "q", "c"), "p", "q", "c"), "falls back to the last candidate")
}

func TestIdentifiers(t *testing.T) {
	assert.True(t, validIdent("Lang"))
	assert.True(t, validIdent("en_UK"))
	assert.False(t, validIdent("_"))
	assert.False(t, validIdent("1st"))
	assert.False(t, validIdent("en-UK"))

	assert.True(t, predeclared("string"))
	assert.True(t, predeclared("len"))
	assert.True(t, predeclared("iota"))
	assert.False(t, predeclared("Lang"))

	assert.True(t, isKeyword("func"))
	assert.False(t, isKeyword("Func"))

	assert.True(t, exportable("lang"))
	assert.True(t, exportable("Lang"))
	assert.False(t, exportable("_lang"))
	assert.False(t, exportable("日本"))
}
