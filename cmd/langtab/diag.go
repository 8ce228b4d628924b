package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/syssam/langtab/compiler/gen"
	"github.com/syssam/langtab/compiler/load"
)

var (
	errorStyle = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColor = pterm.FgRed
	infoColor  = pterm.FgLightGreen
	lineColor  = pterm.FgCyan
)

func disableColor() {
	pterm.DisableColor()
}

// printDiagnostics prints every error joined into err, one block each.
// Errors with a source position also print the offending line.
func printDiagnostics(w io.Writer, err error) {
	for _, e := range flatten(err) {
		fmt.Fprint(w, errorStyle.Sprint(" "+kind(e)+" error "))
		fmt.Fprintln(w, errorColor.Sprint(" "+e.Error()))
		if pos, ok := position(e); ok {
			printSourceLine(w, pos)
		}
	}
}

// printSuccess prints a one-line confirmation.
func printSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, infoColor.Sprint(msg))
}

// flatten expands errors joined with errors.Join, depth first.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var errs []error
		for _, e := range joined.Unwrap() {
			errs = append(errs, flatten(e)...)
		}
		return errs
	}
	return []error{err}
}

func kind(err error) string {
	switch {
	case load.IsSyntaxError(err):
		return "syntax"
	case gen.IsTotalityError(err):
		return "totality"
	case gen.IsDuplicateBindingError(err):
		return "duplicate binding"
	case gen.IsTypeError(err):
		return "type"
	case gen.IsNamingError(err):
		return "naming"
	case gen.IsConfigError(err):
		return "config"
	case gen.IsGenerationError(err):
		return "generation"
	default:
		return appName
	}
}

func position(err error) (load.Position, bool) {
	var (
		synErr  *load.SyntaxError
		totErr  *gen.TotalityError
		dupErr  *gen.DuplicateBindingError
		typeErr *gen.TypeError
		nameErr *gen.NamingError
		pos     load.Position
	)
	switch {
	case errors.As(err, &synErr):
		pos = synErr.Pos
	case errors.As(err, &totErr):
		pos = totErr.Pos
	case errors.As(err, &dupErr):
		pos = dupErr.Pos
	case errors.As(err, &typeErr):
		pos = typeErr.Pos
	case errors.As(err, &nameErr):
		pos = nameErr.Pos
	}
	return pos, pos.IsValid() && pos.Filename != ""
}

// printSourceLine prints the line at pos with a caret under its column.
// Unreadable files are skipped silently.
func printSourceLine(w io.Writer, pos load.Position) {
	f, err := os.Open(pos.Filename)
	if err != nil {
		return
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		if n != pos.Line {
			continue
		}
		prefix := strconv.Itoa(n) + " | "
		line := strings.ReplaceAll(sc.Text(), "\t", " ")
		fmt.Fprintln(w, lineColor.Sprint(prefix)+line)
		if pos.Column > 0 {
			fmt.Fprintln(w, strings.Repeat(" ", len(prefix)+pos.Column-1)+errorColor.Sprint("^"))
		}
		return
	}
}
