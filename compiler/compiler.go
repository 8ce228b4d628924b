// Package compiler provides an API for generating Go code from langtab
// table source files.
//
//	cfg, err := gen.NewConfig(gen.WithPackage("greeting"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := compiler.Generate([]string{"./lang.langtab"}, cfg); err != nil {
//		log.Fatal(err)
//	}
package compiler

import (
	"context"
	"errors"
	"go/token"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/syssam/langtab/compiler/gen"
	"github.com/syssam/langtab/compiler/load"
)

type (
	// Option allows for managing codegen configuration using functional options.
	Option func(*gen.Config) error

	// Extension describes a langtab code generation extension that
	// allows customizing the code generation and integrating with
	// other tools and libraries by registering generation hooks
	// and options.
	Extension interface {
		// Hooks holds an optional list of Hooks to apply
		// on the generator before executing it.
		Hooks() []gen.Hook

		// Options holds the additional options that are
		// applied on the configuration.
		Options() []Option
	}

	// DefaultExtension is the default implementation for compiler.Extension.
	//
	// Embedding this type allows third-party packages to create extensions
	// without implementing all methods.
	//
	//	type Extension struct {
	//		compiler.DefaultExtension
	//	}
	DefaultExtension struct{}
)

// Hooks of the extensions.
func (DefaultExtension) Hooks() []gen.Hook { return nil }

// Options of the extensions.
func (DefaultExtension) Options() []Option { return nil }

var _ Extension = (*DefaultExtension)(nil)

// Extensions appends the extension hooks and options to the configuration.
func Extensions(extensions ...Extension) Option {
	return func(cfg *gen.Config) error {
		for _, ex := range extensions {
			cfg.Hooks = append(cfg.Hooks, ex.Hooks()...)
			for _, opt := range ex.Options() {
				if err := opt(cfg); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// FeatureNames enables features by name.
func FeatureNames(names ...string) Option {
	return Option(gen.WithFeatureNames(names...))
}

// Generate runs the codegen on the table source files at the given paths.
// Every file is parsed and validated before anything is written; the
// errors of all files are joined.
func Generate(paths []string, cfg *gen.Config, options ...Option) error {
	return GenerateContext(context.Background(), paths, cfg, options...)
}

// GenerateContext is like Generate, but stops scheduling files once the
// context is done.
func GenerateContext(ctx context.Context, paths []string, cfg *gen.Config, options ...Option) error {
	units, err := Load(paths, cfg, options...)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		return nil
	}
	return gen.NewJenniferGenerator(units[0].Config).GenerateAll(ctx, units...)
}

// Load parses and validates the table source files at the given paths,
// without generating code. Files that share an output directory are
// also checked against each other, see gen.CheckUnits.
func Load(paths []string, cfg *gen.Config, options ...Option) ([]*gen.Unit, error) {
	if cfg == nil {
		cfg = gen.DefaultConfig()
	}
	for _, opt := range options {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	var (
		units = make([]*gen.Unit, 0, len(paths))
		errs  []error
	)
	for _, path := range paths {
		u, err := loadUnit(path, cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		units = append(units, u)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := gen.CheckUnits(units...); err != nil {
		return nil, err
	}
	return units, nil
}

func loadUnit(path string, cfg *gen.Config) (*gen.Unit, error) {
	f, err := load.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if cfg.Package == "" {
		dir := cfg.Target
		if dir == "" {
			dir = filepath.Dir(path)
		}
		pkg, err := PackageName(dir)
		if err != nil {
			return nil, err
		}
		c := *cfg
		c.Package = pkg
		cfg = &c
	}
	return gen.NewUnit(cfg, f)
}

// PackageName derives a Go package name from a directory, the way
// `go mod init` derives it from a path: the base name with every rune
// that cannot appear in an identifier replaced by '_'.
func PackageName(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", gen.NewConfigError("Package", dir, err.Error())
	}
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return '_'
	}, filepath.Base(abs))
	if !token.IsIdentifier(name) || name == "_" {
		return "", gen.NewConfigError("Package", dir, "cannot derive a package name; use WithPackage")
	}
	return name, nil
}
