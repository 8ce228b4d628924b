package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/langtab/compiler/gen"
)

// configNames are the config files looked up in the working directory,
// in order, when --config is not given.
var configNames = []string{appName + ".yaml", appName + ".yml", appName + ".toml"}

// fileConfig is the content of a langtab.yaml or langtab.toml file.
type fileConfig struct {
	Package  string   `yaml:"package" toml:"package"`
	Target   string   `yaml:"target" toml:"target"`
	Header   string   `yaml:"header" toml:"header"`
	Features []string `yaml:"features" toml:"features"`
	Workers  int      `yaml:"workers" toml:"workers"`
}

// generateFlags holds the flags of the generate and check commands.
type generateFlags struct {
	pkg      string
	target   string
	header   string
	features []string
	workers  int
	config   string
	verbose  bool
}

// register adds the flags of the generate command.
func (f *generateFlags) register(cmd *cobra.Command) {
	f.registerCommon(cmd)
	flags := cmd.Flags()
	flags.StringVar(&f.target, "target", "", "output directory (default next to each input file)")
	flags.StringVar(&f.header, "header", "", "extra comment line for the generated file header")
	flags.IntVar(&f.workers, "workers", 0, "number of files generated concurrently (default GOMAXPROCS)")
}

// registerCommon adds the flags that also affect validation. The check
// command registers only these.
func (f *generateFlags) registerCommon(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.pkg, "package", os.Getenv("GOPACKAGE"), "name of the generated package (default $GOPACKAGE, then the target directory name)")
	flags.StringSliceVar(&f.features, "feature", nil, "enable a feature: text, locale (repeatable)")
	flags.StringVar(&f.config, "config", "", "config file (default "+configNames[0]+", "+configNames[1]+" or "+configNames[2]+" if present)")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log generation progress at debug level")
}

// options merges the config file with the flags. Flags set on the command
// line override the file; features from both are enabled.
func (f *generateFlags) options(cmd *cobra.Command) ([]gen.Option, error) {
	fc, err := readConfig(f.config)
	if err != nil {
		return nil, err
	}
	changed := cmd.Flags().Changed
	pkg := f.pkg
	if !changed("package") && fc.Package != "" {
		pkg = fc.Package
	}
	target, header, workers := fc.Target, fc.Header, fc.Workers
	if changed("target") || target == "" {
		target = f.target
	}
	if changed("header") || header == "" {
		header = f.header
	}
	if changed("workers") || workers == 0 {
		workers = f.workers
	}
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	opts := []gen.Option{
		gen.WithFeatureNames(append(fc.Features, f.features...)...),
		gen.WithWorkers(workers),
		gen.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))),
	}
	if pkg != "" {
		opts = append(opts, gen.WithPackage(pkg))
	}
	if target != "" {
		opts = append(opts, gen.WithTarget(target))
	}
	if header != "" {
		opts = append(opts, gen.WithHeader(header))
	}
	return opts, nil
}

func (f *generateFlags) newConfig(cmd *cobra.Command) (*gen.Config, error) {
	opts, err := f.options(cmd)
	if err != nil {
		return nil, err
	}
	return gen.NewConfig(opts...)
}

// readConfig reads the config file at path. With an empty path, the
// default config names are tried and a missing file yields an empty config.
func readConfig(path string) (*fileConfig, error) {
	if path == "" {
		for _, name := range configNames {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
		if path == "" {
			return &fileConfig{}, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gen.NewConfigError("config", path, err.Error())
	}
	fc, err := decodeConfig(filepath.Ext(path), data)
	if err != nil {
		return nil, gen.NewConfigError("config", path, err.Error())
	}
	return fc, nil
}

func decodeConfig(ext string, data []byte) (*fileConfig, error) {
	fc := &fileConfig{}
	switch ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF.
		if err := dec.Decode(fc); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return nil, err
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(fc); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, errors.New(strict.String())
			}
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q, want .yaml, .yml or .toml", ext)
	}
	return fc, nil
}
