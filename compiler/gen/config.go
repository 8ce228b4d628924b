package gen

import (
	"log/slog"
	"runtime"
)

// defaultHeader is the first line of every generated file.
const defaultHeader = "Code generated by langtab, DO NOT EDIT."

// Config holds the configuration for code generation.
type Config struct {
	// Package is the name of the generated Go package, e.g. "greeting".
	Package string

	// Target is the output directory. When empty, every file is written
	// next to its table source.
	Target string

	// Header is an optional comment line added below the generated-code
	// header of every file.
	Header string

	// Features holds the enabled feature-flags.
	Features []Feature

	// Hooks hold an optional list of Hooks to apply on the generation.
	Hooks []Hook

	// Workers bounds the number of files generated concurrently.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int

	// Logger receives generation progress. Nil discards it.
	Logger *slog.Logger
}

// OutputConfig groups the settings that decide where a file is written
// and what goes above its declarations.
type OutputConfig struct {
	Package string
	Target  string
	Header  string
}

// DefaultConfig returns a Config with the default settings and the
// features that are enabled by default.
func DefaultConfig() *Config {
	c := &Config{
		Workers: runtime.GOMAXPROCS(0),
	}
	for _, f := range AllFeatures {
		if f.Default {
			c.Features = append(c.Features, f)
		}
	}
	return c
}

// Output returns the output settings of the config.
func (c *Config) Output() OutputConfig {
	return OutputConfig{
		Package: c.Package,
		Target:  c.Target,
		Header:  c.Header,
	}
}

// HasFeature reports if the given feature name is enabled.
func (c *Config) HasFeature(name string) bool {
	for _, f := range c.Features {
		if f.Name == name {
			return true
		}
	}
	return false
}

// workers returns the effective worker count.
func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// logger returns the configured logger or one that discards everything.
func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
