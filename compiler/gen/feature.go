package gen

import (
	"github.com/dave/jennifer/jen"
)

var (
	// FeatureText provides a feature-flag for text encoding of selector types.
	// When enabled, every selector type implements encoding.TextMarshaler and
	// encoding.TextUnmarshaler using the declared selector names.
	FeatureText = Feature{
		Name:        "text",
		Stage:       Stable,
		Default:     false,
		Description: "Text generates MarshalText/UnmarshalText on selector types using the declared selector names",
		emit:        emitText,
	}

	// FeatureLocale provides a feature-flag for BCP 47 language tags.
	// Every selector name, with '_' read as '-', must be a valid tag
	// (EN_UK -> en-UK). The selector type gets a Tag method returning the
	// parsed golang.org/x/text/language tag.
	FeatureLocale = Feature{
		Name:        "locale",
		Stage:       Experimental,
		Default:     false,
		Description: "Locale maps selectors to golang.org/x/text/language tags and generates a Tag method",
		check:       checkLocale,
		emit:        emitLocale,
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureText,
		FeatureLocale,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and may change or go away.
	Experimental

	// Alpha features are complete, but breaking changes to the generated API
	// are still expected.
	Alpha

	// Beta features are documented and no breaking changes are expected.
	Beta

	// Stable features have been in use for a while.
	Stable
)

// String returns the stage name.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the langtab codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// check runs after the built-in validation of a table.
	check func(*Table) error

	// emit appends the feature declarations for a table to the file.
	emit func(*jen.File, *Table)
}

// FeatureByName returns the registered feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
