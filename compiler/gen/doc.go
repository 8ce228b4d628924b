// Package gen validates langtab tables and generates Go code for them.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Table source (*.langtab)
//	        ↓
//	   load.File (syntax only, alias groups unexpanded)
//	        ↓
//	   Unit / Table (validated: total, unique, type-consistent)
//	        ↓
//	   Emit (jennifer file)
//	        ↓
//	   Generated code (<source>_langtab.go)
//
// # Key Types
//
//   - Unit: The validated tables of one source file, one output file
//   - Table: A validated table with its closed selector set
//   - Category: The bindings of one category, ordered by selector
//   - Config: Global configuration for code generation
//
// # Error Handling
//
// Validation stops at the first violation of a table and reports it with a
// structured error carrying the source position:
//
//   - TotalityError: A category misses a selector
//   - DuplicateBindingError: A category binds a selector twice
//   - TypeError: A value does not have the table value type
//   - NamingError: An identifier is malformed, reserved or collides
//   - ConfigError: Configuration errors
//   - GenerationError: Rendering, formatting or writing failed
//
// All validation errors match ErrValidationFailed:
//
//	u, err := gen.NewUnit(config, file)
//	if err != nil {
//	    if gen.IsTotalityError(err) {
//	        // Handle incomplete category
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithPackage("greeting"),
//	    gen.WithFeatures(gen.FeatureText),
//	)
//
// # Generated Output
//
// For a table
//
//	pub table Lang {
//	    category Hi {
//	        EN_UK | EN_US = "Hi";
//	        NO = "Hei";
//	    }
//	}
//
// the generator declares the selector type Lang with the constants LangEN_UK,
// LangEN_US and LangNO, the capability interface LangProvider, the provider
// type Hi and the dispatch Lang.Lookup and LookupLang:
//
//	LookupLang[Hi](LangNO) // "Hei"
//
// # Features
//
// The generator supports optional features that can be enabled:
//
//   - text: MarshalText/UnmarshalText on selector types
//   - locale: BCP 47 language tags for selectors
package gen
