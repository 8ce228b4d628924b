package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/langtab/compiler/load"
)

// Sentinel errors for common failure cases.
var (
	// ErrValidationFailed matches every semantic validation error.
	ErrValidationFailed = errors.New("langtab: validation failed")
	// ErrTotality indicates a category without a binding for some selector.
	ErrTotality = errors.New("langtab: incomplete category")
	// ErrDuplicateBinding indicates a selector bound twice in one category.
	ErrDuplicateBinding = errors.New("langtab: duplicate binding")
	// ErrType indicates a value that does not fit the table value type.
	ErrType = errors.New("langtab: value type mismatch")
	// ErrNaming indicates an invalid or colliding identifier.
	ErrNaming = errors.New("langtab: invalid identifier")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("langtab: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("langtab: code generation failed")
)

// Location identifies the part of a table a validation error refers to.
// Empty fields are omitted from messages.
type Location struct {
	Pos      load.Position
	Table    string
	Category string
	Selector string
}

func (l Location) write(b *strings.Builder, kind string) {
	if l.Pos.IsValid() || l.Pos.Filename != "" {
		b.WriteString(l.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString("langtab: ")
	b.WriteString(kind)
	b.WriteString(" error")
	if l.Table != "" {
		b.WriteString(" in table ")
		b.WriteString(l.Table)
	}
	if l.Category != "" {
		b.WriteString(" category ")
		b.WriteString(l.Category)
	}
	if l.Selector != "" {
		b.WriteString(" selector ")
		b.WriteString(l.Selector)
	}
}

// TotalityError reports a category that does not bind every selector.
type TotalityError struct {
	Location
}

// Error implements the error interface.
func (e *TotalityError) Error() string {
	var b strings.Builder
	e.write(&b, "totality")
	b.WriteString(": no binding for selector ")
	b.WriteString(e.Selector)
	return b.String()
}

// Is reports whether the target matches ErrTotality or ErrValidationFailed.
func (e *TotalityError) Is(target error) bool {
	return target == ErrTotality || target == ErrValidationFailed
}

// DuplicateBindingError reports a selector bound more than once in a
// category, either on two lines or through overlapping alias groups.
type DuplicateBindingError struct {
	Location
	// First is the position of the first binding of the selector.
	First load.Position
}

// Error implements the error interface.
func (e *DuplicateBindingError) Error() string {
	var b strings.Builder
	e.write(&b, "duplicate binding")
	b.WriteString(": selector ")
	b.WriteString(e.Selector)
	b.WriteString(" is bound more than once")
	if e.First.IsValid() {
		b.WriteString(" (first bound at ")
		b.WriteString(e.First.String())
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether the target matches ErrDuplicateBinding or ErrValidationFailed.
func (e *DuplicateBindingError) Is(target error) bool {
	return target == ErrDuplicateBinding || target == ErrValidationFailed
}

// TypeError reports a value type or value literal error.
type TypeError struct {
	Location
	Type    string // declared value type
	Value   string // literal source, empty for value type errors
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	var b strings.Builder
	e.write(&b, "type")
	if e.Value != "" {
		fmt.Fprintf(&b, ": value %s", e.Value)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *TypeError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrType or ErrValidationFailed.
func (e *TypeError) Is(target error) bool {
	return target == ErrType || target == ErrValidationFailed
}

// NamingError reports an identifier that is malformed, reserved, or
// collides with another identifier of the table.
type NamingError struct {
	Location
	Name    string
	Message string
}

// Error implements the error interface.
func (e *NamingError) Error() string {
	var b strings.Builder
	e.write(&b, "naming")
	if e.Name != "" {
		fmt.Fprintf(&b, ": %q", e.Name)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches ErrNaming or ErrValidationFailed.
func (e *NamingError) Is(target error) bool {
	return target == ErrNaming || target == ErrValidationFailed
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("langtab: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("langtab: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "render", "format", "write"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("langtab: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsTotalityError reports whether the error is a TotalityError.
func IsTotalityError(err error) bool {
	var totErr *TotalityError
	return errors.As(err, &totErr)
}

// IsDuplicateBindingError reports whether the error is a DuplicateBindingError.
func IsDuplicateBindingError(err error) bool {
	var dupErr *DuplicateBindingError
	return errors.As(err, &dupErr)
}

// IsTypeError reports whether the error is a TypeError.
func IsTypeError(err error) bool {
	var typErr *TypeError
	return errors.As(err, &typErr)
}

// IsNamingError reports whether the error is a NamingError.
func IsNamingError(err error) bool {
	var nameErr *NamingError
	return errors.As(err, &nameErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsValidationError reports whether the error is any validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}
