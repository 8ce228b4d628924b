package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/langtab/compiler/load"
)

func TestTotalityError(t *testing.T) {
	err := &TotalityError{Location: Location{
		Pos:      load.Position{Filename: "lang.langtab", Line: 9, Column: 5},
		Table:    "Lang",
		Category: "HowAreYou",
		Selector: "NO",
	}}

	t.Run("Error message", func(t *testing.T) {
		msg := err.Error()
		assert.Contains(t, msg, "lang.langtab:9:5: langtab: totality error")
		assert.Contains(t, msg, "table Lang")
		assert.Contains(t, msg, "category HowAreYou")
		assert.Contains(t, msg, "no binding for selector NO")
	})

	t.Run("Is matches sentinels", func(t *testing.T) {
		assert.True(t, errors.Is(err, ErrTotality))
		assert.True(t, errors.Is(err, ErrValidationFailed))
		assert.False(t, errors.Is(err, ErrDuplicateBinding))
	})

	t.Run("helpers", func(t *testing.T) {
		assert.True(t, IsTotalityError(err))
		assert.True(t, IsValidationError(err))
		assert.False(t, IsTotalityError(errors.New("other")))
	})
}

func TestDuplicateBindingError(t *testing.T) {
	err := &DuplicateBindingError{
		Location: Location{
			Pos:      load.Position{Filename: "lang.langtab", Line: 7, Column: 9},
			Table:    "Lang",
			Category: "Hi",
			Selector: "NO",
		},
		First: load.Position{Filename: "lang.langtab", Line: 6, Column: 9},
	}

	t.Run("Error message names both bindings", func(t *testing.T) {
		msg := err.Error()
		assert.Contains(t, msg, "langtab: duplicate binding error")
		assert.Contains(t, msg, "selector NO is bound more than once")
		assert.Contains(t, msg, "first bound at lang.langtab:6:9")
	})

	t.Run("Error message without first position", func(t *testing.T) {
		e := &DuplicateBindingError{Location: Location{Selector: "NO"}}
		assert.NotContains(t, e.Error(), "first bound")
	})

	t.Run("Is matches sentinels", func(t *testing.T) {
		assert.True(t, errors.Is(err, ErrDuplicateBinding))
		assert.True(t, errors.Is(err, ErrValidationFailed))
		assert.True(t, IsDuplicateBindingError(err))
	})
}

func TestTypeError(t *testing.T) {
	cause := errors.New("cannot use 3 as string value")
	err := &TypeError{
		Location: Location{Table: "Lang", Category: "Hi", Selector: "EN_UK|EN_US"},
		Type:     "string",
		Value:    "3",
		Message:  "cannot use 3 as string value",
		Cause:    cause,
	}

	t.Run("Error message", func(t *testing.T) {
		msg := err.Error()
		assert.Contains(t, msg, "langtab: type error in table Lang category Hi selector EN_UK|EN_US")
		assert.Contains(t, msg, "value 3")
		assert.NotContains(t, msg, "-:")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches sentinels", func(t *testing.T) {
		assert.True(t, errors.Is(err, ErrType))
		assert.True(t, errors.Is(err, ErrValidationFailed))
		assert.True(t, IsTypeError(err))
		assert.False(t, IsNamingError(err))
	})
}

func TestNamingError(t *testing.T) {
	err := &NamingError{
		Location: Location{Table: "Lang", Category: "NO"},
		Name:     "NO",
		Message:  "category has the same name as a selector",
	}

	assert.Contains(t, err.Error(), `langtab: naming error in table Lang category NO: "NO"`)
	assert.True(t, errors.Is(err, ErrNaming))
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.True(t, IsNamingError(fmt.Errorf("wrapped: %w", err)))
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Features", "nope", "unknown feature")

		assert.Contains(t, err.Error(), "langtab: config error")
		assert.Contains(t, err.Error(), "Features")
		assert.Contains(t, err.Error(), "nope")
		assert.Contains(t, err.Error(), "unknown feature")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Package", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Package")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.False(t, errors.Is(err, ErrValidationFailed))
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("write", "lang_langtab.go", "write output", cause)

		msg := err.Error()
		assert.Contains(t, msg, "langtab: generation error in phase write")
		assert.Contains(t, msg, "(file: lang_langtab.go)")
		assert.Contains(t, msg, "write output")
		assert.Contains(t, msg, "disk full")
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrGenerationFailed", func(t *testing.T) {
		err := NewGenerationError("format", "", "", nil)
		assert.True(t, errors.Is(err, ErrGenerationFailed))
		assert.True(t, IsGenerationError(err))
		assert.False(t, IsValidationError(err))
	})
}

func TestValidationErrorsJoin(t *testing.T) {
	err := errors.Join(
		&TotalityError{Location: Location{Selector: "NO"}},
		&TypeError{Location: Location{Selector: "EN_UK"}},
	)
	require.Error(t, err)
	assert.True(t, IsTotalityError(err))
	assert.True(t, IsTypeError(err))
	assert.True(t, IsValidationError(err))
}
