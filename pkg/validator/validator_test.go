package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intellicall/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("name", "Bob"),
			validator.ValidEmail("email", "bob@example.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure in order", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.ValidEmail("email", "nope").WithMessage("Valid email is required"),
			validator.RequiredString("name", "   ").WithMessage("Name is required"),
			validator.MinLenString("password", "123", 6),
		)
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))
		assert.ErrorIs(t, err, validator.ErrValidationFailed)

		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 3)
		assert.Equal(t, []string{"Valid email is required"}, errs.Get("email"))
		assert.Equal(t, "Valid email is required", errs.First())
		assert.True(t, errs.Has("password"))
		assert.False(t, errs.Has("missing"))
		assert.Equal(t, "validation failed: email: Valid email is required; name: Name is required; password: must be at least 6 characters long", err.Error())
	})

	t.Run("wrapped errors are extracted", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("register: %w", validator.Apply(validator.RequiredString("name", "")))
		assert.True(t, validator.IsValidationError(err))
		assert.Len(t, validator.ExtractValidationErrors(err), 1)
	})

	t.Run("non validation errors", func(t *testing.T) {
		t.Parallel()
		assert.False(t, validator.IsValidationError(errors.New("boom")))
		assert.False(t, validator.IsValidationError(nil))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}

func TestWhen(t *testing.T) {
	t.Parallel()

	short := validator.MinLenString("password", "123", 6)
	assert.NoError(t, validator.Apply(validator.When(false, short)))
	assert.Error(t, validator.Apply(validator.When(true, short)))
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"plain", false},
		{"@example.com", false},
		{"user@localhost", false},
		{"user@example..com", false},
		{"user@.example.com", false},
		{"Bob <bob@example.com>", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, validator.ValidEmail("email", tt.value).Check())
		})
	}
}

func TestStringRules(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.MinLenString("p", "пароль", 6).Check(), "runes are counted")
	assert.False(t, validator.MinLenString("p", "12345", 6).Check())
	assert.True(t, validator.MaxLenString("p", "12345", 5).Check())
	assert.False(t, validator.MaxLenString("p", "123456", 5).Check())
	assert.True(t, validator.MaxLenString("p", "пароль", 6).Check())
	assert.False(t, validator.MaxBytesString("p", "пароль", 6).Check(), "bytes are counted")
	assert.True(t, validator.MaxBytesString("p", "123456", 6).Check())
	assert.False(t, validator.RequiredString("p", "\t\n").Check())
}

func TestValidUUID(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.ValidUUID("id", "6ba7b810-9dad-11d1-80b4-00c04fd430c8").Check())
	assert.False(t, validator.ValidUUID("id", "6ba7b8109dad11d180b400c04fd430c8").Check())
	assert.False(t, validator.ValidUUID("id", "not-a-uuid").Check())
	assert.False(t, validator.ValidUUID("id", "").Check())
}
