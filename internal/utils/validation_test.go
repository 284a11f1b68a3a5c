package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	valid := []string{"a@x.com", "first.last@mail.example.ru", "x@y.z"}
	invalid := []string{"", "a@x", "ax.com", "@.", "a @x.com"}

	for _, e := range valid {
		assert.True(t, IsEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsEmail(e), e)
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("  \t"))
	assert.False(t, IsBlank(" a "))
}

func TestValidationErrors(t *testing.T) {
	assert.NoError(t, ValidationErrors{}.Err())

	v := ValidationErrors{"email": "required", "city": "required"}
	err := v.Err()

	var got ValidationErrors
	assert.True(t, errors.As(err, &got))
	assert.Equal(t, "validation failed: city: required; email: required", err.Error())
}
