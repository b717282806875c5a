package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Title string `json:"title" validate:"required,max=10"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidator_Valid(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Struct(samplePayload{Title: "ok"}))
}

func TestValidator_TranslatedFieldErrors(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Struct(samplePayload{Email: "nope"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title is a required field", validationErr.Fields["title"])
	assert.Equal(t, "email must be a valid email address", validationErr.Fields["email"])
	assert.Equal(t, "email must be a valid email address; title is a required field", err.Error())
}
