package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc.def", "abc.def", nil},
		{"keeps inner spaces", "Bearer abc def", "abc def", nil},
		{"missing", "", "", ErrMissingAuthorizationHeader},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", ErrInvalidAuthorizationHeader},
		{"lowercase scheme", "bearer abc", "", ErrInvalidAuthorizationHeader},
		{"no separator", "Bearerabc", "", ErrInvalidAuthorizationHeader},
		{"empty token", "Bearer ", "", ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
