package auth

import (
	"errors"
	"strings"
)

// BearerPrefix is the case-sensitive scheme prefix of a bearer Authorization header.
const BearerPrefix = "Bearer "

var (
	ErrMissingAuthorizationHeader = errors.New("missing authorization header")
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header format")
)

// ExtractBearerToken returns the raw token of an "Authorization: Bearer <token>" header value.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingAuthorizationHeader
	}

	token, ok := strings.CutPrefix(header, BearerPrefix)
	if !ok || token == "" {
		return "", ErrInvalidAuthorizationHeader
	}

	return token, nil
}
