package provider

import "context"

// ValidationResult is the outcome of asking an identity provider about a bearer token.
// The profile fields are either all set (Valid) or all empty.
type ValidationResult struct {
	Valid       bool
	ExternalID  string
	DisplayName string
	Email       string
}

// TokenValidator validates an opaque bearer token against an external identity provider.
//
// An invalid or expired token is reported as a result with Valid set to false, not as an
// error. Errors are reserved for transport failures and malformed provider responses.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*ValidationResult, error)
}

func invalidResult() *ValidationResult {
	return &ValidationResult{Valid: false}
}
