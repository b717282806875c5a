package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultGraphMeURL is the Microsoft Graph endpoint describing the signed-in user.
const DefaultGraphMeURL = "https://graph.microsoft.com/v1.0/me"

var (
	ErrMissingProfileField = errors.New("missing required profile field")
	ErrInvalidProfileField = errors.New("invalid profile field")
)

// MicrosoftGraphValidator validates Microsoft access tokens by calling the Graph "me" endpoint.
type MicrosoftGraphValidator struct {
	client *http.Client
	meURL  string
}

// NewMicrosoftGraphValidator creates a validator that calls meURL with the given HTTP client.
// An empty meURL falls back to DefaultGraphMeURL.
func NewMicrosoftGraphValidator(client *http.Client, meURL string) *MicrosoftGraphValidator {
	if client == nil {
		client = &http.Client{}
	}
	if meURL == "" {
		meURL = DefaultGraphMeURL
	}

	return &MicrosoftGraphValidator{
		client: client,
		meURL:  meURL,
	}
}

func (v *MicrosoftGraphValidator) ValidateToken(ctx context.Context, token string) (*ValidationResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.meURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return invalidResult(), nil
	}

	var profile map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode graph profile: %w", err)
	}

	externalID, err := requiredString(profile, "id")
	if err != nil {
		return nil, err
	}

	displayName, err := requiredString(profile, "displayName")
	if err != nil {
		return nil, err
	}

	// Accounts without a mailbox have no "mail"; the principal name stands in for it.
	email, err := optionalString(profile, "mail")
	if err != nil {
		return nil, err
	}
	if email == "" {
		email, err = requiredString(profile, "userPrincipalName")
		if err != nil {
			return nil, err
		}
	}

	return &ValidationResult{
		Valid:       true,
		ExternalID:  externalID,
		DisplayName: displayName,
		Email:       email,
	}, nil
}

func requiredString(profile map[string]json.RawMessage, key string) (string, error) {
	if _, ok := profile[key]; !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingProfileField, key)
	}

	return optionalString(profile, key)
}

func optionalString(profile map[string]json.RawMessage, key string) (string, error) {
	raw, ok := profile[key]
	if !ok {
		return "", nil
	}

	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidProfileField, key)
	}
	if value == nil {
		return "", nil
	}

	return *value, nil
}
