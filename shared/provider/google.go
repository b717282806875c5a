package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// GoogleValidator validates Google OAuth2 access tokens through the userinfo endpoint.
type GoogleValidator struct {
	client   *http.Client
	endpoint string
}

// NewGoogleValidator creates a GoogleValidator. An empty endpoint uses the Google default.
func NewGoogleValidator(client *http.Client, endpoint string) *GoogleValidator {
	if client == nil {
		client = &http.Client{}
	}

	return &GoogleValidator{
		client:   client,
		endpoint: endpoint,
	}
}

func (v *GoogleValidator) ValidateToken(ctx context.Context, token string) (*ValidationResult, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})

	clientCtx := context.WithValue(ctx, oauth2.HTTPClient, v.client)
	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(clientCtx, tokenSource))}
	if v.endpoint != "" {
		opts = append(opts, option.WithEndpoint(v.endpoint))
	}

	oauth2Service, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	userInfo, err := oauth2Service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && isRejection(apiErr.Code) {
			return invalidResult(), nil
		}

		return nil, fmt.Errorf("google userinfo request failed: %w", err)
	}

	if userInfo.Id == "" {
		return nil, fmt.Errorf("%w: id", ErrMissingProfileField)
	}

	return &ValidationResult{
		Valid:       true,
		ExternalID:  userInfo.Id,
		DisplayName: userInfo.Name,
		Email:       userInfo.Email,
	}, nil
}

func isRejection(code int) bool {
	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return true
	default:
		return false
	}
}
