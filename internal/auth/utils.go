package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"authgate/internal/models"

	"github.com/coreos/go-oidc/v3/oidc"
)

func cookieValue(cookies []*http.Cookie, name string) string {
	for _, c := range cookies {
		if c.Name == name {
			return c.Value
		}
	}

	return ""
}

func userFromClaims(idToken *oidc.IDToken) (*models.User, error) {
	var claims struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Name       string `json:"name"`
		Picture    string `json:"picture"`
	}

	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to extract claims from id token: %w", err)
	}

	if idToken.Subject == "" {
		return nil, fmt.Errorf("id token has no subject")
	}

	return &models.User{
		ID:          idToken.Subject,
		Email:       claims.Email,
		FirstName:   claims.GivenName,
		LastName:    claims.FamilyName,
		DisplayName: claims.Name,
		AvatarURL:   claims.Picture,
	}, nil
}

// decodeProviderError extracts the provider's error message from a non-2xx
// response body. Callers decide whether that message may reach the UI.
func decodeProviderError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return errors.New(payload.Message)
		}
		if payload.Error != "" {
			return errors.New(payload.Error)
		}
	}

	return fmt.Errorf("provider returned status %d", resp.StatusCode)
}
