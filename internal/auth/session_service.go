package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"authgate/internal/config"
	"authgate/internal/middlewares"
	"authgate/internal/models"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const refreshCookieMaxAge = 30 * 24 * 60 * 60

// RemoteSessionService implements the session service contract against an
// OIDC identity provider. The access cookie carries the raw ID token; the
// refresh cookie carries the provider's refresh token. Both are opaque to
// every other component.
type RemoteSessionService struct {
	cfg      *config.Config
	logger   *slog.Logger
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth    *oauth2.Config
	bus      *EventBus
	http     *http.Client

	// client-process session, held only when this process itself signed in
	mu    sync.Mutex
	token *oauth2.Token
}

func NewRemoteSessionService(ctx context.Context, cfg *config.Config, logger *slog.Logger, bus *EventBus) (*RemoteSessionService, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Provider.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Provider.ClientID,
		ClientSecret: cfg.Provider.ClientSecret,
		Endpoint:     provider.Endpoint(),
		Scopes:       cfg.Provider.Scopes,
	}

	return &RemoteSessionService{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.Provider.ClientID}),
		oauth:    oauthConfig,
		bus:      bus,
		http:     &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// ValidateOrRefresh verifies the credential carried in cookies. A still
// valid access token resolves directly; an expired one with a refresh token
// present is rotated, and the replacement cookies are staged through write.
// Invalid or rejected credentials normalize to (nil, nil); only a provider
// that cannot be consulted surfaces an error.
func (s *RemoteSessionService) ValidateOrRefresh(ctx context.Context, cookies []*http.Cookie, write middlewares.CookieWriter) (*models.User, error) {
	access := cookieValue(cookies, s.cfg.Cookies.AccessName)
	refresh := cookieValue(cookies, s.cfg.Cookies.RefreshName)

	if access != "" {
		if idToken, err := s.verifier.Verify(ctx, access); err == nil {
			user, err := userFromClaims(idToken)
			if err == nil {
				return user, nil
			}
			s.logger.Warn("valid id token with unusable claims", "error", err)
		}
	}

	if refresh == "" {
		return nil, nil
	}

	token, err := s.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refresh}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			// The provider rejected the refresh token; the session is gone.
			return nil, nil
		}
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("refreshed token carries no id_token")
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify refreshed id token: %w", err)
	}

	user, err := userFromClaims(idToken)
	if err != nil {
		return nil, err
	}

	s.stageSessionCookies(write, rawIDToken, token)
	s.publish(ctx, models.EventTokenRefreshed, user)

	return user, nil
}

func (s *RemoteSessionService) CurrentUser(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == nil {
		return nil, nil
	}

	userInfo, err := s.provider.UserInfo(ctx, s.oauth.TokenSource(ctx, token))
	if err != nil {
		return nil, fmt.Errorf("userinfo query failed: %w", err)
	}

	var claims struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Name       string `json:"name"`
		Picture    string `json:"picture"`
	}
	if err := userInfo.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to extract userinfo claims: %w", err)
	}

	return &models.User{
		ID:          userInfo.Subject,
		Email:       claims.Email,
		FirstName:   claims.GivenName,
		LastName:    claims.FamilyName,
		DisplayName: claims.Name,
		AvatarURL:   claims.Picture,
	}, nil
}

func (s *RemoteSessionService) Subscribe(ctx context.Context) (<-chan models.AuthEvent, func(), error) {
	return s.bus.Subscribe(ctx)
}

func (s *RemoteSessionService) SignIn(ctx context.Context, email, password string, write middlewares.CookieWriter) error {
	token, err := s.oauth.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		return fmt.Errorf("sign-in rejected: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return fmt.Errorf("provider returned no id_token on sign-in")
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return fmt.Errorf("failed to verify id token: %w", err)
	}

	user, err := userFromClaims(idToken)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.stageSessionCookies(write, rawIDToken, token)
	s.publish(ctx, models.EventSignedIn, user)

	return nil
}

func (s *RemoteSessionService) SignUp(ctx context.Context, email, password string, profile models.ProfileFields, write middlewares.CookieWriter) error {
	if s.cfg.Provider.SignupURL == "" {
		return fmt.Errorf("provider has no signup endpoint configured")
	}

	payload, err := json.Marshal(map[string]string{
		"email":      email,
		"password":   password,
		"first_name": profile.FirstName,
		"last_name":  profile.LastName,
	})
	if err != nil {
		return fmt.Errorf("failed to encode signup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Provider.SignupURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build signup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("signup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeProviderError(resp)
	}

	// A successful registration establishes the session immediately.
	return s.SignIn(ctx, email, password, write)
}

func (s *RemoteSessionService) SignOut(ctx context.Context, write middlewares.CookieWriter) error {
	s.mu.Lock()
	s.token = nil
	s.mu.Unlock()

	s.clearSessionCookies(write)
	s.publish(ctx, models.EventSignedOut, nil)

	return nil
}

func (s *RemoteSessionService) stageSessionCookies(write middlewares.CookieWriter, rawIDToken string, token *oauth2.Token) {
	if write == nil {
		return
	}

	accessMaxAge := int(time.Until(token.Expiry).Seconds())
	if accessMaxAge <= 0 {
		accessMaxAge = 3600
	}

	write(s.cfg.Cookies.AccessName, rawIDToken, s.cookieOptions(accessMaxAge))

	if token.RefreshToken != "" {
		write(s.cfg.Cookies.RefreshName, token.RefreshToken, s.cookieOptions(refreshCookieMaxAge))
	}
}

func (s *RemoteSessionService) clearSessionCookies(write middlewares.CookieWriter) {
	if write == nil {
		return
	}

	write(s.cfg.Cookies.AccessName, "", s.cookieOptions(-1))
	write(s.cfg.Cookies.RefreshName, "", s.cookieOptions(-1))
}

func (s *RemoteSessionService) cookieOptions(maxAge int) middlewares.CookieOptions {
	return middlewares.CookieOptions{
		Path:     "/",
		Domain:   s.cfg.Cookies.Domain,
		MaxAge:   maxAge,
		Secure:   s.cfg.Cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *RemoteSessionService) publish(ctx context.Context, kind models.EventKind, user *models.User) {
	event := models.AuthEvent{
		ID:   uuid.New().String(),
		Kind: kind,
		User: user,
	}

	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish session event", "kind", kind, "error", err)
	}
}
