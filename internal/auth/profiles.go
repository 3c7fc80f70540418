package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"authgate/internal/config"
	"authgate/internal/models"
)

// ProfileClient wraps the provider's profile REST endpoint. Provider error
// messages from this surface are returned verbatim; profile validation
// failures are meant to reach the UI, unlike auth action failures.
type ProfileClient struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewProfileClient(cfg *config.Config, logger *slog.Logger) *ProfileClient {
	return &ProfileClient{
		baseURL: cfg.Provider.ProfileURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

func (c *ProfileClient) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("provider has no profile endpoint configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeProviderError(resp)
	}

	var profile models.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &profile, nil
}

func (c *ProfileClient) UpdateProfile(ctx context.Context, userID string, fields models.ProfileFields) (*models.Profile, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("provider has no profile endpoint configured")
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/"+userID, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build profile update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile update request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeProviderError(resp)
	}

	var profile models.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode updated profile: %w", err)
	}

	return &profile, nil
}
