package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"authgate/internal/config"
	"authgate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileClient(t *testing.T, handler http.HandlerFunc) *ProfileClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Provider.ProfileURL = server.URL

	return NewProfileClient(cfg, slog.New(slog.DiscardHandler))
}

func TestProfileClient_Profile(t *testing.T) {
	client := newProfileClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user-1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Profile{
			ID:        "user-1",
			FirstName: "Steve",
			LastName:  "Example",
		})
	})

	profile, err := client.Profile(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, "Steve", profile.FirstName)
}

func TestProfileClient_ProfileProviderErrorVerbatim(t *testing.T) {
	client := newProfileClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"profile not found"}`))
	})

	_, err := client.Profile(context.Background(), "absent")

	require.Error(t, err)
	assert.EqualError(t, err, "profile not found")
}

func TestProfileClient_UpdateProfile(t *testing.T) {
	client := newProfileClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/user-1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var fields models.ProfileFields
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, "Stephen", fields.FirstName)

		_ = json.NewEncoder(w).Encode(models.Profile{
			ID:        "user-1",
			FirstName: fields.FirstName,
			LastName:  fields.LastName,
		})
	})

	profile, err := client.UpdateProfile(context.Background(), "user-1",
		models.ProfileFields{FirstName: "Stephen", LastName: "Example"})

	require.NoError(t, err)
	assert.Equal(t, "Stephen", profile.FirstName)
}

func TestProfileClient_UpdateProfileValidationErrorVerbatim(t *testing.T) {
	client := newProfileClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"first name must not be empty"}`))
	})

	_, err := client.UpdateProfile(context.Background(), "user-1", models.ProfileFields{})

	require.Error(t, err)
	assert.EqualError(t, err, "first name must not be empty")
}

func TestProfileClient_NoEndpointConfigured(t *testing.T) {
	client := NewProfileClient(&config.Config{}, slog.New(slog.DiscardHandler))

	_, err := client.Profile(context.Background(), "user-1")
	assert.Error(t, err)

	_, err = client.UpdateProfile(context.Background(), "user-1", models.ProfileFields{})
	assert.Error(t, err)
}
