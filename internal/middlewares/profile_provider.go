package middlewares

import (
	"authgate/internal/models"
	"context"
)

//go:generate mockgen -source=profile_provider.go -destination=../mocks/profile.go -package=mocks

// ProfileService is the thin provider-backed profile store. Unlike the auth
// actions, its errors surface verbatim to callers.
type ProfileService interface {
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, fields models.ProfileFields) (*models.Profile, error)
}
