package models

import "time"

// User is the minimal identity record surfaced to UI code. It is owned by
// the session service; consumers hold read-only copies.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	LastSignIn  time.Time `json:"last_sign_in,omitempty"`
}
