package models

type EventKind string

const (
	EventSignedIn       EventKind = "signed_in"
	EventSignedOut      EventKind = "signed_out"
	EventTokenRefreshed EventKind = "token_refreshed"
)

// AuthEvent is a session-change notification. User is nil for signed_out.
type AuthEvent struct {
	ID   string    `json:"id"`
	Kind EventKind `json:"kind"`
	User *User     `json:"user,omitempty"`
}
