package handlers

import "authgate/internal/models"

type AuthStatusResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RedirectResponse tells the browser client where to navigate after a
// successful action: the dashboard after login/signup, the login page after
// logout.
type RedirectResponse struct {
	Status   string `json:"status"`
	Redirect string `json:"redirect"`
}

type ProfileUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
