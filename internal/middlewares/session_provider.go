package middlewares

import (
	"authgate/internal/models"
	"context"
	"net/http"
	"time"
)

//go:generate mockgen -source=session_provider.go -destination=../mocks/session.go -package=mocks

// CookieOptions mirror the attributes the session service decides for its
// credential cookies. The gate relays them unmodified.
type CookieOptions struct {
	Path     string
	Domain   string
	MaxAge   int
	Expires  time.Time
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// CookieWriter stages a cookie write onto whichever response the caller
// ultimately produces. Implementations must not write headers immediately.
type CookieWriter func(name, value string, opts CookieOptions)

// SessionService is the external identity provider boundary. The credential
// bytes are opaque to every consumer of this interface; only the service
// itself reads or rotates them.
type SessionService interface {
	// ValidateOrRefresh resolves the request cookies to the current user,
	// staging any rotated credential cookies through write. A missing,
	// expired, or invalid credential returns (nil, nil); an error means the
	// provider could not be consulted at all.
	ValidateOrRefresh(ctx context.Context, cookies []*http.Cookie, write CookieWriter) (*models.User, error)

	// CurrentUser is a point-in-time query usable from a long-lived client
	// process. Returns (nil, nil) when no session is held.
	CurrentUser(ctx context.Context) (*models.User, error)

	// Subscribe opens a bounded channel of session-change events. The
	// returned func cancels the subscription; the channel is closed once no
	// further events will be delivered.
	Subscribe(ctx context.Context) (<-chan models.AuthEvent, func(), error)

	SignIn(ctx context.Context, email, password string, write CookieWriter) error
	SignUp(ctx context.Context, email, password string, profile models.ProfileFields, write CookieWriter) error
	SignOut(ctx context.Context, write CookieWriter) error
}
