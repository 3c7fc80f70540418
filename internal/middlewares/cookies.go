package middlewares

import (
	"net/http"

	"authgate/internal/metrics"
)

// StagedCookies buffers cookie writes produced during session validation so
// the final decision (pass through or redirect) can apply them onto
// whichever response is returned. Rotations must never be lost on redirect.
type StagedCookies struct {
	cookies []*http.Cookie
}

func NewStagedCookies() *StagedCookies {
	return &StagedCookies{}
}

func (s *StagedCookies) Write(name, value string, opts CookieOptions) {
	s.cookies = append(s.cookies, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   opts.MaxAge,
		Expires:  opts.Expires,
		Secure:   opts.Secure,
		HttpOnly: opts.HttpOnly,
		SameSite: opts.SameSite,
	})
}

func (s *StagedCookies) Apply(w http.ResponseWriter) {
	for _, c := range s.cookies {
		http.SetCookie(w, c)
	}

	if len(s.cookies) > 0 {
		metrics.CookieRotationsTotal.Add(float64(len(s.cookies)))
	}
}

func (s *StagedCookies) Count() int {
	return len(s.cookies)
}
