package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"authgate/internal/metrics"
)

// SessionGate evaluates every page request before application handlers run.
// It validates the session credential carried in the request cookies,
// relays any rotated credential onto the response, and redirects
// unauthenticated callers away from protected paths.
//
// A provider failure is indistinguishable from "no session" here: the gate
// fails closed and never lets an unverified request through to a protected
// path.
func SessionGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SkipGate(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		staged := NewStagedCookies()

		ctx, cancel := context.WithTimeout(r.Context(), validationTimeout(appCtx))
		defer cancel()

		start := time.Now()
		user, err := appCtx.Sessions.ValidateOrRefresh(ctx, r.Cookies(), staged.Write)
		metrics.SessionValidationDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			appCtx.Logger.Warn("session validation failed, treating as unauthenticated",
				"error", err,
				"path", r.URL.Path)
			metrics.SessionValidationErrors.Inc()
			user = nil
		}

		if IsPublicPath(r.URL.Path) || user != nil {
			staged.Apply(w)
			if user != nil {
				appCtx.SetPrincipal(user)
			}
			metrics.GateDecisionsTotal.WithLabelValues(metrics.GateDecisionAllow).Inc()
			next.ServeHTTP(w, r)
			return
		}

		// Rotated-then-invalidated credentials still reach the client so a
		// stale cookie is not replayed on the next request.
		staged.Apply(w)
		metrics.GateDecisionsTotal.WithLabelValues(metrics.GateDecisionRedirect).Inc()
		http.Redirect(w, r, loginURL(r), http.StatusTemporaryRedirect)
	})
}

func validationTimeout(appCtx *AppContext) time.Duration {
	if appCtx.Config != nil && appCtx.Config.Gate.ValidationTimeout > 0 {
		return appCtx.Config.Gate.ValidationTimeout
	}
	return 5 * time.Second
}

// loginURL builds the redirect target as an absolute URL derived from the
// original request's origin. The originally requested path is not carried
// along.
func loginURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s%s", scheme, r.Host, PathLogin)
}
