package middlewares

import (
	"net/http"
)

// OptionalSession resolves the session credential for API routes, which the
// page gate bypasses. The request proceeds either way; handlers check the
// principal themselves.
func OptionalSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		staged := NewStagedCookies()
		user, err := appCtx.Sessions.ValidateOrRefresh(r.Context(), r.Cookies(), staged.Write)
		if err != nil {
			appCtx.Logger.Warn("session validation failed", "error", err, "path", r.URL.Path)
			user = nil
		}

		staged.Apply(w)
		if user != nil {
			appCtx.SetPrincipal(user)
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSession is the API counterpart of the page gate: no valid session
// means a JSON 401 rather than a redirect. Provider failures fail closed.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		staged := NewStagedCookies()
		user, err := appCtx.Sessions.ValidateOrRefresh(r.Context(), r.Cookies(), staged.Write)
		if err != nil {
			appCtx.Logger.Warn("session validation failed", "error", err, "path", r.URL.Path)
			user = nil
		}

		staged.Apply(w)
		if user == nil {
			appCtx.SetJSONError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
			return
		}

		appCtx.SetPrincipal(user)
		next.ServeHTTP(w, r)
	})
}
