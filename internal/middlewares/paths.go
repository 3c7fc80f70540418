package middlewares

import "strings"

const (
	PathRoot      = "/"
	PathLogin     = "/login"
	PathSignup    = "/signup"
	PathDashboard = "/dashboard"
)

// Path prefixes the gate never evaluates: build output, static assets, the
// image optimizer, and the API tree, which carries its own handler-level
// auth. Revalidating a session on every asset fetch would be wasteful and
// none of these are protected-route targets.
var gateSkipPrefixes = []string{
	"/assets/",
	"/static/",
	"/images/",
	"/api/",
}

var gateSkipExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico",
}

// IsPublicPath classifies a request path against the fixed allow-list.
// Exact matches only, no prefix or wildcard matching. Classification is
// pure: it depends on the path string and nothing else.
func IsPublicPath(path string) bool {
	switch path {
	case PathRoot, PathLogin, PathSignup:
		return true
	}
	return false
}

// SkipGate reports whether the gate should bypass this path entirely.
func SkipGate(path string) bool {
	if path == "/favicon.ico" {
		return true
	}

	for _, prefix := range gateSkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	for _, ext := range gateSkipExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}
