package middleware

import (
	"net/http"
	"strings"
)

// SessionCookieName is the opaque session credential cookie.
const SessionCookieName = "__session"

// Page paths that require a signed-in guardian.
var protectedPaths = []string{"/elder/dashboard", "/elder/register"}

// SessionGate is the edge-level redirect check for page routes. It inspects
// cookie PRESENCE only: signed-in users are bounced off the sign-in/sign-up
// pages, anonymous users are bounced off protected pages. It never verifies
// the cookie cryptographically; the handlers that consume the session do
// that. API routes pass through untouched.
func SessionGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if strings.HasPrefix(path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		hasSession := false
		if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
			hasSession = true
		}

		if hasSession && (strings.HasPrefix(path, "/sign-in") || strings.HasPrefix(path, "/sign-up")) {
			http.Redirect(w, r, "/elder/dashboard", http.StatusSeeOther)
			return
		}

		if !hasSession {
			for _, p := range protectedPaths {
				if strings.HasPrefix(path, p) {
					http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
					return
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}
