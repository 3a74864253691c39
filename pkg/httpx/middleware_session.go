package httpx

import (
	"context"
	"net/http"

	"github.com/taskerra/taskerra/pkg/slogx"
)

// SessionCookieName is the cookie carrying the session token. The same name
// doubles as a request header for non-browser clients; both transports must
// stay supported.
const SessionCookieName = "session"

// SessionAuthenticator resolves a presented session token to a user id.
// Implementations must reject missing, unknown, invalidated and expired
// sessions with a single undifferentiated error.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (userID string, err error)
}

// SessionMiddleware authenticates requests via the session cookie, falling
// back to the "session" header only when the cookie is absent. Every
// rejection is a bare 401 with no detail on why, so callers cannot probe
// which sessions exist.
func SessionMiddleware(auth SessionAuthenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := TokenFromRequest(r)
			if token == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			userID, err := auth.Authenticate(ctx, token)
			if err != nil {
				log.Debug("session rejected", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, userID)
			ctx = context.WithValue(ctx, CtxKeySessionID, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest extracts the session token, preferring the cookie over
// the header when both are present.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get(SessionCookieName)
}
