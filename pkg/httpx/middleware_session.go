package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/pastel/pkg/jwtx"
	"github.com/aussiebroadwan/pastel/pkg/slogx"
)

// SessionMiddleware authenticates a request from its session cookie. On
// success the resolved identity is injected into the request context; on
// any failure the request short-circuits with one uniform unauthenticated
// response. Missing vs invalid tokens are distinguished in logs only, never
// in the response body.
func SessionMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				log.Debug("session auth failed", "reason", "missing token")
				writeUnauthenticated(w)
				return
			}

			claims, err := v.Verify(cookie.Value)
			if err != nil {
				log.Debug("session auth failed", "reason", "invalid token", "err", err)
				writeUnauthenticated(w)
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				log.Debug("session auth failed", "reason", "invalid subject", "err", err)
				writeUnauthenticated(w)
				return
			}

			ctx = ContextWithIdentity(ctx, Identity{
				Subject: userID,
				Email:   claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthenticated is the single response body for every session
// failure mode.
func writeUnauthenticated(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
}
