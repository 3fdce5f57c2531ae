package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/friskytrails/api/internal/domain"
	jwtinfra "github.com/friskytrails/api/internal/infrastructure/jwt"
)

type contextKey string

const UserKey contextKey = "user"

// TokenCookieName is the session cookie browser clients authenticate with
// when no Authorization header is present.
const TokenCookieName = "token"

type userResolver interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// Auth returns middleware that authenticates the request and injects the
// resolved user into context.
//
// The Authorization header takes precedence over the token cookie. A bad
// token that arrived via cookie also clears the cookie, so a browser
// holding a stale session is not stuck re-sending it.
func Auth(provider *jwtinfra.Provider, users userResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, fromCookie := extractToken(r)
			if tokenStr == "" || tokenStr == "none" {
				writeJSONError(w, http.StatusUnauthorized, "not authorized, no token")
				return
			}

			claims, err := provider.Verify(tokenStr)
			if err != nil {
				if fromCookie {
					clearTokenCookie(w)
				}
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			u, err := users.Get(r.Context(), claims.UserID)
			if err != nil || !u.Enable {
				if fromCookie {
					clearTokenCookie(w)
				}
				writeJSONError(w, http.StatusUnauthorized, "user no longer exists")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken returns the bearer token and whether it came from the cookie.
func extractToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), false
	}
	if c, err := r.Cookie(TokenCookieName); err == nil {
		return c.Value, true
	}
	return "", false
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(UserKey).(*domain.User)
	return u, ok
}
