package middleware

import (
	"context"
	"net/http"
)

// EnsureFunc establishes the database connection for a request.
type EnsureFunc func(ctx context.Context) error

// DBReady returns middleware that establishes the database connection
// before the handler runs. On a cold start the first request pays the
// connect cost; concurrent requests share the same attempt. Requests
// are answered 503 rather than reaching handlers with no database.
func DBReady(ensure EnsureFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := ensure(r.Context()); err != nil {
				writeJSONError(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
