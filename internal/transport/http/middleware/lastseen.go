package middleware

import (
	"context"
	"net/http"
)

// LastSeenToucher records that a user was just active.
type LastSeenToucher interface {
	TouchLastSeen(ctx context.Context, userID int64) error
}

// LastSeen updates the authenticated user's last_seen timestamp on every
// request that carries a valid token. Runs after AuthMiddleware or
// OptionalAuthMiddleware; anonymous requests pass through untouched.
func LastSeen(toucher LastSeenToucher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := GetUserIDFromContext(r.Context()); ok {
				// Errors are logged inside the service; a failed touch
				// never blocks the request.
				_ = toucher.TouchLastSeen(r.Context(), userID)
			}
			next.ServeHTTP(w, r)
		})
	}
}
