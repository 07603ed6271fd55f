// Package middleware provides the HTTP middleware stack.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/auth"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/response"
)

type userIDKey struct{}

// Authenticate verifies the bearer token and stores the caller's user ID in
// the request context. A missing credential and an invalid one are reported
// separately so clients can distinguish "log in first" from "token expired".
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w, "Authorization credential is required")
			return
		}

		// Accept both "Bearer <token>" and a bare token, as the original
		// storefront client sends the latter.
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired credential")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromCtx returns the authenticated user's ID, if any.
func UserIDFromCtx(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey{}).(uint)
	return id, ok
}
