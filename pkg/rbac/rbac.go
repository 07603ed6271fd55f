// Package rbac provides the admin gate.
//
// The role is never trusted from token claims: every admin-gated request
// re-resolves the caller's role from the user store, so revoking admin takes
// effect immediately even while old tokens are still valid.
package rbac

import (
	"context"
	"net/http"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/logger"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/middleware"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/response"
)

// Admin role value, matching the persisted user role column.
const RoleAdmin = 1

// RoleResolver resolves a user ID to its current role. Implemented by the
// user repository; returns an error when the user no longer exists.
type RoleResolver interface {
	RoleByID(ctx context.Context, userID uint) (int, error)
}

// RequireAdmin returns middleware that allows only admin users through.
// Authenticate must have run earlier in the chain.
func RequireAdmin(resolver RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := middleware.UserIDFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, "Authorization credential is required")
				return
			}

			role, err := resolver.RoleByID(r.Context(), userID)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("admin gate: identity not found", "user_id", userID)
				response.Unauthorized(w, "Unauthorized Access")
				return
			}

			if role != RoleAdmin {
				response.Unauthorized(w, "Unauthorized Access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
