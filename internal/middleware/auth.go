package middleware

import (
	"net/http"
	"strings"

	"physio-backend/internal/services"
)

// AdminAuth guards admin-only endpoints with a bearer token issued by
// the auth service.
type AdminAuth struct {
	auth *services.AuthService
}

// NewAdminAuth creates the admin auth middleware
func NewAdminAuth(auth *services.AuthService) *AdminAuth {
	return &AdminAuth{auth: auth}
}

// Require rejects requests without a valid admin token.
func (a *AdminAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}

		subject, err := a.auth.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil || subject != "admin" {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
