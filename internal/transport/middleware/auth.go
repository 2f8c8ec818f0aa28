package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/adumedia/website-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(token string) (ctxutil.AdminClaims, error)
}

// RequireAdmin returns middleware that rejects requests without a valid
// admin bearer token. Unlike a permissive auth layer there is no
// anonymous path here: every endpoint behind it is admin-only.
func RequireAdmin(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				unauthorized(w, "Not authenticated")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := ctxutil.WithAdminClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail}) //nolint:errcheck
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
