package ctxutil

import (
	"context"
	"time"
)

type ctxKey string

const (
	adminClaimsKey ctxKey = "admin_claims"
	requestIDKey   ctxKey = "request_id"
)

// AdminClaims carries the authenticated admin identity through a request.
// There is a single administrative principal, so the claims only record
// the role tag and when the token was issued.
type AdminClaims struct {
	Role     string
	IssuedAt time.Time
}

// WithAdminClaims stores admin claims in the context.
func WithAdminClaims(ctx context.Context, claims AdminClaims) context.Context {
	return context.WithValue(ctx, adminClaimsKey, claims)
}

// AdminClaimsFromCtx extracts admin claims from the context.
// Returns false if the request was not authenticated.
func AdminClaimsFromCtx(ctx context.Context) (AdminClaims, bool) {
	claims, ok := ctx.Value(adminClaimsKey).(AdminClaims)
	return claims, ok
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
