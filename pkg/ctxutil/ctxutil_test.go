package ctxutil

import (
	"context"
	"testing"
	"time"
)

func TestAdminClaims_RoundTrip(t *testing.T) {
	t.Parallel()

	issued := time.Now().Truncate(time.Second)
	ctx := WithAdminClaims(context.Background(), AdminClaims{Role: "admin", IssuedAt: issued})

	claims, ok := AdminClaimsFromCtx(ctx)
	if !ok {
		t.Fatal("expected claims to be present")
	}
	if claims.Role != "admin" {
		t.Errorf("expected role 'admin', got %q", claims.Role)
	}
	if !claims.IssuedAt.Equal(issued) {
		t.Errorf("expected issued-at %v, got %v", issued, claims.IssuedAt)
	}
}

func TestAdminClaims_Absent(t *testing.T) {
	t.Parallel()

	if _, ok := AdminClaimsFromCtx(context.Background()); ok {
		t.Error("expected no claims in empty context")
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Errorf("expected 'req-123', got %q", got)
	}
}

func TestRequestID_Absent(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("expected empty request id, got %q", got)
	}
}
