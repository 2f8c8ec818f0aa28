package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adumedia/website-backend/internal/auth"
	"github.com/adumedia/website-backend/internal/domain"
)

func newService(t *testing.T) *Service {
	t.Helper()
	tokens := auth.NewTokenManager("0123456789abcdef0123456789abcdef", 24*time.Hour)
	return New(tokens, "correct-password", "hook-secret")
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	t.Run("correct password issues a token", func(t *testing.T) {
		t.Parallel()

		session, err := svc.Login(context.Background(), "correct-password")
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.Equal(t, 24*3600, session.ExpiresIn)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Login(context.Background(), "wrong")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("empty password is unauthorized", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Login(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		session, err := svc.Login(context.Background(), "correct-password")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
		assert.WithinDuration(t, time.Now(), claims.IssuedAt, time.Minute)
	})

	t.Run("garbage collapses to unauthorized", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestVerifyWebhookSecret(t *testing.T) {
	t.Parallel()

	t.Run("configured secret requires a match", func(t *testing.T) {
		t.Parallel()
		svc := newService(t)

		assert.True(t, svc.VerifyWebhookSecret("hook-secret"))
		assert.False(t, svc.VerifyWebhookSecret("other"))
		assert.False(t, svc.VerifyWebhookSecret(""))
	})

	t.Run("empty configured secret accepts anything", func(t *testing.T) {
		t.Parallel()

		tokens := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
		open := New(tokens, "pw", "")

		assert.True(t, open.VerifyWebhookSecret(""))
		assert.True(t, open.VerifyWebhookSecret("anything"))
	})
}
