package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	passthrough := func(next http.Handler) http.Handler { return next }

	return NewRouter(RouterDeps{
		Public:       newPublicHandler(&publicContentStub{}),
		Admin:        newAdminHandler(&adminAuthStub{}, &adminContentStub{}),
		Webhook:      NewWebhookHandler(&webhookVerifierStub{accept: true}, testLogger()),
		Health:       NewHealthHandler(&pingerStub{}, "test"),
		SPA:          NewSPAHandler(t.TempDir()),
		RequireAdmin: passthrough,
		LoginLimit:   passthrough,
	})
}

func TestRouter_UnknownAPIPathIsJSON404(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not found"}`, rec.Body.String())
}

func TestRouter_NonAPIPathFallsToSPA(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/archive", nil))

	// Empty dist dir: the SPA handler answers its built-in JSON hint.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ADUmedia API is running")
}

func TestRouter_HealthMounted(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
