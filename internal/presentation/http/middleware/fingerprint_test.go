package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/security"
	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.JWTSecret = "test-session-secret"
	os.Exit(m.Run())
}

func newFingerprintContext(t *testing.T, decorate func(*http.Request)) *gin.Context {
	t.Helper()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/init", nil)
	if decorate != nil {
		decorate(req)
	}
	c.Request = req
	FingerprintMiddleware()(c)
	return c
}

func TestResolveFingerprintPrefersTokenClaim(t *testing.T) {
	token, err := security.GenerateSessionToken("fp-token", config.JWTSecret, time.Minute)
	require.NoError(t, err)

	c := newFingerprintContext(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set(FingerprintHeader, "fp-header")
	})

	id, minted := ResolveFingerprint(c, "fp-body")
	assert.Equal(t, "fp-token", id)
	assert.False(t, minted)
}

func TestResolveFingerprintFallsBackToHeader(t *testing.T) {
	c := newFingerprintContext(t, func(req *http.Request) {
		req.Header.Set(FingerprintHeader, "fp-header")
	})

	id, minted := ResolveFingerprint(c, "fp-body")
	assert.Equal(t, "fp-header", id)
	assert.False(t, minted)
}

func TestResolveFingerprintFallsBackToBody(t *testing.T) {
	c := newFingerprintContext(t, nil)

	id, minted := ResolveFingerprint(c, "fp-body")
	assert.Equal(t, "fp-body", id)
	assert.False(t, minted)
}

func TestResolveFingerprintMintsWhenNothingProvided(t *testing.T) {
	c := newFingerprintContext(t, nil)

	id, minted := ResolveFingerprint(c, "")
	assert.True(t, minted)
	assert.Len(t, id, 26) // ULID

	again, _ := ResolveFingerprint(c, "")
	assert.NotEqual(t, id, again)
}

func TestInvalidBearerTokenIsIgnoredNotRejected(t *testing.T) {
	c := newFingerprintContext(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-token")
		req.Header.Set(FingerprintHeader, "fp-header")
	})

	id, minted := ResolveFingerprint(c, "")
	assert.Equal(t, "fp-header", id)
	assert.False(t, minted)
}

func TestTokenSignedWithWrongSecretFallsThrough(t *testing.T) {
	token, err := security.GenerateSessionToken("fp-token", "some-other-secret", time.Minute)
	require.NoError(t, err)

	c := newFingerprintContext(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	id, minted := ResolveFingerprint(c, "fp-body")
	assert.Equal(t, "fp-body", id)
	assert.False(t, minted)
}
