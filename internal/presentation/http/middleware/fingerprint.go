package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/security"
	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

const (
	fingerprintContextKey = "fingerprintId"

	// FingerprintHeader carries the client-chosen fingerprint id.
	FingerprintHeader = "X-MunimJi-Fingerprint"
)

// FingerprintMiddleware resolves the caller's fingerprint id from the
// session token or the fingerprint header and stashes it on the request
// context. Handlers fall back to the body field or a freshly minted id via
// ResolveFingerprint. Non-empty is the only validation.
func FingerprintMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := fromBearerToken(c); id != "" {
			c.Set(fingerprintContextKey, id)
		} else if id := c.GetHeader(FingerprintHeader); id != "" {
			c.Set(fingerprintContextKey, id)
		}
		c.Next()
	}
}

// GetFingerprint returns the fingerprint resolved by the middleware, if any.
func GetFingerprint(c *gin.Context) (string, bool) {
	id := c.GetString(fingerprintContextKey)
	return id, id != ""
}

// ResolveFingerprint picks the caller's fingerprint id in priority order:
// session token claim, fingerprint header, request body field, freshly
// minted ULID. The second return reports whether the id was minted here.
func ResolveFingerprint(c *gin.Context, bodyFingerprint string) (string, bool) {
	if id, ok := GetFingerprint(c); ok {
		return id, false
	}
	if bodyFingerprint != "" {
		return bodyFingerprint, false
	}
	return security.GenerateULID(), true
}

// fromBearerToken extracts the fingerprint claim from a valid session token.
// Invalid or foreign tokens are ignored rather than rejected; the caller
// simply falls through to the next resolution step.
func fromBearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	claims, err := security.ValidateSessionToken(strings.TrimPrefix(auth, "Bearer "), config.JWTSecret)
	if err != nil {
		return ""
	}
	id, ok := security.FingerprintFromClaims(claims)
	if !ok {
		return ""
	}
	return id
}
