package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var errInvalidToken = errors.New("invalid token")

// GenerateSessionToken creates a signed session token carrying the fingerprint id.
func GenerateSessionToken(fingerprintID, jwtSecret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"fingerprint": fingerprintID,
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ValidateSessionToken validates a session token and returns its claims.
func ValidateSessionToken(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errInvalidToken
}

// FingerprintFromClaims extracts the fingerprint id from session token claims.
func FingerprintFromClaims(claims jwt.MapClaims) (string, bool) {
	id, ok := claims["fingerprint"].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
