package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type tokenClaims struct {
	role    string
	expired bool
}

// inspectToken reads the bearer token's claims without verifying the
// signature; the client holds no signing key, so this is introspection for
// restore-time hygiene only, never an authorization decision.
func inspectToken(token string) tokenClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque (non-JWT) tokens are fine; the backend validates them.
		return tokenClaims{}
	}

	var result tokenClaims
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
		result.expired = true
	}
	if role, ok := claims["role"].(string); ok {
		result.role = role
	}
	return result
}
