package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenExpired peeks at the bearer token's exp claim without verifying
// the signature (the client has no key material). It is a UX hint only:
// the backend remains the authority and will still answer 401. Tokens
// that cannot be parsed or carry no exp claim are not reported expired.
func TokenExpired(token string) bool {
	if token == "" {
		return false
	}
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
