package models

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims represents the JWT claims issued by the identity provider.
type IdentityClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	SessionID            string `json:"session_id"`
	IsAnonymous          bool   `json:"is_anonymous"`
}

// GetUserID returns the subject claim, the primary identifier for the
// authenticated caller and the ownerId for all folder operations.
func (c *IdentityClaims) GetUserID() string {
	return c.Subject
}
