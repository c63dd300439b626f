package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hirebase/internal/domain"
	"hirebase/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier implements TokenVerifier against the identity provider's JWKS.
type JWTVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewJWTVerifier creates a verifier that fetches public keys from the
// provider's JWKS endpoint. Keys are cached and refreshed automatically
// based on HTTP cache headers.
func NewJWTVerifier(jwksURL string, logger *slog.Logger) (TokenVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx := context.Background()
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "jwks_url", jwksURL)

	return &JWTVerifier{
		jwks:   jwks,
		logger: logger,
	}, nil
}

// VerifyToken validates a JWT and extracts the identity claims.
// Returns an error if the token is invalid, expired, or has incorrect claims.
func (v *JWTVerifier) VerifyToken(tokenString string) (*models.IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.IdentityClaims{}, v.jwks.Keyfunc)
	if err != nil {
		v.logger.Debug("token parse failed", "error", err)
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		v.logger.Debug("token invalid after parsing")
		return nil, domain.ErrUnauthorized
	}

	// Prevent algorithm confusion attacks - allow only RS256 or ES256
	switch token.Method.Alg() {
	case "RS256", "ES256":
		// allowed
	default:
		v.logger.Warn("token uses unexpected algorithm", "algorithm", token.Method.Alg())
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.IdentityClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	// Validate subject exists (sub claim)
	if claims.Subject == "" {
		v.logger.Debug("token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	// Reject anonymous tokens
	if claims.Role != "authenticated" {
		v.logger.Debug("token has invalid role", "role", claims.Role, "subject", claims.Subject)
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close releases resources held by the verifier. keyfunc v3 manages its own
// lifecycle, so this is a no-op kept for graceful shutdown compatibility.
func (v *JWTVerifier) Close() error {
	v.logger.Info("JWT verifier closed")
	return nil
}
