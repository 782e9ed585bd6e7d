package auth

import (
	"context"
	"time"

	"github.com/mediahub/mediahub-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the identity.
	// Returns the token string and its expiry.
	GenerateToken(ctx context.Context, identity domain.Identity) (string, time.Time, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified content of an access token.
type Claims struct {
	// UserID is the subject the token was issued for.
	UserID int64 `json:"uid,omitempty"`

	// Role is the subject's role at issue time.
	Role domain.Role `json:"role,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// Identity returns the request identity carried by the claims.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{SubjectID: c.UserID, Role: c.Role}
}
