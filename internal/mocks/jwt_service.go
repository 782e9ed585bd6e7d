package mocks

import (
	"context"
	"time"

	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService with function fields.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, identity domain.Identity) (string, time.Time, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(ctx context.Context, identity domain.Identity) (string, time.Time, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, identity)
	}
	return "mock-token", time.Now().Add(time.Hour), nil
}

func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return nil, auth.ErrInvalidToken
}
