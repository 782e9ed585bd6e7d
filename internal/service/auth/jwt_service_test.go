package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mediahub/mediahub-api/internal/config"
	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	svc, err := newHMACJWTService(testSecret, lifetime, fixedClock(fixedTime))
	require.NoError(t, err)

	identity := domain.Identity{SubjectID: 42, Role: domain.RoleAdmin}
	token, expiresAt, err := svc.GenerateToken(context.Background(), identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, fixedTime.Add(lifetime), expiresAt)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, identity, claims.Identity())
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	t.Parallel()

	svc, err := newHMACJWTService(testSecret, time.Hour, time.Now)
	require.NoError(t, err)

	identity := domain.Identity{SubjectID: 1, Role: domain.RoleUser}
	a, _, err := svc.GenerateToken(context.Background(), identity)
	require.NoError(t, err)
	b, _, err := svc.GenerateToken(context.Background(), identity)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 30 * time.Minute
	identity := domain.Identity{SubjectID: 7, Role: domain.RoleUser}

	issuer, err := newHMACJWTService(testSecret, lifetime, fixedClock(issuedAt))
	require.NoError(t, err)
	token, _, err := issuer.GenerateToken(context.Background(), identity)
	require.NoError(t, err)

	otherIssuer, err := newHMACJWTService("wrong-secret-that-is-long-enough-for-testing", lifetime, fixedClock(issuedAt))
	require.NoError(t, err)
	foreignToken, _, err := otherIssuer.GenerateToken(context.Background(), identity)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtCustomClaims{
		UserID: 7,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		now     time.Time
		token   string
		wantErr error
	}{
		{"valid", issuedAt.Add(time.Minute), token, nil},
		{"within clock skew after expiry", issuedAt.Add(lifetime + time.Minute), token, nil},
		{"expired", issuedAt.Add(lifetime + 5*time.Minute), token, ErrExpiredToken},
		{"not yet valid", issuedAt.Add(-10 * time.Minute), token, ErrTokenNotYetValid},
		{"wrong secret", issuedAt, foreignToken, ErrInvalidToken},
		{"tampered payload", issuedAt, tampered, ErrInvalidToken},
		{"alg none", issuedAt, noneToken, ErrInvalidToken},
		{"garbage", issuedAt, "not.a.jwt", ErrInvalidToken},
		{"empty", issuedAt, "", ErrInvalidToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			validator, err := newHMACJWTService(testSecret, lifetime, fixedClock(tt.now))
			require.NoError(t, err)

			claims, err := validator.ValidateToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, identity, claims.Identity())
		})
	}
}

func TestValidateToken_RejectsUnknownRole(t *testing.T) {
	t.Parallel()

	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{
		UserID: 3,
		Role:   "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc, err := newHMACJWTService(testSecret, time.Hour, fixedClock(now))
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
