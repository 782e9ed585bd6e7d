package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/platform/logger"
	"github.com/mediahub/mediahub-api/internal/store"
)

// UserLookup is the part of the user store needed for login.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Authenticator exchanges username and password for an access token.
type Authenticator struct {
	users     UserLookup
	verifier  PasswordVerifier
	jwt       JWTService
	dummyHash string
}

// NewAuthenticator builds an Authenticator. The hasher produces the dummy
// hash compared against for unknown usernames, so it should use the same
// cost as stored hashes.
func NewAuthenticator(
	users UserLookup,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	jwtService JWTService,
) (*Authenticator, error) {
	if users == nil || hasher == nil || verifier == nil || jwtService == nil {
		return nil, errors.New("authenticator dependencies cannot be nil")
	}

	dummyHash, err := hasher.Hash("not-a-real-password-placeholder")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Authenticator{
		users:     users,
		verifier:  verifier,
		jwt:       jwtService,
		dummyHash: dummyHash,
	}, nil
}

// IssueToken verifies the credentials and mints a token.
// Unknown usernames and wrong passwords both return ErrInvalidCredentials,
// and both paths run one bcrypt comparison.
func (a *Authenticator) IssueToken(ctx context.Context, username, password string) (*Session, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			_ = a.verifier.Compare(a.dummyHash, password)
			log.Debug("login failed: unknown username")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := a.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch", slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwt.GenerateToken(ctx, domain.Identity{
		SubjectID: user.ID,
		Role:      user.Role,
	})
	if err != nil {
		return nil, err
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
