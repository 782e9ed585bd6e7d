package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/platform/logger"
	"github.com/mediahub/mediahub-api/internal/platform/objectstore"
	"github.com/mediahub/mediahub-api/internal/service/auth"
	"github.com/mediahub/mediahub-api/internal/store"
)

// UserChanges carries a profile update as received from the client.
// Password is plaintext; it is hashed before reaching the store.
type UserChanges struct {
	Username *string
	Email    *string
	Password *string
	Role     *domain.Role
}

// UserService provides user-related operations.
type UserService interface {
	// ListUsers returns every user ordered by ID.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// RegisterUser creates a user with the default role.
	RegisterUser(ctx context.Context, username, email, password string) (*domain.User, error)

	// UpdateUser changes a profile. Callers may update themselves; admins may
	// update anyone. Only admins may change a role.
	UpdateUser(ctx context.Context, caller domain.Identity, id int64, changes UserChanges) (*domain.User, error)

	// DeleteUser removes an account together with the stored objects of its media.
	// Callers may delete themselves; admins may delete anyone.
	DeleteUser(ctx context.Context, caller domain.Identity, id int64) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore  store.UserStore
	mediaStore store.MediaStore
	objects    objectstore.Store
	hasher     auth.PasswordHasher
	logger     *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	mediaStore store.MediaStore,
	objects objectstore.Store,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore:  userStore,
		mediaStore: mediaStore,
		objects:    objects,
		hasher:     hasher,
		logger:     logger.With("component", "user_service"),
	}
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userStore.List(ctx)
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// RegisterUser hashes the password and stores the new user.
func (s *UserServiceImpl) RegisterUser(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(username, email, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("attempted to register an existing username or email")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// UpdateUser applies changes after the ownership and role checks.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	caller domain.Identity,
	id int64,
	changes UserChanges,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !caller.CanModify(id) {
		log.Warn("user update forbidden", "caller_id", caller.SubjectID, "user_id", id)
		return nil, ErrForbidden
	}
	if changes.Role != nil && !caller.IsPrivileged() {
		log.Warn("role change forbidden", "caller_id", caller.SubjectID, "user_id", id)
		return nil, ErrForbidden
	}

	update := domain.UserUpdate{
		Username: changes.Username,
		Email:    changes.Email,
		Role:     changes.Role,
	}
	if changes.Password != nil {
		hash, err := s.hasher.Hash(*changes.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		update.HashedPassword = &hash
	}
	if update.Empty() {
		return s.userStore.GetByID(ctx, id)
	}

	user, err := s.userStore.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info("user updated", "user_id", id, "caller_id", caller.SubjectID)
	return user, nil
}

// DeleteUser removes the account after the ownership check. The media rows go
// with the account in the datastore, so their object keys are collected first
// and the objects are removed once the account is gone.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, caller domain.Identity, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !caller.CanModify(id) {
		log.Warn("user delete forbidden", "caller_id", caller.SubjectID, "user_id", id)
		return ErrForbidden
	}

	owned, err := s.mediaStore.ListByOwner(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list media of user: %w", err)
	}

	if err := s.userStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	for _, media := range owned {
		removeObject(ctx, s.objects, log, media.Filename)
	}

	log.Info("user deleted", "user_id", id, "caller_id", caller.SubjectID, "media_removed", len(owned))
	return nil
}
