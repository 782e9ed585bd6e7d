package domain

import (
	"errors"
	"strings"
	"time"
)

// User validation errors
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrInvalidRole         = errors.New("invalid role")
)

// User is a registered account. The password hash never leaves the service.
type User struct {
	ID             int64     `json:"user_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser builds a user with the default role. The caller hashes the password.
func NewUser(username, email, hashedPassword string) (*User, error) {
	user := &User{
		Username:       strings.TrimSpace(username),
		Email:          strings.TrimSpace(email),
		Role:           RoleUser,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the invariants every persisted user must satisfy.
// Format rules (lengths, email syntax) belong to the request layer.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// UserUpdate carries the optional fields of a profile update. Nil fields are
// left unchanged. HashedPassword is set by the service, never by clients.
type UserUpdate struct {
	Username       *string
	Email          *string
	HashedPassword *string
	Role           *Role
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.HashedPassword == nil && u.Role == nil
}

// Apply copies the set fields of the update onto user.
func (u UserUpdate) Apply(user *User) {
	if u.Username != nil {
		user.Username = *u.Username
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.HashedPassword != nil {
		user.HashedPassword = *u.HashedPassword
	}
	if u.Role != nil {
		user.Role = *u.Role
	}
}
