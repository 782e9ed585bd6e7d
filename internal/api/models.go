package api

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/mediahub/mediahub-api/internal/api/shared"
	"github.com/mediahub/mediahub-api/internal/domain"
)

// Request structures. Tags are the validation rulesets; Normalize trims
// every string field except passwords before the rules run.

// RegisterRequest defines the payload for POST /api/users.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=20"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Email    string `json:"email"    validate:"required,email"`
}

func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

// UpdateUserRequest defines the payload for PUT /api/users/{id}. Every
// field is optional but at least one must be present.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,alphanum,min=3,max=20"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Email    *string `json:"email,omitempty"    validate:"omitempty,email"`
	Role     *string `json:"role,omitempty"     validate:"omitempty,oneof=admin user"`
}

func (r *UpdateUserRequest) Normalize() {
	shared.TrimPtr(r.Username)
	shared.TrimPtr(r.Email)
	shared.TrimPtr(r.Role)
}

func (r *UpdateUserRequest) CheckFields() []shared.FieldError {
	if r.Username == nil && r.Password == nil && r.Email == nil && r.Role == nil {
		return []shared.FieldError{atLeastOneField}
	}
	return nil
}

// LoginRequest defines the payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

// UploadMediaRequest holds the multipart fields of POST /api/media. The
// json names are used to report failures.
type UploadMediaRequest struct {
	Title       string                `json:"title"       validate:"required,min=3,max=128"`
	Description string                `json:"description" validate:"max=255"`
	File        *multipart.FileHeader `json:"file"        validate:"required"`
}

func (r *UploadMediaRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

// UpdateMediaRequest defines the payload for PUT /api/media/{id}.
type UpdateMediaRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,min=3,max=128"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

func (r *UpdateMediaRequest) Normalize() {
	shared.TrimPtr(r.Title)
	shared.TrimPtr(r.Description)
}

func (r *UpdateMediaRequest) CheckFields() []shared.FieldError {
	if r.Title == nil && r.Description == nil {
		return []shared.FieldError{atLeastOneField}
	}
	return nil
}

// ItemRequest defines the payload for POST and PUT on /api/items.
type ItemRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func (r *ItemRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

var atLeastOneField = shared.FieldError{
	Field:   "body",
	Rule:    "required",
	Message: "at least one field must be provided",
}

// Response structures

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Message string `json:"message"`

	// Token is the bearer token for the Authorization header.
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires.
	ExpiresAt string `json:"expires_at"`

	User *domain.User `json:"user"`
}

// UserCreatedResponse is returned by POST /api/users.
type UserCreatedResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// UserUpdatedResponse is returned by PUT /api/users/{id}.
type UserUpdatedResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// MediaCreatedResponse is returned by POST /api/media.
type MediaCreatedResponse struct {
	Message  string `json:"message"`
	MediaID  int64  `json:"media_id"`
	Filename string `json:"filename"`
}

// MediaUpdatedResponse is returned by PUT /api/media/{id}.
type MediaUpdatedResponse struct {
	Message string        `json:"message"`
	Media   *domain.Media `json:"media"`
}

// ItemCreatedResponse is returned by POST /api/items.
type ItemCreatedResponse struct {
	Message string `json:"message"`
	ItemID  int64  `json:"item_id"`
}

// ItemUpdatedResponse is returned by PUT /api/items/{id}.
type ItemUpdatedResponse struct {
	Message string       `json:"message"`
	Item    *domain.Item `json:"item"`
}

func formatExpiry(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
