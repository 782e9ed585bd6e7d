package domain

import (
	"errors"
	"time"
)

// Media validation errors
var (
	ErrEmptyFilename  = errors.New("media filename cannot be empty")
	ErrEmptyTitle     = errors.New("media title cannot be empty")
	ErrEmptyMediaType = errors.New("media type cannot be empty")
	ErrInvalidOwner   = errors.New("media owner must be set")
	ErrInvalidSize    = errors.New("media size must be positive")
)

// Media is an uploaded file and its metadata. Filename is generated by the
// server and doubles as the object storage key.
type Media struct {
	ID            int64     `json:"media_id"`
	Filename      string    `json:"filename"`
	Filesize      int64     `json:"filesize"`
	MediaType     string    `json:"media_type"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	OwnerID       int64     `json:"user_id"`
	OwnerUsername string    `json:"username,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Validate checks the invariants every persisted media record must satisfy.
func (m *Media) Validate() error {
	if m.Filename == "" {
		return ErrEmptyFilename
	}
	if m.Title == "" {
		return ErrEmptyTitle
	}
	if m.MediaType == "" {
		return ErrEmptyMediaType
	}
	if m.OwnerID <= 0 {
		return ErrInvalidOwner
	}
	if m.Filesize <= 0 {
		return ErrInvalidSize
	}
	return nil
}

// MediaUpdate carries the mutable metadata of a media item.
type MediaUpdate struct {
	Title       *string
	Description *string
}

// Empty reports whether the update changes nothing.
func (u MediaUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil
}

// Apply copies the set fields of the update onto media.
func (u MediaUpdate) Apply(media *Media) {
	if u.Title != nil {
		media.Title = *u.Title
	}
	if u.Description != nil {
		media.Description = *u.Description
	}
}
