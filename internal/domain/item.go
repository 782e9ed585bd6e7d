package domain

import (
	"errors"
	"time"
)

// ErrEmptyItemName is returned when an item has no name.
var ErrEmptyItemName = errors.New("item name cannot be empty")

// Item is a generic named record.
type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the invariants every persisted item must satisfy.
func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrEmptyItemName
	}
	return nil
}
