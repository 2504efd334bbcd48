package room

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCategory   = errors.New("room category cannot be empty")
	ErrCategoryTooLong = errors.New("room category is too long (max 100 characters)")
	ErrInvalidStatus   = errors.New("room status must be Available or Occupied")
	ErrInvalidID       = errors.New("room id must be positive")
)

const (
	MaxCategoryLength = 100
)

type Room struct {
	id       int64
	category string
	status   Status
}

// NewRoom builds a room that has not been stored yet; the store assigns its id.
func NewRoom(category, status string) (*Room, error) {
	category = strings.TrimSpace(category)
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	st, err := NewStatus(status)
	if err != nil {
		return nil, err
	}

	return &Room{
		category: category,
		status:   st,
	}, nil
}

func Reconstruct(id int64, category string, status Status) *Room {
	return &Room{
		id:       id,
		category: category,
		status:   status,
	}
}

// Replace overwrites category and status, keeping the identity.
func (r *Room) Replace(category, status string) error {
	replacement, err := NewRoom(category, status)
	if err != nil {
		return err
	}
	r.category = replacement.category
	r.status = replacement.status
	return nil
}

func (r *Room) IsAvailable() bool {
	return r.status.IsAvailable()
}

func ValidateID(id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return nil
}

func validateCategory(category string) error {
	if category == "" {
		return ErrEmptyCategory
	}
	if len(category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}
	return nil
}

func (r *Room) ID() int64        { return r.id }
func (r *Room) Category() string { return r.category }
func (r *Room) Status() Status   { return r.status }
