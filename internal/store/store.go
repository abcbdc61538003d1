// Package store defines the persistence contract for users and pantry
// items, with a MySQL driver for production and an in-memory driver for
// development and tests.
package store

import (
	"context"
	"errors"

	"github.com/rbsaketh/management-system/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ItemStore is the document-store contract for one user's item collection.
//
// Every mutation must be applied atomically at the store level: Add is a
// single upsert, Increment/Decrement are single guarded updates (with the
// delete-at-floor inside the same transaction), so two overlapping calls on
// the same key can never lose a delta to a read-modify-write race.
// Increment and Decrement on an absent key are silent no-ops.
type ItemStore interface {
	AddItem(ctx context.Context, userID int64, name string, quantity int) error
	IncrementItem(ctx context.Context, userID int64, name string) error
	DecrementItem(ctx context.Context, userID int64, name string) error
	RemoveItem(ctx context.Context, userID int64, name string) error
	GetItem(ctx context.Context, userID int64, name string) (models.Item, error)
	ListItems(ctx context.Context, userID int64) ([]models.Item, error)
}

// UserStore manages user profiles.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}
