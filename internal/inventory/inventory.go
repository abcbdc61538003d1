// Package inventory holds the mutation rules for a user's pantry items.
//
// Every rule is a pure function from the store's current view of one item
// key to its next state. The storage drivers are responsible for applying
// the resulting state atomically; the rules themselves never touch the
// database.
package inventory

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyName is returned when an item name is blank after trimming.
	ErrEmptyName = errors.New("item name is required")

	// ErrInvalidQuantity is returned when an Add is requested with a
	// quantity below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// State describes the store's view of one item key: either absent, or
// present with a quantity of at least 1.
type State struct {
	Exists   bool
	Quantity int
}

// Absent is the initial state of every item key.
func Absent() State {
	return State{}
}

// Present builds the state for a stored record with the given quantity.
func Present(quantity int) State {
	return State{Exists: true, Quantity: quantity}
}

// NormalizeName trims the item name used as the storage key.
// A name that is empty after trimming is rejected before any store call.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// Add creates the record with the requested quantity, or raises the stored
// quantity by it when the record already exists. There is no deletion path
// through Add.
func Add(current State, quantity int) (State, error) {
	if quantity < 1 {
		return current, ErrInvalidQuantity
	}
	if !current.Exists {
		return Present(quantity), nil
	}
	return Present(current.Quantity + quantity), nil
}

// Increment raises the stored quantity by one. The record must already
// exist; incrementing an absent key is a no-op and never materializes a
// record.
func Increment(current State) State {
	if !current.Exists {
		return Absent()
	}
	return Present(current.Quantity + 1)
}

// Decrement lowers the stored quantity by one. A record at quantity 1 is
// deleted outright, never stored at zero. Decrementing an absent key is a
// no-op.
func Decrement(current State) State {
	if !current.Exists || current.Quantity <= 1 {
		return Absent()
	}
	return Present(current.Quantity - 1)
}

// Remove deletes the record regardless of quantity. Removing an absent key
// is not an error, so Remove is idempotent.
func Remove(State) State {
	return Absent()
}
