package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbsaketh/management-system/internal/inventory"
	"github.com/rbsaketh/management-system/internal/models"
)

const testUserID int64 = 1

func TestMemoryStoreAddAndList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	items, err := s.ListItems(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, s.AddItem(ctx, testUserID, "eggs", 3))

	items, err = s.ListItems(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "eggs", items[0].Name)
	assert.Equal(t, 3, items[0].Quantity)

	// Add onto an existing record accumulates.
	require.NoError(t, s.AddItem(ctx, testUserID, "eggs", 2))
	item, err := s.GetItem(ctx, testUserID, "eggs")
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
}

func TestMemoryStoreAddRejectsInvalidQuantity(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	err := s.AddItem(ctx, testUserID, "eggs", 0)
	assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)

	_, err = s.GetItem(ctx, testUserID, "eggs")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDecrementToAbsence(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, testUserID, "eggs", 3))

	require.NoError(t, s.DecrementItem(ctx, testUserID, "eggs"))
	require.NoError(t, s.DecrementItem(ctx, testUserID, "eggs"))

	item, err := s.GetItem(ctx, testUserID, "eggs")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	// The final decrement deletes the record instead of storing zero.
	require.NoError(t, s.DecrementItem(ctx, testUserID, "eggs"))
	_, err = s.GetItem(ctx, testUserID, "eggs")
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := s.ListItems(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryStoreIncrementAbsentIsNoOp(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.IncrementItem(ctx, testUserID, "ghost"))

	_, err := s.GetItem(ctx, testUserID, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRemoveIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, testUserID, "milk", 4))
	require.NoError(t, s.RemoveItem(ctx, testUserID, "milk"))
	require.NoError(t, s.RemoveItem(ctx, testUserID, "milk"))

	_, err := s.GetItem(ctx, testUserID, "milk")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreScopesItemsPerUser(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, 1, "eggs", 3))
	require.NoError(t, s.AddItem(ctx, 2, "eggs", 7))

	item, err := s.GetItem(ctx, 1, "eggs")
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	require.NoError(t, s.RemoveItem(ctx, 1, "eggs"))

	item, err = s.GetItem(ctx, 2, "eggs")
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)
}

func TestMemoryStoreUsers(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	user := &models.User{Email: "ada@example.com", DisplayName: "Ada", PasswordHash: "x"}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	err := s.CreateUser(ctx, &models.User{Email: "ada@example.com", DisplayName: "Other"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	found, err := s.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	previousLogin := found.LastLoginAt
	require.NoError(t, s.TouchLastLogin(ctx, user.ID))
	found, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, found.LastLoginAt.Before(previousLogin))

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
