package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rbsaketh/management-system/internal/inventory"
	"github.com/rbsaketh/management-system/internal/models"
)

// MemoryStore is an in-memory implementation of ItemStore and UserStore,
// selectable at startup for local development and used by the tests. A
// single mutex serializes every mutation, so it gives the same per-key
// atomicity the MySQL statements do.
type MemoryStore struct {
	mu         sync.Mutex
	nextUserID int64
	users      map[int64]models.User
	byEmail    map[string]int64
	items      map[int64]map[string]models.Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[int64]models.User),
		byEmail: make(map[string]int64),
		items:   make(map[int64]map[string]models.Item),
	}
}

// stateOf reports the protocol state of one key. Callers must hold mu.
func (s *MemoryStore) stateOf(userID int64, name string) inventory.State {
	item, ok := s.items[userID][name]
	if !ok {
		return inventory.Absent()
	}
	return inventory.Present(item.Quantity)
}

// apply writes the next protocol state for one key. Callers must hold mu.
func (s *MemoryStore) apply(userID int64, name string, next inventory.State) {
	collection := s.items[userID]
	if !next.Exists {
		delete(collection, name)
		return
	}

	now := time.Now()
	item, ok := collection[name]
	if !ok {
		if collection == nil {
			collection = make(map[string]models.Item)
			s.items[userID] = collection
		}
		item = models.Item{UserID: userID, Name: name, CreatedAt: now}
	}
	item.Quantity = next.Quantity
	item.UpdatedAt = now
	collection[name] = item
}

func (s *MemoryStore) AddItem(_ context.Context, userID int64, name string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := inventory.Add(s.stateOf(userID, name), quantity)
	if err != nil {
		return err
	}
	s.apply(userID, name, next)
	return nil
}

func (s *MemoryStore) IncrementItem(_ context.Context, userID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.apply(userID, name, inventory.Increment(s.stateOf(userID, name)))
	return nil
}

func (s *MemoryStore) DecrementItem(_ context.Context, userID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.apply(userID, name, inventory.Decrement(s.stateOf(userID, name)))
	return nil
}

func (s *MemoryStore) RemoveItem(_ context.Context, userID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.apply(userID, name, inventory.Remove(s.stateOf(userID, name)))
	return nil
}

func (s *MemoryStore) GetItem(_ context.Context, userID int64, name string) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[userID][name]
	if !ok {
		return models.Item{}, ErrNotFound
	}
	return item, nil
}

func (s *MemoryStore) ListItems(_ context.Context, userID int64) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := []models.Item{}
	for _, item := range s.items[userID] {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return ErrDuplicateEmail
	}

	s.nextUserID++
	now := time.Now()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.LastLoginAt = now

	s.users[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.users[id], nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) TouchLastLogin(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.LastLoginAt = time.Now()
	s.users[id] = user
	return nil
}
