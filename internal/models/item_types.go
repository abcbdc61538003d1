package models

import "time"

// Item is the model for the 'inventory_items' table. Items are scoped per
// user and keyed by name; a stored quantity is always >= 1 (a record that
// would drop to zero is deleted instead).
type Item struct {
	UserID    int64     `json:"-" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
