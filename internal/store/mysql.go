package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/rbsaketh/management-system/internal/models"
)

// MySQLStore implements ItemStore and UserStore on top of a MySQL
// connection pool. All item mutations are single atomic statements, so the
// quantity invariant holds even under concurrent writers.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore wraps the connection pool and ensures the schema exists.
func NewMySQLStore(db *sql.DB) (*MySQLStore, error) {
	s := &MySQLStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return s, nil
}

// migrate creates the tables on first start so a fresh database works
// without manual setup.
func (s *MySQLStore) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			display_name VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL,
			last_login_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS inventory_items (
			user_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (user_id, name),
			CONSTRAINT fk_inventory_user FOREIGN KEY (user_id) REFERENCES users (id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

//
// --- Item operations ---
//

// AddItem creates the record or raises its quantity in one upsert. The
// single statement is what makes concurrent Adds on the same key additive
// instead of last-write-wins.
func (s *MySQLStore) AddItem(ctx context.Context, userID int64, name string, quantity int) error {
	query := `
		INSERT INTO inventory_items (user_id, name, quantity, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
			quantity = quantity + VALUES(quantity),
			updated_at = NOW()`

	_, err := s.db.ExecContext(ctx, query, userID, name, quantity)
	return err
}

// IncrementItem raises the quantity of an existing record by one. An absent
// key matches zero rows, which is the required no-op.
func (s *MySQLStore) IncrementItem(ctx context.Context, userID int64, name string) error {
	query := `
		UPDATE inventory_items
		SET quantity = quantity + 1, updated_at = NOW()
		WHERE user_id = ? AND name = ?`

	_, err := s.db.ExecContext(ctx, query, userID, name)
	return err
}

// DecrementItem lowers the quantity by one and deletes the record when it
// hits the floor, inside one transaction. A record is never left at
// quantity zero, and an absent key is a no-op.
func (s *MySQLStore) DecrementItem(ctx context.Context, userID int64, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE inventory_items
		SET quantity = quantity - 1, updated_at = NOW()
		WHERE user_id = ? AND name = ?`
	if _, err := tx.ExecContext(ctx, updateQuery, userID, name); err != nil {
		return err
	}

	deleteQuery := `
		DELETE FROM inventory_items
		WHERE user_id = ? AND name = ? AND quantity <= 0`
	if _, err := tx.ExecContext(ctx, deleteQuery, userID, name); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveItem deletes the record unconditionally. Deleting an absent key is
// not an error.
func (s *MySQLStore) RemoveItem(ctx context.Context, userID int64, name string) error {
	query := "DELETE FROM inventory_items WHERE user_id = ? AND name = ?"
	_, err := s.db.ExecContext(ctx, query, userID, name)
	return err
}

func (s *MySQLStore) GetItem(ctx context.Context, userID int64, name string) (models.Item, error) {
	query := `
		SELECT user_id, name, quantity, created_at, updated_at
		FROM inventory_items
		WHERE user_id = ? AND name = ?`

	var item models.Item
	err := s.db.QueryRowContext(ctx, query, userID, name).Scan(
		&item.UserID, &item.Name, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, ErrNotFound
		}
		return models.Item{}, err
	}
	return item, nil
}

// ListItems returns the user's full collection ordered by name. This is the
// listing every mutation handler re-reads to rebuild the client snapshot.
func (s *MySQLStore) ListItems(ctx context.Context, userID int64) ([]models.Item, error) {
	query := `
		SELECT user_id, name, quantity, created_at, updated_at
		FROM inventory_items
		WHERE user_id = ?
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.UserID, &item.Name, &item.Quantity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

//
// --- User operations ---
//

func (s *MySQLStore) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.LastLoginAt = now

	query := `
		INSERT INTO users (email, password_hash, display_name, created_at, last_login_at)
		VALUES (?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		user.Email, user.PasswordHash, user.DisplayName, user.CreatedAt, user.LastLoginAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return ErrDuplicateEmail
		}
		return err
	}

	user.ID, err = result.LastInsertId()
	return err
}

func (s *MySQLStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `
		SELECT id, email, password_hash, display_name, created_at, last_login_at
		FROM users
		WHERE email = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *MySQLStore) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	query := `
		SELECT id, email, password_hash, display_name, created_at, last_login_at
		FROM users
		WHERE id = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *MySQLStore) TouchLastLogin(ctx context.Context, id int64) error {
	query := "UPDATE users SET last_login_at = NOW() WHERE id = ?"
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}

func (s *MySQLStore) scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName,
		&user.CreatedAt, &user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
