package database

import (
	"database/sql"
	"errors"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenDB initializes and returns the MySQL connection pool. The DSN comes
// from PANTRY_DB_DSN and must include parseTime=true so DATETIME columns
// scan into time.Time.
func OpenDB() (*sql.DB, error) {
	dsn := os.Getenv("PANTRY_DB_DSN")
	if dsn == "" {
		return nil, errors.New("PANTRY_DB_DSN environment variable is not set")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Printf("Error connecting to database: %v", err)
		return nil, err
	}

	log.Println("Database connection pool established successfully")
	return db, nil
}
