package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Load the postgres driver
)

const gamesSchema = `
	CREATE TABLE IF NOT EXISTS games (
		id UUID PRIMARY KEY,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		win_length INTEGER NOT NULL,
		moves INTEGER[] NOT NULL DEFAULT '{}',
		result TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
`

// InitPostgres initializes the database connection and creates missing tables.
func InitPostgres(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	// Test the connection
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	if _, err = db.Exec(gamesSchema); err != nil {
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return db, nil
}
