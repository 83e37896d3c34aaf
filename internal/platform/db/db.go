package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open a Postgres connection pool for the shared result cache.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}

// InitResultCacheSchema creates the shared result_cache table.
func InitResultCacheSchema(db *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS result_cache (
		cache_key TEXT PRIMARY KEY,
		center_distance_m DOUBLE PRECISION NOT NULL,
		optimized_distance_m DOUBLE PRECISION NOT NULL,
		iterations INTEGER NOT NULL,
		converged BOOLEAN NOT NULL,
		contacts_json TEXT NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init result cache schema: %w", err)
	}
	return nil
}
