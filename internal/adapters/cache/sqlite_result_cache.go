package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"xctask-route-service/internal/domain"
)

// SQLite-backed cache for computed optimization results, used by local
// single-instance deployments so repeat distance requests skip the
// optimizer entirely.
type SqliteResultCache struct {
	DB *sql.DB
}

func NewSqliteResultCache(db *sql.DB) *SqliteResultCache {
	return &SqliteResultCache{DB: db}
}

// Fetch a cached result by key. A missing row is a miss, not an error.
func (s *SqliteResultCache) Get(ctx context.Context, key string) (*domain.OptimizedRoute, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("result cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get result cache: key must not be empty")
	}

	q := `
	SELECT center_distance_m, optimized_distance_m, iterations, converged, contacts_json
	FROM result_cache
	WHERE cache_key = ?;
	`

	var (
		result       domain.OptimizedRoute
		contactsJSON []byte
	)
	row := s.DB.QueryRowContext(ctx, q, key)
	err := row.Scan(
		&result.CenterDistanceM,
		&result.OptimizedDistanceM,
		&result.Iterations,
		&result.Converged,
		&contactsJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get result cache: query result_cache table: %w", err)
	}

	if err := json.Unmarshal(contactsJSON, &result.Contacts); err != nil {
		return nil, false, fmt.Errorf("get result cache: decode contacts: %w", err)
	}

	return &result, true, nil
}

// Store a computed result under its key, replacing any previous value.
func (s *SqliteResultCache) Put(ctx context.Context, key string, result *domain.OptimizedRoute) error {
	if s.DB == nil {
		return errors.New("result cache: db is nil")
	}
	if key == "" {
		return errors.New("insert result cache: key must not be empty")
	}
	if result == nil {
		return errors.New("insert result cache: result must not be nil")
	}

	contactsJSON, err := json.Marshal(result.Contacts)
	if err != nil {
		return fmt.Errorf("insert result cache: encode contacts: %w", err)
	}

	q := `
	INSERT INTO result_cache (cache_key, center_distance_m, optimized_distance_m, iterations, converged, contacts_json)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET center_distance_m = excluded.center_distance_m,
		optimized_distance_m = excluded.optimized_distance_m,
		iterations = excluded.iterations,
		converged = excluded.converged,
		contacts_json = excluded.contacts_json;
	`

	if _, err := s.DB.ExecContext(ctx, q,
		key,
		result.CenterDistanceM,
		result.OptimizedDistanceM,
		result.Iterations,
		result.Converged,
		contactsJSON,
	); err != nil {
		return fmt.Errorf("insert result cache key=%q: %w", key, err)
	}

	return nil
}
