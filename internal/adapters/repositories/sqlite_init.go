package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"xctask-route-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTasksQuery := `
	CREATE TABLE IF NOT EXISTS tasks (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		earth_model TEXT NOT NULL,
		cylinders_json TEXT NOT NULL,
		raw_json TEXT NOT NULL
	);
	`

	createResultCacheQuery := `
	CREATE TABLE IF NOT EXISTS result_cache (
		cache_key TEXT PRIMARY KEY,
		center_distance_m REAL NOT NULL,
		optimized_distance_m REAL NOT NULL,
		iterations INTEGER NOT NULL,
		converged INTEGER NOT NULL,
		contacts_json TEXT NOT NULL
	);
	`

	statements := []string{
		createTasksQuery,
		createResultCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type TaskSeed struct {
	Name       string         `json:"name"`
	EarthModel string         `json:"earth_model"`
	Cylinders  []CylinderSeed `json:"cylinders"`
}

type CylinderSeed struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	RadiusM float64 `json:"radius_m"`
	Role    string  `json:"role"`
	Name    string  `json:"name"`
}

// Populate the database with demo tasks from a JSON file. A missing seed
// file is not an error, so fresh checkouts start empty.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	payload, err := os.ReadFile(jsonPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed tasks: read %q: %w", jsonPath, err)
	}

	var seeds []TaskSeed
	if err := json.Unmarshal(payload, &seeds); err != nil {
		return fmt.Errorf("seed tasks: parse json: %w", err)
	}

	repo := NewSqliteTaskRepository(db)
	for i, seed := range seeds {
		task := &domain.Task{EarthModel: domain.EarthModel(strings.TrimSpace(seed.EarthModel))}
		if task.EarthModel == "" {
			task.EarthModel = domain.EarthModelWGS84
		}

		for _, c := range seed.Cylinders {
			task.Cylinders = append(task.Cylinders, domain.Cylinder{
				Center:  domain.LatLon{Lat: c.Lat, Lon: c.Lon},
				RadiusM: c.RadiusM,
				Role:    domain.ParseRole(c.Role),
				Name:    c.Name,
			})
		}
		if task.Cylinders != nil && task.Cylinders[0].Name == "" && seed.Name != "" {
			task.Cylinders[0].Name = seed.Name
		}
		if err := task.Validate(); err != nil {
			return fmt.Errorf("seed tasks: task at index %d: %w", i+1, err)
		}

		raw, err := json.Marshal(seed)
		if err != nil {
			return fmt.Errorf("seed tasks: encode task at index %d: %w", i+1, err)
		}

		if err := repo.SaveTask(context.Background(), task.Code(), task, raw); err != nil {
			return fmt.Errorf("seed tasks: store task at index %d: %w", i+1, err)
		}
	}

	return nil
}
