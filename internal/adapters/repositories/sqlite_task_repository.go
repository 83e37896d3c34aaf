package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"xctask-route-service/internal/domain"
	"xctask-route-service/internal/ports"
)

// SQLite-backed implementation of the TaskRepository port. Tasks are stored
// twice: as the engine-level cylinder list for computation, and as the raw
// uploaded document so clients get back exactly what they sent.
type SqliteTaskRepository struct{ DB *sql.DB }

func NewSqliteTaskRepository(db *sql.DB) *SqliteTaskRepository {
	return &SqliteTaskRepository{DB: db}
}

// storedCylinder is the persistence form of a cylinder row.
type storedCylinder struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	RadiusM float64 `json:"radius_m"`
	Role    string  `json:"role"`
	Name    string  `json:"name,omitempty"`
}

// Persist a task under its code. Re-saving the same code replaces the row.
func (s *SqliteTaskRepository) SaveTask(ctx context.Context, code string, task *domain.Task, rawJSON []byte) error {
	if s.DB == nil {
		return errors.New("sqlite task repository: DB is nil")
	}
	if code == "" {
		return errors.New("save task: code must not be empty")
	}
	if task == nil {
		return errors.New("save task: task must not be nil")
	}

	stored := make([]storedCylinder, 0, len(task.Cylinders))
	for _, c := range task.Cylinders {
		stored = append(stored, storedCylinder{
			Lat:     c.Center.Lat,
			Lon:     c.Center.Lon,
			RadiusM: c.RadiusM,
			Role:    c.Role.String(),
			Name:    c.Name,
		})
	}
	cylindersJSON, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("save task: encode cylinders: %w", err)
	}

	name := task.Cylinders[0].Name
	earthModel := task.EarthModel
	if earthModel == "" {
		earthModel = domain.EarthModelWGS84
	}

	query := `
	INSERT OR REPLACE INTO tasks (code, name, earth_model, cylinders_json, raw_json)
	VALUES (?, ?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, code, name, string(earthModel), cylindersJSON, rawJSON); err != nil {
		return fmt.Errorf("save task code=%q: %w", code, err)
	}

	return nil
}

// Retrieve a stored task and its original JSON document by code.
func (s *SqliteTaskRepository) GetTask(ctx context.Context, code string) (*domain.Task, []byte, error) {
	if s.DB == nil {
		return nil, nil, errors.New("sqlite task repository: DB is nil")
	}
	if code == "" {
		return nil, nil, errors.New("get task: code must not be empty")
	}

	query := `
	SELECT earth_model, cylinders_json, raw_json
	FROM tasks
	WHERE code = ?;
	`

	var (
		earthModel    string
		cylindersJSON []byte
		rawJSON       []byte
	)
	err := s.DB.QueryRowContext(ctx, query, code).Scan(&earthModel, &cylindersJSON, &rawJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("get task code=%q: %w", code, ports.ErrTaskNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get task code=%q: query tasks table: %w", code, err)
	}

	var stored []storedCylinder
	if err := json.Unmarshal(cylindersJSON, &stored); err != nil {
		return nil, nil, fmt.Errorf("get task code=%q: decode cylinders: %w", code, err)
	}

	task := &domain.Task{EarthModel: domain.EarthModel(earthModel)}
	for _, c := range stored {
		task.Cylinders = append(task.Cylinders, domain.Cylinder{
			Center:  domain.LatLon{Lat: c.Lat, Lon: c.Lon},
			RadiusM: c.RadiusM,
			Role:    domain.ParseRole(c.Role),
			Name:    c.Name,
		})
	}

	return task, rawJSON, nil
}

// List all stored tasks in code order.
func (s *SqliteTaskRepository) ListTasks(ctx context.Context) ([]ports.TaskSummary, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite task repository: DB is nil")
	}

	query := `
	SELECT code, name
	FROM tasks
	ORDER BY code;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: query tasks table: %w", err)
	}
	defer rows.Close()

	tasks := make([]ports.TaskSummary, 0, 16)
	for rows.Next() {
		var t ports.TaskSummary
		if err := rows.Scan(&t.Code, &t.Name); err != nil {
			return nil, fmt.Errorf("list tasks: scan row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: row iteration: %w", err)
	}

	return tasks, nil
}
