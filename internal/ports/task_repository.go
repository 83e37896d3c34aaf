package ports

import (
	"context"
	"errors"

	"xctask-route-service/internal/domain"
)

// ErrTaskNotFound is returned by GetTask when no task is stored under the
// requested code.
var ErrTaskNotFound = errors.New("task not found")

// Summary row for task listings.
type TaskSummary struct {
	Code string
	Name string
}

// Port: a boundary for storing and retrieving uploaded tasks.
type TaskRepository interface {
	// Persist a task under its content-derived code. Storing the same task
	// twice is idempotent.
	SaveTask(ctx context.Context, code string, task *domain.Task, rawJSON []byte) error
	// Retrieve a stored task and its original JSON document by code.
	GetTask(ctx context.Context, code string) (*domain.Task, []byte, error)
	// List all stored tasks.
	ListTasks(ctx context.Context) ([]TaskSummary, error)
}
