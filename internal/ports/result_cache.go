package ports

import (
	"context"

	"xctask-route-service/internal/domain"
)

// Contract for caching computed optimization results.
//
// Keys combine the task code with an option fingerprint; values are whole
// OptimizedRoute results. Get reports a miss with ok == false rather than
// an error, so backends can degrade to recomputation on transient faults.
type ResultCache interface {
	Get(ctx context.Context, key string) (*domain.OptimizedRoute, bool, error)
	Put(ctx context.Context, key string, result *domain.OptimizedRoute) error
}
