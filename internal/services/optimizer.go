package services

import (
	"fmt"
	"log"
	"slices"

	"xctask-route-service/internal/domain"
	"xctask-route-service/internal/geo"
)

// Optimize computes both competition distances for a task: the center
// distance and the shortest route touching every cylinder in order.
//
// The pipeline seeds contacts from the center geometry, refines them with
// odd/even coordinate descent, then runs a global search (exact DP and a
// beam-search variant over discrete boundary candidates) to escape the
// local minima the refinement can settle in on degenerate sequences, and
// polishes the best candidate route again. The result is deterministic for
// a given task and options.
//
// Optimize is a pure function: it retains no references to the task and may
// be called concurrently from multiple goroutines.
func Optimize(task *domain.Task, opt Options) (*domain.OptimizedRoute, error) {
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	opt = opt.withDefaults(len(task.Cylinders))
	cyls := task.Cylinders
	n := len(cyls)

	// Surface antipodal-pair solver failures before optimizing.
	for i := 0; i+1 < n; i++ {
		if _, _, _, err := geo.InverseChecked(cyls[i].Center, cyls[i+1].Center); err != nil {
			return nil, fmt.Errorf("optimize: leg %d -> %d: %w", i, i+1, err)
		}
	}

	if degenerate(task) {
		log.Printf("optimize: degenerate task (single distinct center), zero-length route")
		contacts := make([]domain.LatLon, n)
		for i, c := range cyls {
			contacts[i] = c.Center
		}
		return &domain.OptimizedRoute{
			Contacts:  contacts,
			Converged: true,
		}, nil
	}

	centerDist := CenterDistance(task)

	// Local refinement from the center-geometry seed.
	best := initialContacts(cyls, opt)
	iterations, converged := refineContacts(cyls, best, opt)
	bestLen := geo.PolylineLength(best)

	// Global search: polish both variants and keep the shortest result.
	sets := candidateSets(cyls, opt)
	for _, beam := range [2]int{0, opt.BeamB} {
		contacts := searchRoute(sets, beam)
		iters, conv := refineContacts(cyls, contacts, opt)
		iterations += iters
		if length := geo.PolylineLength(contacts); length < bestLen {
			best, bestLen, converged = contacts, length, conv
		}
	}

	return &domain.OptimizedRoute{
		Contacts:           slices.Clone(best),
		CenterDistanceM:    centerDist,
		OptimizedDistanceM: bestLen,
		Iterations:         iterations,
		Converged:          converged,
	}, nil
}
