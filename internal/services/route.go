package services

import (
	"math"

	"xctask-route-service/internal/domain"
	"xctask-route-service/internal/geo"
)

// Coordinate tolerance for treating two centers as the same waypoint.
const coordTol = 1e-9

func sameCenter(a, b domain.LatLon) bool {
	return math.Abs(a.Lat-b.Lat) <= coordTol && math.Abs(a.Lon-b.Lon) <= coordTol
}

// CenterDistance sums the geodesic legs between turnpoint centers under the
// competition conventions:
//
//   - A race task (takeoff followed by an exit start) measures from the SSS
//     center; the takeoff leg is not part of the scored distance.
//   - Consecutive turnpoints sharing a center (the common SSS/ESS pairing of
//     one waypoint with two radii) contribute a single leg endpoint.
//
// The optimizer never deduplicates: perimeter-to-perimeter transitions
// between stacked cylinders are still honoured in the optimized route.
func CenterDistance(task *domain.Task) float64 {
	cyls := task.Cylinders
	start := 0
	if sss := task.SssIndex(); sss > 0 &&
		cyls[sss].Role == domain.RoleSssExit && cyls[0].Role == domain.RoleTakeoff {
		start = sss
	}

	centers := make([]domain.LatLon, 0, len(cyls)-start)
	for _, c := range cyls[start:] {
		if len(centers) > 0 && sameCenter(centers[len(centers)-1], c.Center) {
			continue
		}
		centers = append(centers, c.Center)
	}

	return geo.PolylineLength(centers)
}

// degenerate reports whether the task has no two distinct centers, in which
// case every route collapses to a point and the engine returns a
// zero-length result with contacts at the centers.
func degenerate(task *domain.Task) bool {
	first := task.Cylinders[0].Center
	for _, c := range task.Cylinders[1:] {
		if !sameCenter(first, c.Center) {
			return false
		}
	}
	return true
}
