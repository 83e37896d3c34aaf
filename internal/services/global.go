package services

import (
	"math"
	"slices"

	"xctask-route-service/internal/domain"
	"xctask-route-service/internal/geo"
)

// candidateSets builds the discrete boundary candidates the global search
// runs over: one state set per cylinder.
//
// Endpoints contribute a single state (the snapped takeoff center, the goal
// center) so the search concentrates on the interior ordering; refinement
// recovers the exact endpoint contacts afterwards. Small cylinders collapse
// to their center for the same reason. An exit start keeps only candidates
// on the side facing the next turnpoint.
func candidateSets(cyls []domain.Cylinder, opt Options) [][]domain.LatLon {
	n := len(cyls)
	sets := make([][]domain.LatLon, n)
	for i, c := range cyls {
		if i == n-1 || c.RadiusM < minCandidateRadiusM || (i == 0 && startSnapped(c, opt)) {
			sets[i] = []domain.LatLon{c.Center}
			continue
		}
		ring := boundaryRing(c, opt.CandidatesM)
		if c.Role == domain.RoleSssExit {
			ring = exitSide(c, cyls[i+1].Center, ring)
		}
		sets[i] = ring
	}
	return sets
}

// boundaryRing samples m uniformly spaced azimuths on the boundary of c.
func boundaryRing(c domain.Cylinder, m int) []domain.LatLon {
	pts := make([]domain.LatLon, 0, m)
	step := 360.0 / float64(m)
	for k := 0; k < m; k++ {
		pts = append(pts, geo.PointAt(c.Center, float64(k)*step, c.RadiusM))
	}
	return pts
}

// exitSide keeps the candidates no farther from the next center than the
// cylinder center is. When no candidate qualifies, which happens when the
// next center lies within about half the radius of this center (concentric
// starts among them), the full ring is kept.
func exitSide(c domain.Cylinder, next domain.LatLon, ring []domain.LatLon) []domain.LatLon {
	limit := geo.Distance(c.Center, next)
	kept := make([]domain.LatLon, 0, len(ring))
	for _, p := range ring {
		if geo.Distance(p, next) <= limit {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ring
	}
	return kept
}

// searchRoute runs stage-wise dynamic programming over the candidate sets
// and backtracks the cheapest contact sequence. Transition cost is the
// geodesic leg between states; ties resolve to the lowest state index so
// the result is reproducible.
//
// beam > 0 turns the exact DP into a beam search: after each stage only the
// beam cheapest states survive as transition sources.
func searchRoute(sets [][]domain.LatLon, beam int) []domain.LatLon {
	n := len(sets)
	parents := make([][]int, n)

	prevCost := make([]float64, len(sets[0]))
	if beam > 0 {
		prune(prevCost, beam)
	}

	for i := 1; i < n; i++ {
		cur := sets[i]
		curCost := make([]float64, len(cur))
		par := make([]int, len(cur))
		for j, p := range cur {
			best := math.Inf(1)
			bestK := -1
			for k, q := range sets[i-1] {
				if math.IsInf(prevCost[k], 1) {
					continue
				}
				if v := prevCost[k] + geo.Distance(q, p); v < best {
					best = v
					bestK = k
				}
			}
			curCost[j] = best
			par[j] = bestK
		}
		parents[i] = par
		if beam > 0 {
			prune(curCost, beam)
		}
		prevCost = curCost
	}

	bestJ := 0
	for j := 1; j < len(prevCost); j++ {
		if prevCost[j] < prevCost[bestJ] {
			bestJ = j
		}
	}

	route := make([]domain.LatLon, n)
	j := bestJ
	for i := n - 1; i >= 0; i-- {
		route[i] = sets[i][j]
		if i > 0 {
			j = parents[i][j]
		}
	}
	return route
}

// prune keeps the beam cheapest states and marks the rest unreachable.
func prune(cost []float64, beam int) {
	if len(cost) <= beam {
		return
	}
	order := make([]int, len(cost))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		if cost[a] != cost[b] {
			if cost[a] < cost[b] {
				return -1
			}
			return 1
		}
		return a - b
	})
	for _, idx := range order[beam:] {
		cost[idx] = math.Inf(1)
	}
}
