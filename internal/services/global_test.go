package services

import (
	"math"
	"testing"

	"xctask-route-service/internal/domain"
	"xctask-route-service/internal/geo"
)

func TestCandidateSetsShape(t *testing.T) {
	cyls := []domain.Cylinder{
		withRole(regular(46.0, 8.0, 400), domain.RoleTakeoff), // snapped
		regular(46.1, 8.0, 5000),
		regular(46.2, 8.0, 20), // below the candidate radius floor
		withRole(regular(46.3, 8.0, 1000), domain.RoleGoal),
	}
	opt := Options{}.withDefaults(len(cyls))

	sets := candidateSets(cyls, opt)

	if len(sets[0]) != 1 || sets[0][0] != cyls[0].Center {
		t.Fatalf("snapped takeoff candidates = %v, want single center", sets[0])
	}
	if len(sets[1]) != opt.CandidatesM {
		t.Fatalf("interior candidates = %d, want %d", len(sets[1]), opt.CandidatesM)
	}
	if len(sets[2]) != 1 || sets[2][0] != cyls[2].Center {
		t.Fatalf("small-radius candidates = %v, want single center", sets[2])
	}
	if len(sets[3]) != 1 || sets[3][0] != cyls[3].Center {
		t.Fatalf("goal candidates = %v, want single center", sets[3])
	}

	for _, p := range sets[1] {
		if d := math.Abs(geo.SignedDistance(cyls[1], p)); d > 0.01 {
			t.Fatalf("candidate off the boundary by %.4f m", d)
		}
	}
}

func TestCandidateSetsExitSideFilter(t *testing.T) {
	cyls := []domain.Cylinder{
		withRole(regular(46.0, 8.0, 400), domain.RoleTakeoff),
		withRole(regular(46.1, 8.0, 5000), domain.RoleSssExit),
		regular(46.3, 8.0, 1000),
		withRole(regular(46.4, 8.0, 400), domain.RoleGoal),
	}
	opt := Options{}.withDefaults(len(cyls))

	sets := candidateSets(cyls, opt)

	if len(sets[1]) >= opt.CandidatesM {
		t.Fatalf("exit filter kept %d of %d candidates, want a strict subset", len(sets[1]), opt.CandidatesM)
	}
	limit := geo.Distance(cyls[1].Center, cyls[2].Center)
	for _, p := range sets[1] {
		if geo.Distance(p, cyls[2].Center) > limit {
			t.Fatalf("exit candidate on the far side: %v", p)
		}
	}
}

func TestCandidateSetsExitSideFilterAtFirstCylinder(t *testing.T) {
	// No separate takeoff cylinder: the task opens on the SSS-exit itself.
	// The side filter must still apply at stage 0.
	cyls := []domain.Cylinder{
		withRole(regular(46.1, 8.0, 5000), domain.RoleSssExit),
		regular(46.3, 8.0, 1000),
		withRole(regular(46.4, 8.0, 400), domain.RoleGoal),
	}
	opt := Options{}.withDefaults(len(cyls))

	sets := candidateSets(cyls, opt)

	if len(sets[0]) >= opt.CandidatesM {
		t.Fatalf("exit filter kept %d of %d candidates, want a strict subset", len(sets[0]), opt.CandidatesM)
	}
	limit := geo.Distance(cyls[0].Center, cyls[1].Center)
	for _, p := range sets[0] {
		if geo.Distance(p, cyls[1].Center) > limit {
			t.Fatalf("exit candidate on the far side: %v", p)
		}
	}
}

func TestCandidateSetsConcentricExitKeepsFullRing(t *testing.T) {
	cyls := []domain.Cylinder{
		withRole(regular(46.0, 8.0, 400), domain.RoleTakeoff),
		withRole(regular(46.1, 8.0, 5000), domain.RoleSssExit),
		regular(46.1, 8.0, 1000), // next turnpoint inside the start cylinder
		withRole(regular(46.2, 8.0, 400), domain.RoleGoal),
	}
	opt := Options{}.withDefaults(len(cyls))

	sets := candidateSets(cyls, opt)
	if len(sets[1]) != opt.CandidatesM {
		t.Fatalf("concentric exit kept %d candidates, want full ring of %d", len(sets[1]), opt.CandidatesM)
	}
}

func TestSearchRoutePicksCheapestPath(t *testing.T) {
	// Hand-built stage sets on the equator: the middle stage offers a
	// detour north and a point on the straight line.
	sets := [][]domain.LatLon{
		{{Lat: 0, Lon: 0}},
		{{Lat: 0.5, Lon: 0.5}, {Lat: 0, Lon: 0.5}},
		{{Lat: 0, Lon: 1}},
	}

	route := searchRoute(sets, 0)

	if route[1] != (domain.LatLon{Lat: 0, Lon: 0.5}) {
		t.Fatalf("route through %v, want the straight-line state", route[1])
	}
	if route[0] != sets[0][0] || route[2] != sets[2][0] {
		t.Fatal("endpoints must come from their stage sets")
	}
}

func TestSearchRouteBeamMatchesExactOnEasyTask(t *testing.T) {
	cyls := []domain.Cylinder{
		regular(0, 0, 100),
		regular(0, 1, 500),
		withRole(regular(0, 2, 100), domain.RoleGoal),
	}
	opt := Options{}.withDefaults(len(cyls))

	sets := candidateSets(cyls, opt)

	exact := searchRoute(sets, 0)
	beam := searchRoute(sets, opt.BeamB)

	le := geo.PolylineLength(exact)
	lb := geo.PolylineLength(beam)
	if lb < le-1e-9 {
		t.Fatalf("beam (%.3f) beat exact DP (%.3f)", lb, le)
	}
	if lb-le > 100 {
		t.Fatalf("beam (%.3f) far worse than exact DP (%.3f)", lb, le)
	}
}

func TestPrune(t *testing.T) {
	cost := []float64{5, 1, 3, 2, 4}
	prune(cost, 2)

	if cost[1] != 1 || cost[3] != 2 {
		t.Fatalf("best states were pruned: %v", cost)
	}
	for _, i := range []int{0, 2, 4} {
		if !math.IsInf(cost[i], 1) {
			t.Fatalf("state %d survived pruning: %v", i, cost)
		}
	}
}
