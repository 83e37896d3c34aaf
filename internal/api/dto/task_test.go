package dto

import (
	"errors"
	"testing"

	"xctask-route-service/internal/domain"
)

func turnpoint(lat, lon, radius float64, tpType string) TurnpointRequest {
	return TurnpointRequest{
		Radius: radius,
		Type:   tpType,
		Waypoint: WaypointRequest{
			Name: "TP",
			Lat:  lat,
			Lon:  lon,
		},
	}
}

func TestToDomainRoleMapping(t *testing.T) {
	req := TaskRequest{
		EarthModel: "WGS84",
		Turnpoints: []TurnpointRequest{
			turnpoint(46.0, 8.0, 400, "TAKEOFF"),
			turnpoint(46.1, 8.0, 5000, "SSS"),
			turnpoint(46.2, 8.0, 1000, ""),
			turnpoint(46.3, 8.0, 2000, "ESS"),
			turnpoint(46.4, 8.0, 200, ""),
		},
		SSS:  &SSSRequest{Type: "RACE", Direction: "EXIT"},
		Goal: &GoalRequest{Type: "LINE"},
	}

	task, err := req.ToDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantRoles := []domain.Role{
		domain.RoleTakeoff,
		domain.RoleSssExit,
		domain.RoleRegular,
		domain.RoleEss,
		domain.RoleGoalLine,
	}
	for i, want := range wantRoles {
		if got := task.Cylinders[i].Role; got != want {
			t.Fatalf("turnpoint %d role = %v, want %v", i, got, want)
		}
	}
}

func TestToDomainLastTurnpointIsAlwaysGoal(t *testing.T) {
	// Tasks that end on the ESS cylinder still finish there: the goal role
	// wins over the type tag on the final turnpoint.
	req := TaskRequest{
		Turnpoints: []TurnpointRequest{
			turnpoint(46.0, 8.0, 400, "TAKEOFF"),
			turnpoint(46.1, 8.0, 5000, "SSS"),
			turnpoint(46.2, 8.0, 2000, "ESS"),
		},
		SSS: &SSSRequest{Type: "RACE", Direction: "EXIT"},
	}

	task, err := req.ToDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := task.Cylinders[2].Role; got != domain.RoleGoal {
		t.Fatalf("last role = %v, want RoleGoal", got)
	}

	req.Goal = &GoalRequest{Type: "LINE"}
	task, err = req.ToDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := task.Cylinders[2].Role; got != domain.RoleGoalLine {
		t.Fatalf("last role = %v, want RoleGoalLine", got)
	}
}

func TestToDomainDefaults(t *testing.T) {
	req := TaskRequest{
		Turnpoints: []TurnpointRequest{
			turnpoint(46.0, 8.0, 400, ""),
			turnpoint(46.1, 8.0, 1000, ""),
		},
	}

	task, err := req.ToDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.EarthModel != domain.EarthModelWGS84 {
		t.Fatalf("earth model = %q, want WGS84 default", task.EarthModel)
	}
	// Without a goal block the last turnpoint is a goal cylinder.
	if got := task.Cylinders[1].Role; got != domain.RoleGoal {
		t.Fatalf("last role = %v, want RoleGoal", got)
	}
}

func TestToDomainEnterDirection(t *testing.T) {
	req := TaskRequest{
		Turnpoints: []TurnpointRequest{
			turnpoint(46.0, 8.0, 400, "TAKEOFF"),
			turnpoint(46.1, 8.0, 5000, "SSS"),
			turnpoint(46.2, 8.0, 200, ""),
		},
		SSS: &SSSRequest{Direction: "ENTER"},
	}

	task, err := req.ToDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := task.Cylinders[1].Role; got != domain.RoleSssEnter {
		t.Fatalf("SSS role = %v, want RoleSssEnter", got)
	}
}

func TestToDomainRejectsInvalid(t *testing.T) {
	short := TaskRequest{Turnpoints: []TurnpointRequest{turnpoint(46.0, 8.0, 400, "")}}
	if _, err := short.ToDomain(); !errors.Is(err, domain.ErrInvalidTask) {
		t.Fatalf("short task error = %v, want ErrInvalidTask", err)
	}

	sphere := TaskRequest{
		EarthModel: "FAI_SPHERE",
		Turnpoints: []TurnpointRequest{
			turnpoint(46.0, 8.0, 400, ""),
			turnpoint(46.1, 8.0, 400, ""),
		},
	}
	if _, err := sphere.ToDomain(); !errors.Is(err, domain.ErrUnsupportedEarthModel) {
		t.Fatalf("FAI sphere error = %v, want ErrUnsupportedEarthModel", err)
	}
}
