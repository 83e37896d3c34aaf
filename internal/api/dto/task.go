package dto

import (
	"fmt"
	"strings"

	"xctask-route-service/internal/domain"
)

// Wire representation of an uploaded task, following the XCTrack task
// schema. Fields the engine does not consume (time gates, deadlines,
// altitudes, descriptions) are accepted and preserved in storage but never
// interpreted.
type TaskRequest struct {
	TaskType   string             `json:"taskType,omitempty"`
	Version    int                `json:"version,omitempty"`
	EarthModel string             `json:"earthModel,omitempty"`
	Turnpoints []TurnpointRequest `json:"turnpoints"`
	SSS        *SSSRequest        `json:"sss,omitempty"`
	Goal       *GoalRequest       `json:"goal,omitempty"`
}

type TurnpointRequest struct {
	Radius   float64         `json:"radius"`
	Type     string          `json:"type,omitempty"`
	Waypoint WaypointRequest `json:"waypoint"`
}

type WaypointRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	AltSmoothed int     `json:"altSmoothed,omitempty"`
}

type SSSRequest struct {
	Type      string   `json:"type,omitempty"`
	Direction string   `json:"direction,omitempty"`
	TimeGates []string `json:"timeGates,omitempty"`
	TimeClose string   `json:"timeClose,omitempty"`
}

type GoalRequest struct {
	Type     string `json:"type,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

// ToDomain maps the wire schema onto the engine's task model. Role
// classification combines the per-turnpoint type tag with the SSS direction
// and the goal type; the final turnpoint is always the goal.
func (t *TaskRequest) ToDomain() (*domain.Task, error) {
	if len(t.Turnpoints) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 turnpoints, got %d", domain.ErrInvalidTask, len(t.Turnpoints))
	}

	earthModel := domain.EarthModel(strings.TrimSpace(t.EarthModel))
	if earthModel == "" {
		earthModel = domain.EarthModelWGS84
	}

	sssRole := domain.RoleSssExit
	if t.SSS != nil && strings.EqualFold(t.SSS.Direction, string(domain.SssDirectionEnter)) {
		sssRole = domain.RoleSssEnter
	}

	goalRole := domain.RoleGoal
	if t.Goal != nil && strings.EqualFold(t.Goal.Type, string(domain.GoalTypeLine)) {
		goalRole = domain.RoleGoalLine
	}

	task := &domain.Task{EarthModel: earthModel}
	last := len(t.Turnpoints) - 1
	for i, tp := range t.Turnpoints {
		role := domain.RoleRegular
		switch {
		case strings.EqualFold(tp.Type, "TAKEOFF"):
			role = domain.RoleTakeoff
		case strings.EqualFold(tp.Type, "SSS"):
			role = sssRole
		case strings.EqualFold(tp.Type, "ESS"):
			role = domain.RoleEss
		}
		// The last turnpoint is always the goal, whatever its type tag says.
		if i == last {
			role = goalRole
		}

		task.Cylinders = append(task.Cylinders, domain.Cylinder{
			Center:  domain.LatLon{Lat: tp.Waypoint.Lat, Lon: tp.Waypoint.Lon},
			RadiusM: tp.Radius,
			Role:    role,
			Name:    tp.Waypoint.Name,
		})
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

type UploadTaskResponse struct {
	Code string `json:"code"`
}

type TaskSummaryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type ListTasksResponse struct {
	Tasks []TaskSummaryResponse `json:"tasks"`
}
