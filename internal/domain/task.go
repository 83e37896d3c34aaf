package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// EarthModel identifies the reference surface for distance computation.
type EarthModel string

const (
	EarthModelWGS84     EarthModel = "WGS84"
	EarthModelFAISphere EarthModel = "FAI_SPHERE"
)

// SssDirection tells whether the speed section starts by entering or
// exiting the start cylinder.
type SssDirection string

const (
	SssDirectionEnter SssDirection = "ENTER"
	SssDirectionExit  SssDirection = "EXIT"
)

// GoalType distinguishes a goal cylinder from a goal line.
type GoalType string

const (
	GoalTypeCylinder GoalType = "CYLINDER"
	GoalTypeLine     GoalType = "LINE"
)

// A validated competition task: an ordered sequence of turnpoint cylinders
// (takeoff, start of speed section, turnpoints, end of speed section, goal).
// Tasks are immutable once constructed.
type Task struct {
	EarthModel EarthModel
	Cylinders  []Cylinder
}

// Validate checks the structural invariants the engine relies on.
func (t *Task) Validate() error {
	if t.EarthModel != "" && t.EarthModel != EarthModelWGS84 {
		return fmt.Errorf("%w: %q", ErrUnsupportedEarthModel, t.EarthModel)
	}

	if len(t.Cylinders) < 2 {
		return fmt.Errorf("%w: need at least 2 turnpoints, got %d", ErrInvalidTask, len(t.Cylinders))
	}

	sssCount, essCount := 0, 0
	for i, c := range t.Cylinders {
		if c.RadiusM < 0 {
			return fmt.Errorf("%w: turnpoint %d has negative radius %g", ErrInvalidTask, i, c.RadiusM)
		}
		if !c.Center.Valid() {
			return fmt.Errorf("%w: turnpoint %d coordinates out of range (%g, %g)", ErrInvalidTask, i, c.Center.Lat, c.Center.Lon)
		}
		if c.Role == RoleTakeoff && i != 0 {
			return fmt.Errorf("%w: takeoff must be the first turnpoint, found at %d", ErrInvalidTask, i)
		}
		if c.Role.IsSss() {
			sssCount++
		}
		if c.Role == RoleEss {
			essCount++
		}
	}
	if sssCount > 1 {
		return fmt.Errorf("%w: %d SSS turnpoints, at most 1 allowed", ErrInvalidTask, sssCount)
	}
	if essCount > 1 {
		return fmt.Errorf("%w: %d ESS turnpoints, at most 1 allowed", ErrInvalidTask, essCount)
	}

	return nil
}

// Code derives a short stable identifier from the task content. Coordinates
// are rounded to 1e-6 degrees so that re-serialized tasks map to the same
// code.
func (t *Task) Code() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\n", t.EarthModel)
	for _, c := range t.Cylinders {
		fmt.Fprintf(h, "%.6f,%.6f,%.1f,%s\n", c.Center.Lat, c.Center.Lon, c.RadiusM, c.Role)
	}
	return hex.EncodeToString(h.Sum(nil))[:8]
}

// Goal returns the final cylinder.
func (t *Task) Goal() Cylinder { return t.Cylinders[len(t.Cylinders)-1] }

// SssIndex returns the index of the speed-section start, or -1.
func (t *Task) SssIndex() int {
	for i, c := range t.Cylinders {
		if c.Role.IsSss() {
			return i
		}
	}
	return -1
}
