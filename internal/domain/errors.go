package domain

import "errors"

// Sentinel errors surfaced by the optimization engine. Callers match them
// with errors.Is; wrapped messages carry the offending detail.
var (
	// ErrInvalidTask covers structural problems: fewer than two turnpoints,
	// duplicate SSS/ESS roles, negative radii, out-of-range coordinates.
	ErrInvalidTask = errors.New("invalid task")

	// ErrUnsupportedEarthModel is returned for any earth model other than
	// WGS84 (the FAI sphere is explicitly refused).
	ErrUnsupportedEarthModel = errors.New("unsupported earth model")

	// ErrGeodesicNonConvergence is returned when an inverse geodesic solve
	// fails to converge (near-antipodal point pairs).
	ErrGeodesicNonConvergence = errors.New("geodesic solve did not converge")
)
