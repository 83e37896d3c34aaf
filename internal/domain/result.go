package domain

// The outcome of optimizing a task: the contact polyline plus both distance
// figures. Immutable planning data, no side effects.
//
// Contacts holds one point per task cylinder, in task order. Each contact
// lies on or inside its cylinder. OptimizedDistanceM is the geodesic length
// of the contact polyline; CenterDistanceM sums the legs between cylinder
// centers under the competition start conventions (consecutive duplicate
// centers collapse to a single leg endpoint).
type OptimizedRoute struct {
	Contacts           []LatLon
	CenterDistanceM    float64
	OptimizedDistanceM float64
	Iterations         int
	Converged          bool
}
