package services

// Tuning parameters for the route optimizer.
//
// Zero values select the defaults, so callers can pass Options{} or
// override single fields. The defaults balance accuracy against runtime for
// typical competition tasks (2-20 turnpoints).
type Options struct {
	// MaxIter bounds the number of full odd/even refinement sweeps.
	MaxIter int
	// TolM stops refinement once a full sweep changes the total length by
	// less than this many meters.
	TolM float64
	// CandidatesM is the number of uniformly spaced boundary candidates per
	// cylinder in the global search. 0 selects 36, or 72 for short tasks.
	CandidatesM int
	// BeamB is the number of partial routes kept per stage in the
	// beam-search variant.
	BeamB int
	// TakeoffSnapM: a takeoff cylinder with radius at or below this value
	// contributes its center as the route start.
	TakeoffSnapM float64
}

const (
	defaultMaxIter      = 100
	defaultTolM         = 0.001
	defaultCandidates   = 36
	denseCandidates     = 72
	denseTaskLen        = 10
	defaultBeamWidth    = 8
	defaultTakeoffSnapM = 1000

	// Cylinders smaller than this contribute a single candidate in the
	// global search; refinement recovers the exact contact.
	minCandidateRadiusM = 50
)

// withDefaults fills zero fields. numTurnpoints drives the candidate count:
// short tasks afford a denser azimuth grid.
func (o Options) withDefaults(numTurnpoints int) Options {
	if o.MaxIter == 0 {
		o.MaxIter = defaultMaxIter
	}
	if o.TolM == 0 {
		o.TolM = defaultTolM
	}
	if o.CandidatesM == 0 {
		o.CandidatesM = defaultCandidates
		if numTurnpoints <= denseTaskLen {
			o.CandidatesM = denseCandidates
		}
	}
	if o.BeamB == 0 {
		o.BeamB = defaultBeamWidth
	}
	if o.TakeoffSnapM == 0 {
		o.TakeoffSnapM = defaultTakeoffSnapM
	}
	return o
}
