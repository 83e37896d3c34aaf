package services

import (
	"math"

	"xctask-route-service/internal/domain"
	"xctask-route-service/internal/geo"
)

// pcpUpdate solves the point-circle-point subproblem on the ellipsoid: the
// point of cylinder c minimizing d(prev, p) + d(p, next).
//
// When the geodesic between the neighbours crosses the cylinder, the
// earliest crossing is optimal (the contact adds no length). Otherwise the
// optimum lies on the boundary near the bisector of the two azimuths from
// the center; both bisector candidates are evaluated because the formula is
// ill-conditioned when the azimuths are nearly antipodal.
func pcpUpdate(c domain.Cylinder, prev, next domain.LatLon) domain.LatLon {
	if c.RadiusM == 0 {
		return c.Center
	}
	// A neighbour inside the cylinder is itself a zero-cost contact.
	if geo.SignedDistance(c, prev) <= 0 {
		return prev
	}
	if geo.SignedDistance(c, next) <= 0 {
		return next
	}
	if sameCenter(prev, next) {
		return geo.ProjectOnBoundary(c, prev)
	}
	if p, _, ok := geo.BoundaryIntersect(prev, next, c); ok {
		return p
	}

	azPrev := geo.Bearing(c.Center, prev)
	azNext := geo.Bearing(c.Center, next)
	az := bisectAzimuth(azPrev, azNext)
	p1 := geo.PointAt(c.Center, az, c.RadiusM)
	p2 := geo.PointAt(c.Center, az+180, c.RadiusM)
	if throughLength(prev, p1, next) <= throughLength(prev, p2, next) {
		return p1
	}
	return p2
}

// bisectAzimuth returns the angular bisector of two azimuths in degrees.
// For antipodal azimuths the mean vector vanishes and either normal
// direction is a valid bisector; the caller compares both candidates.
func bisectAzimuth(a1, a2 float64) float64 {
	r1 := a1 * math.Pi / 180
	r2 := a2 * math.Pi / 180
	x := math.Cos(r1) + math.Cos(r2)
	y := math.Sin(r1) + math.Sin(r2)
	if math.Hypot(x, y) < 1e-9 {
		return a1 + 90
	}
	return math.Atan2(y, x) * 180 / math.Pi
}

func throughLength(a, p, b domain.LatLon) float64 {
	return geo.Distance(a, p) + geo.Distance(p, b)
}

// nearestInCylinder returns the point of c closest to q: q itself when it
// already lies inside, otherwise the boundary projection.
func nearestInCylinder(c domain.Cylinder, q domain.LatLon) domain.LatLon {
	if c.RadiusM == 0 {
		return c.Center
	}
	if geo.SignedDistance(c, q) <= 0 {
		return q
	}
	return geo.ProjectOnBoundary(c, q)
}

// refineContacts runs odd/even coordinate-descent sweeps over the contacts
// until the total length converges or the sweep limit is reached. Each
// single-contact update is a non-increase, so the length sequence is
// monotone and bounded and the loop terminates.
//
// contacts is updated in place. Returns the number of sweeps performed and
// whether the tolerance was reached.
func refineContacts(cyls []domain.Cylinder, contacts []domain.LatLon, opt Options) (int, bool) {
	n := len(cyls)
	if n < 2 {
		return 0, true
	}

	// Slack for geodesic round-off when comparing equal-length contacts.
	const updateNoiseM = 1e-7

	prevLen := geo.PolylineLength(contacts)
	for sweep := 1; sweep <= opt.MaxIter; sweep++ {
		// Odd indices against fixed evens, then evens against fixed odds.
		for _, parity := range [2]int{1, 0} {
			for i := 1; i <= n-2; i++ {
				if i%2 != parity {
					continue
				}
				// The bisector step is not an exact minimizer: keep the
				// current contact when the update would lengthen the route.
				p := pcpUpdate(cyls[i], contacts[i-1], contacts[i+1])
				if throughLength(contacts[i-1], p, contacts[i+1]) <=
					throughLength(contacts[i-1], contacts[i], contacts[i+1])+updateNoiseM {
					contacts[i] = p
				}
			}
		}

		if !startSnapped(cyls[0], opt) {
			contacts[0] = nearestInCylinder(cyls[0], contacts[1])
		}
		contacts[n-1] = nearestInCylinder(cyls[n-1], contacts[n-2])

		length := geo.PolylineLength(contacts)
		if math.Abs(prevLen-length) < opt.TolM {
			return sweep, true
		}
		prevLen = length
	}
	return opt.MaxIter, false
}

// startSnapped reports whether the route start is pinned to the takeoff
// center rather than optimized along the boundary.
func startSnapped(c domain.Cylinder, opt Options) bool {
	return c.RadiusM == 0 || (c.Role == domain.RoleTakeoff && c.RadiusM <= opt.TakeoffSnapM)
}
