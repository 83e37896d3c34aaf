// Package geo wraps WGS84 geodesic solves and cylinder geometry for the
// route optimizer. All distances are meters, all azimuths degrees clockwise
// from north. The underlying solver is a port of Karney's GeographicLib
// algorithms, accurate to sub-millimeter for any terrestrial distance.
package geo

import (
	"fmt"
	"math"

	"github.com/tidwall/geodesic"

	"xctask-route-service/internal/domain"
)

// Inverse solves the inverse geodesic problem between a and b. It returns
// the geodesic length in meters, the initial azimuth at a, and the forward
// azimuth at b.
func Inverse(a, b domain.LatLon) (sM, azA, azB float64) {
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &sM, &azA, &azB)
	return sM, azA, azB
}

// InverseChecked is Inverse with an explicit non-convergence check for the
// near-antipodal edge case.
func InverseChecked(a, b domain.LatLon) (sM, azA, azB float64, err error) {
	sM, azA, azB = Inverse(a, b)
	if math.IsNaN(sM) || math.IsNaN(azA) || math.IsNaN(azB) {
		return 0, 0, 0, fmt.Errorf("%w: (%g, %g) -> (%g, %g)",
			domain.ErrGeodesicNonConvergence, a.Lat, a.Lon, b.Lat, b.Lon)
	}
	return sM, azA, azB, nil
}

// Distance returns the geodesic length between a and b in meters.
func Distance(a, b domain.LatLon) float64 {
	var s float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &s, nil, nil)
	return s
}

// Bearing returns the initial azimuth from a toward b.
func Bearing(a, b domain.LatLon) float64 {
	var az float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, nil, &az, nil)
	return az
}

// Direct solves the direct geodesic problem: the point reached by
// travelling sM meters from a along the given initial azimuth, plus the
// forward azimuth at that point.
func Direct(a domain.LatLon, azDeg, sM float64) (domain.LatLon, float64) {
	var lat, lon, az2 float64
	geodesic.WGS84.Direct(a.Lat, a.Lon, azDeg, sM, &lat, &lon, &az2)
	return domain.LatLon{Lat: lat, Lon: lon}, az2
}

// PointAt returns the point sM meters from a along azimuth azDeg.
func PointAt(a domain.LatLon, azDeg, sM float64) domain.LatLon {
	p, _ := Direct(a, azDeg, sM)
	return p
}

// Midpoint returns the geodesic midpoint of a and b.
func Midpoint(a, b domain.LatLon) domain.LatLon {
	s, az, _ := Inverse(a, b)
	return PointAt(a, az, s/2)
}

// PolylineLength sums the geodesic legs of pts.
func PolylineLength(pts []domain.LatLon) float64 {
	total := 0.0
	for i := 0; i+1 < len(pts); i++ {
		total += Distance(pts[i], pts[i+1])
	}
	return total
}
