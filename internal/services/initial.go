package services

import (
	"xctask-route-service/internal/domain"
	"xctask-route-service/internal/geo"
)

// initialContacts seeds one contact per cylinder before refinement.
//
// Interior contacts are projected from the center toward the geodesic
// midpoint of the neighbouring centers, which puts the seed on the side of
// the cylinder the route actually passes. The goal is seeded at its center
// and pulled onto the boundary by the first refinement sweep.
func initialContacts(cyls []domain.Cylinder, opt Options) []domain.LatLon {
	n := len(cyls)
	contacts := make([]domain.LatLon, n)

	contacts[0] = startContact(cyls[0], cyls[1].Center, opt)

	for i := 1; i <= n-2; i++ {
		c := cyls[i]
		if c.RadiusM == 0 {
			contacts[i] = c.Center
			continue
		}

		target := geo.Midpoint(cyls[i-1].Center, cyls[i+1].Center)
		if sameCenter(cyls[i-1].Center, cyls[i+1].Center) || sameCenter(target, c.Center) {
			target = cyls[i+1].Center
		}
		if sameCenter(target, c.Center) {
			// Concentric with the next turnpoint: any azimuth works as a
			// seed, refinement will move it.
			contacts[i] = geo.PointAt(c.Center, 0, c.RadiusM)
			continue
		}

		contacts[i] = geo.PointAt(c.Center, geo.Bearing(c.Center, target), c.RadiusM)
	}

	contacts[n-1] = cyls[n-1].Center
	return contacts
}

// startContact places the route start: the takeoff center when the takeoff
// cylinder is small enough to snap, otherwise the boundary point facing the
// next turnpoint.
func startContact(c domain.Cylinder, next domain.LatLon, opt Options) domain.LatLon {
	if c.RadiusM == 0 {
		return c.Center
	}
	if c.Role == domain.RoleTakeoff && c.RadiusM <= opt.TakeoffSnapM {
		return c.Center
	}
	if sameCenter(c.Center, next) {
		return geo.PointAt(c.Center, 0, c.RadiusM)
	}
	return geo.PointAt(c.Center, geo.Bearing(c.Center, next), c.RadiusM)
}
