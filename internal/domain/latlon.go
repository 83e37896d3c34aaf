package domain

// Immutable geographic coordinates in decimal degrees (WGS84).
type LatLon struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (p LatLon) CoordsToList() []float64 { return []float64{p.Lon, p.Lat} }

// Valid reports whether the coordinates lie in the supported ranges:
// latitude in [-90, 90], longitude in (-180, 180].
func (p LatLon) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon > -180 && p.Lon <= 180
}
