package model

import "math"

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// earthRadiusKm is the mean earth radius used for great-circle distances
const earthRadiusKm = 6371.0088

// Validate checks that the coordinate is a real point on the globe
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) ||
		math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return ErrInvalidCoordinate
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return ErrInvalidCoordinate
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// DistanceKm returns the great-circle distance between two points in
// kilometers, using the haversine formula. The result is non-negative,
// symmetric, and zero for equal points.
func DistanceKm(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// DistanceMeters returns the great-circle distance between two points in meters
func DistanceMeters(a, b Coordinate) float64 {
	return DistanceKm(a, b) * 1000
}

// DistanceTo returns the great-circle distance from c to other in kilometers
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return DistanceKm(c, other)
}
