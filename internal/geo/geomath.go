package geo

import (
	"math"

	"github.com/golang/geo/s2"

	"advisor.fieldroute.org/internal/models"
)

// earthRadiusKm represents the mean radius of the Earth in kilometers.
//
// This value (6,371 km) is defined as the Earth's volumetric mean radius,
// which is commonly used for general geospatial calculations and spherical
// approximations.
//
// Reference: NASA Planetary Fact Sheet – Earth
// https://nssdc.gsfc.nasa.gov/planetary/factsheet/earthfact.html
const earthRadiusKm = 6371.0

// kmPerDegreeLat is the approximate north-south extent of one degree of
// latitude. One degree of longitude spans kmPerDegreeLat*cos(lat) km.
const kmPerDegreeLat = 111.0

// DistanceKm returns the great-circle distance between two points in
// kilometers. If either point has a non-finite coordinate it returns +Inf,
// so comparisons against any finite threshold discard the pair without
// extra branching at the call site.
func DistanceKm(a, b models.GeoPoint) float64 {
	if !isFinitePoint(a) || !isFinitePoint(b) {
		return math.Inf(1)
	}
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * earthRadiusKm
}

// Centroid returns the arithmetic mean position of the given points.
// The result is undefined for an empty slice; callers must not pass one.
func Centroid(points []models.GeoPoint) models.GeoPoint {
	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Latitude
		sumLng += p.Longitude
	}
	n := float64(len(points))
	return models.GeoPoint{Latitude: sumLat / n, Longitude: sumLng / n}
}

// BoundingBoxAreaKm2 returns the approximate area of the lat/lng box
// spanned by the points, converting degrees to kilometers at the box's
// mean latitude. The result is floored at 0.1 km² so density computations
// never divide by zero.
func BoundingBoxAreaKm2(points []models.GeoPoint) float64 {
	if len(points) == 0 {
		return 0.1
	}

	minLat, maxLat := points[0].Latitude, points[0].Latitude
	minLng, maxLng := points[0].Longitude, points[0].Longitude
	for _, p := range points[1:] {
		minLat = math.Min(minLat, p.Latitude)
		maxLat = math.Max(maxLat, p.Latitude)
		minLng = math.Min(minLng, p.Longitude)
		maxLng = math.Max(maxLng, p.Longitude)
	}

	centerLat := (minLat + maxLat) / 2
	heightKm := (maxLat - minLat) * kmPerDegreeLat
	widthKm := (maxLng - minLng) * kmPerDegreeLat * math.Cos(centerLat*math.Pi/180)

	area := heightKm * widthKm
	if area < 0.1 {
		return 0.1
	}
	return area
}

// IsValidLatLon returns true if the given latitude and longitude values
// fall within the valid geographic coordinate bounds.
//
// Latitude must be between -90 and 90 degrees, and longitude must be
// between -180 and 180 degrees. Non-finite values are invalid.
//
// Note: This function treats the coordinate (0,0) as invalid, even though it
// is a valid location in the Gulf of Guinea. This assumption is made to help
// detect uninitialized or placeholder coordinates commonly represented as (0,0).
func IsValidLatLon(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	if lat == 0 && lon == 0 {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	return true
}

func isFinitePoint(p models.GeoPoint) bool {
	return !math.IsNaN(p.Latitude) && !math.IsInf(p.Latitude, 0) &&
		!math.IsNaN(p.Longitude) && !math.IsInf(p.Longitude, 0)
}
