package geo

import "advisor.fieldroute.org/internal/models"

// cross returns the 2D cross product of vectors OA and OB with longitude as
// the x axis and latitude as the y axis. Positive means O→A→B turns
// counter-clockwise, negative clockwise, zero collinear.
func cross(o, a, b models.GeoPoint) float64 {
	return (a.Longitude-o.Longitude)*(b.Latitude-o.Latitude) -
		(a.Latitude-o.Latitude)*(b.Longitude-o.Longitude)
}

// ConvexHull returns the convex boundary polygon of the given points using
// the gift-wrapping (Jarvis march) algorithm, in counter-clockwise order
// starting from the southernmost point.
//
// For fewer than 3 points the input is returned unchanged: the degenerate
// hull is the points themselves. The function is pure; the input slice is
// never modified.
func ConvexHull(points []models.GeoPoint) []models.GeoPoint {
	n := len(points)
	if n < 3 {
		return append([]models.GeoPoint(nil), points...)
	}

	// Anchor on the lowest latitude, ties broken by lowest longitude.
	anchor := 0
	for i := 1; i < n; i++ {
		if points[i].Latitude < points[anchor].Latitude ||
			(points[i].Latitude == points[anchor].Latitude &&
				points[i].Longitude < points[anchor].Longitude) {
			anchor = i
		}
	}

	hull := make([]models.GeoPoint, 0, n)
	current := anchor
	// The walk returns to the anchor after at most n steps; the loop bound
	// guards against collinear degeneracies never closing the polygon.
	for iter := 0; iter < n; iter++ {
		hull = append(hull, points[current])

		next := (current + 1) % n
		for i := 0; i < n; i++ {
			if i == current {
				continue
			}
			// Take i as the new candidate when it lies to the right of the
			// current→next edge, so the chosen edge ends up with every
			// remaining point on its left side.
			if cross(points[current], points[next], points[i]) < 0 {
				next = i
			}
		}

		current = next
		if current == anchor {
			break
		}
	}
	return hull
}

// PointInHull reports whether p lies on or inside the counter-clockwise
// hull polygon. Hulls with fewer than 3 vertices contain nothing.
func PointInHull(hull []models.GeoPoint, p models.GeoPoint) bool {
	n := len(hull)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a := hull[i]
		b := hull[(i+1)%n]
		if cross(a, b, p) < 0 {
			return false
		}
	}
	return true
}
