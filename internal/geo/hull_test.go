package geo

import (
	"testing"

	"advisor.fieldroute.org/internal/models"
)

func TestConvexHullSquare(t *testing.T) {
	points := []models.GeoPoint{
		{Latitude: 10, Longitude: 10},
		{Latitude: 10, Longitude: 11},
		{Latitude: 11, Longitude: 11},
		{Latitude: 11, Longitude: 10},
		{Latitude: 10.5, Longitude: 10.5}, // interior
	}

	hull := ConvexHull(points)
	if len(hull) != 4 {
		t.Fatalf("expected 4 hull vertices, got %d: %v", len(hull), hull)
	}

	for _, p := range points {
		if !PointInHull(hull, p) {
			t.Errorf("point %+v not inside hull %v", p, hull)
		}
	}
}

func TestConvexHullContainsAllMembers(t *testing.T) {
	points := []models.GeoPoint{
		{Latitude: 69.000, Longitude: 18.000},
		{Latitude: 69.010, Longitude: 18.020},
		{Latitude: 69.020, Longitude: 18.005},
		{Latitude: 69.005, Longitude: 18.030},
		{Latitude: 69.015, Longitude: 18.010},
		{Latitude: 69.008, Longitude: 18.012},
	}

	hull := ConvexHull(points)
	if len(hull) < 3 {
		t.Fatalf("expected a polygon, got %d vertices", len(hull))
	}
	for _, p := range points {
		if !PointInHull(hull, p) {
			t.Errorf("point %+v outside hull", p)
		}
	}
}

func TestConvexHullStartsAtSouthernmost(t *testing.T) {
	points := []models.GeoPoint{
		{Latitude: 11, Longitude: 10},
		{Latitude: 10, Longitude: 12},
		{Latitude: 12, Longitude: 11},
	}

	hull := ConvexHull(points)
	if hull[0].Latitude != 10 || hull[0].Longitude != 12 {
		t.Errorf("hull anchor = %+v, want the lowest-latitude point", hull[0])
	}
}

func TestConvexHullDegenerate(t *testing.T) {
	two := []models.GeoPoint{
		{Latitude: 10, Longitude: 10},
		{Latitude: 11, Longitude: 11},
	}

	hull := ConvexHull(two)
	if len(hull) != 2 {
		t.Fatalf("degenerate hull = %v, want the input unchanged", hull)
	}
	if hull[0] != two[0] || hull[1] != two[1] {
		t.Errorf("degenerate hull reordered the input: %v", hull)
	}

	if got := ConvexHull(nil); len(got) != 0 {
		t.Errorf("hull of no points = %v, want empty", got)
	}
}

func TestConvexHullDoesNotMutateInput(t *testing.T) {
	points := []models.GeoPoint{
		{Latitude: 11, Longitude: 10},
		{Latitude: 10, Longitude: 12},
		{Latitude: 12, Longitude: 11},
		{Latitude: 11, Longitude: 11},
	}
	before := append([]models.GeoPoint(nil), points...)

	ConvexHull(points)

	for i := range points {
		if points[i] != before[i] {
			t.Fatalf("input mutated at %d: %+v != %+v", i, points[i], before[i])
		}
	}
}
