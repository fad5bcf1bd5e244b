package recommend

import (
	"math"
	"testing"
	"time"

	"advisor.fieldroute.org/internal/geo"
	"advisor.fieldroute.org/internal/models"
)

func TestScoreColocatedCluster(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	scorer := &Scorer{
		Depot:                     models.GeoPoint{Latitude: 60, Longitude: 10},
		ServiceTimeMinutesPerStop: 30,
	}

	// Both members at the depot itself: zero travel, zero spread, minimum
	// bounding-box area. density = 2/0.1 = 20, raw score = 20*2*10/1*10,
	// clamped to 100; travel is pure service time.
	members := []models.CustomerLocation{
		testCustomer("a", 60, 10, "Sentrum", -5, now),
		testCustomer("b", 60, 10, "Sentrum", 5, now),
	}

	c := scorer.Score(members, now)

	if c.EfficiencyScore != 100 {
		t.Errorf("EfficiencyScore = %d, want 100", c.EfficiencyScore)
	}
	if c.EstimatedTravelMinutes != 60 {
		t.Errorf("EstimatedTravelMinutes = %d, want 60", c.EstimatedTravelMinutes)
	}
	if c.EstimatedKm != 0 {
		t.Errorf("EstimatedKm = %d, want 0", c.EstimatedKm)
	}
	if c.OverdueCount != 1 || c.UpcomingCount != 1 {
		t.Errorf("due split = %d overdue / %d upcoming, want 1/1", c.OverdueCount, c.UpcomingCount)
	}
	if c.PrimaryAreaName != "Sentrum" {
		t.Errorf("PrimaryAreaName = %q", c.PrimaryAreaName)
	}
}

func TestScoreFormulaContract(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	depot := models.GeoPoint{Latitude: 59.9, Longitude: 10.7}
	scorer := &Scorer{Depot: depot, ServiceTimeMinutesPerStop: 30}

	points := []models.GeoPoint{
		{Latitude: 60.000, Longitude: 10.000},
		{Latitude: 60.010, Longitude: 10.010},
		{Latitude: 60.020, Longitude: 10.000},
		{Latitude: 60.005, Longitude: 10.020},
	}
	members := testCustomers(points, "Vest", now)

	c := scorer.Score(members, now)

	// Recompute every estimate from the documented model; the coefficients
	// are contract constants and any drift here is a behavioral break.
	centroid := geo.Centroid(points)
	depotKm := geo.DistanceKm(depot, centroid)
	var radiusSum float64
	for _, p := range points {
		radiusSum += geo.DistanceKm(centroid, p)
	}
	avgRadius := radiusSum / 4
	density := 4 / geo.BoundingBoxAreaKm2(points)

	wantTravel := int(math.Round((depotKm*2/50)*60 + (avgRadius*4*1.5/30)*60 + 4*30))
	wantKm := int(math.Round(depotKm*2 + avgRadius*4*1.5))
	raw := density * 4 * 10 / (1 + depotKm*0.05 + avgRadius*0.3) * 10
	wantScore := int(math.Round(raw))
	if wantScore > 100 {
		wantScore = 100
	} else if wantScore < 0 {
		wantScore = 0
	}

	if c.EstimatedTravelMinutes != wantTravel {
		t.Errorf("EstimatedTravelMinutes = %d, want %d", c.EstimatedTravelMinutes, wantTravel)
	}
	if c.EstimatedKm != wantKm {
		t.Errorf("EstimatedKm = %d, want %d", c.EstimatedKm, wantKm)
	}
	if c.EfficiencyScore != wantScore {
		t.Errorf("EfficiencyScore = %d, want %d", c.EfficiencyScore, wantScore)
	}
	if c.DistanceFromDepotKm != depotKm {
		t.Errorf("DistanceFromDepotKm = %v, want %v", c.DistanceFromDepotKm, depotKm)
	}
}

func TestScoreBounds(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		depot models.GeoPoint
		points []models.GeoPoint
	}{
		{
			name:  "tight pair at the depot",
			depot: models.GeoPoint{Latitude: 60, Longitude: 10},
			points: []models.GeoPoint{
				{Latitude: 60, Longitude: 10},
				{Latitude: 60, Longitude: 10},
			},
		},
		{
			name:  "sprawling cluster far from depot",
			depot: models.GeoPoint{Latitude: 40, Longitude: -74},
			points: []models.GeoPoint{
				{Latitude: 60.0, Longitude: 10.0},
				{Latitude: 61.0, Longitude: 11.0},
				{Latitude: 62.0, Longitude: 12.0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := &Scorer{Depot: tt.depot, ServiceTimeMinutesPerStop: 30}
			c := scorer.Score(testCustomers(tt.points, "", now), now)
			if c.EfficiencyScore < 0 || c.EfficiencyScore > 100 {
				t.Errorf("EfficiencyScore = %d, outside [0,100]", c.EfficiencyScore)
			}
		})
	}
}

func TestCategorySetAndPrimaryArea(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	scorer := &Scorer{Depot: models.GeoPoint{Latitude: 60, Longitude: 10}, ServiceTimeMinutesPerStop: 30}

	a := testCustomer("a", 60, 10, "North", 1, now)
	a.Category = "greenhouse"
	b := testCustomer("b", 60, 10, "North", 2, now)
	b.Category = "field"
	c := testCustomer("c", 60, 10, "South", 3, now)
	c.Category = "greenhouse"

	cluster := scorer.Score([]models.CustomerLocation{a, b, c}, now)

	if cluster.PrimaryAreaName != "North" {
		t.Errorf("PrimaryAreaName = %q, want North", cluster.PrimaryAreaName)
	}
	want := []string{"greenhouse", "field"}
	if len(cluster.Categories) != 2 || cluster.Categories[0] != want[0] || cluster.Categories[1] != want[1] {
		t.Errorf("Categories = %v, want %v", cluster.Categories, want)
	}
}
