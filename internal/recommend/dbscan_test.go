package recommend

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"advisor.fieldroute.org/internal/models"
)

// scenarioPoints is three customers within a few hundred meters of each
// other and a fourth one far outside the 5 km radius.
var scenarioPoints = []models.GeoPoint{
	{Latitude: 69.000, Longitude: 18.000},
	{Latitude: 69.001, Longitude: 18.001},
	{Latitude: 69.002, Longitude: 18.000},
	{Latitude: 69.050, Longitude: 18.500},
}

func TestDBSCANTightPocketWithOutlier(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	customers := testCustomers(scenarioPoints, "Tromsø", now)

	clusters, noise := dbscan(customers, 5.0, 3)

	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	if len(clusters[0]) != 3 {
		t.Errorf("expected cluster of 3, got %d members", len(clusters[0]))
	}
	if len(noise) != 1 || noise[0].ID != "c3" {
		t.Errorf("expected c3 as the only noise point, got %v", noise)
	}
}

func TestDBSCANPartitionCompleteness(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	points := []models.GeoPoint{
		{Latitude: 60.000, Longitude: 10.000},
		{Latitude: 60.001, Longitude: 10.001},
		{Latitude: 60.002, Longitude: 10.000},
		{Latitude: 60.500, Longitude: 10.500},
		{Latitude: 60.501, Longitude: 10.501},
		{Latitude: 60.502, Longitude: 10.500},
		{Latitude: 61.900, Longitude: 11.900},
	}
	customers := testCustomers(points, "", now)

	clusters, noise := dbscan(customers, 5.0, 3)

	seen := make(map[string]int)
	for _, cl := range clusters {
		for _, m := range cl {
			seen[m.ID]++
		}
	}
	for _, m := range noise {
		seen[m.ID]++
	}

	if len(seen) != len(customers) {
		t.Errorf("partition covers %d customers, want %d", len(seen), len(customers))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("customer %s appears %d times in the partition", id, count)
		}
	}
	if len(clusters) != 2 {
		t.Errorf("expected 2 clusters, got %d", len(clusters))
	}
}

func TestDBSCANMinimumClusterSize(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// Two nearby points cannot reach minPts=3; everything reverts to noise.
	points := []models.GeoPoint{
		{Latitude: 60.000, Longitude: 10.000},
		{Latitude: 60.001, Longitude: 10.001},
	}
	customers := testCustomers(points, "", now)

	clusters, noise := dbscan(customers, 5.0, 3)
	if len(clusters) != 0 {
		t.Errorf("expected no clusters, got %d", len(clusters))
	}
	if len(noise) != 2 {
		t.Errorf("expected 2 noise points, got %d", len(noise))
	}

	for _, cl := range clusters {
		if len(cl) < 3 {
			t.Errorf("cluster below minPts: %d members", len(cl))
		}
	}
}

func TestDBSCANBorderAbsorption(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// The last point is within epsilon of only the cluster edge. It is not
	// a core point, but the expansion absorbs it as a border member.
	points := []models.GeoPoint{
		{Latitude: 60.000, Longitude: 10.000},
		{Latitude: 60.010, Longitude: 10.000},
		{Latitude: 60.020, Longitude: 10.000},
		{Latitude: 60.060, Longitude: 10.000},
	}
	customers := testCustomers(points, "", now)

	clusters, noise := dbscan(customers, 5.0, 3)
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	if len(clusters[0]) != 4 {
		t.Errorf("expected border point absorbed into cluster of 4, got %d", len(clusters[0]))
	}
	if len(noise) != 0 {
		t.Errorf("expected no noise, got %v", noise)
	}
}

func TestDBSCANDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	customers := testCustomers(scenarioPoints, "Tromsø", now)

	clusters1, noise1 := dbscan(customers, 5.0, 3)
	clusters2, noise2 := dbscan(customers, 5.0, 3)

	if diff := cmp.Diff(clusters1, clusters2); diff != "" {
		t.Errorf("cluster output differs between identical runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(noise1, noise2); diff != "" {
		t.Errorf("noise output differs between identical runs (-first +second):\n%s", diff)
	}
}

func TestDBSCANEmptyInput(t *testing.T) {
	clusters, noise := dbscan(nil, 5.0, 3)
	if clusters != nil || noise != nil {
		t.Errorf("expected nil results for empty input, got %v / %v", clusters, noise)
	}
}
