package recommend

import (
	"math"
	"time"

	"advisor.fieldroute.org/internal/geo"
	"advisor.fieldroute.org/internal/models"
)

// Travel model constants. The efficiency formula's coefficients are fixed
// contract values: the ranking they produce is the engine's observable
// behavior, so changing any of them is a behavioral break, not a tuning
// tweak.
const (
	approachSpeedKmh   = 50.0 // depot to cluster area and back
	intraAreaSpeedKmh  = 30.0 // movement between stops inside the area
	intraAreaDetour    = 1.5  // road detour factor on straight-line radius
	scoreSizeWeight    = 10.0
	scoreDepotPenalty  = 0.05
	scoreSpreadPenalty = 0.3
)

// Scorer computes travel/service estimates and the 0–100 efficiency score
// for candidate clusters, relative to a fixed depot.
type Scorer struct {
	Depot                     models.GeoPoint
	ServiceTimeMinutesPerStop int
}

// Score builds a fully scored Cluster from the given members. The members
// slice must be non-empty; now anchors the overdue/upcoming split. The
// returned cluster has no ID yet; IDs are assigned at ranking time.
func (s *Scorer) Score(members []models.CustomerLocation, now time.Time) models.Cluster {
	points := make([]models.GeoPoint, len(members))
	for i, m := range members {
		points[i] = m.Location
	}

	centroid := geo.Centroid(points)
	depotKm := geo.DistanceKm(s.Depot, centroid)

	var radiusSum float64
	for _, p := range points {
		radiusSum += geo.DistanceKm(centroid, p)
	}
	avgRadiusKm := radiusSum / float64(len(points))

	count := float64(len(members))
	density := count / geo.BoundingBoxAreaKm2(points)

	travelMinutes := (depotKm*2/approachSpeedKmh)*60 +
		(avgRadiusKm*count*intraAreaDetour/intraAreaSpeedKmh)*60 +
		count*float64(s.ServiceTimeMinutesPerStop)
	estimatedKm := depotKm*2 + avgRadiusKm*count*intraAreaDetour

	raw := density * count * scoreSizeWeight /
		(1 + depotKm*scoreDepotPenalty + avgRadiusKm*scoreSpreadPenalty) * 10
	score := int(math.Round(raw))
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	overdue, upcoming := dueCounts(members, now)

	return models.Cluster{
		Members:                 members,
		Centroid:                centroid,
		PrimaryAreaName:         primaryAreaName(members),
		Categories:              categorySet(members),
		OverdueCount:            overdue,
		UpcomingCount:           upcoming,
		EfficiencyScore:         score,
		EstimatedTravelMinutes:  int(math.Round(travelMinutes)),
		EstimatedKm:             int(math.Round(estimatedKm)),
		Density:                 density,
		AvgRadiusFromCentroidKm: avgRadiusKm,
		DistanceFromDepotKm:     depotKm,
	}
}

// dueCounts splits members into overdue (due before now) and upcoming.
// Members without a due date never reach the scorer under normal operation;
// they are skipped rather than miscounted if they do.
func dueCounts(members []models.CustomerLocation, now time.Time) (overdue, upcoming int) {
	for _, m := range members {
		if m.NextDueDate == nil {
			continue
		}
		if m.NextDueDate.Time().Before(now) {
			overdue++
		} else {
			upcoming++
		}
	}
	return overdue, upcoming
}

// primaryAreaName returns the most common non-empty area name among the
// members, ties resolved by first appearance.
func primaryAreaName(members []models.CustomerLocation) string {
	counts := make(map[string]int)
	best := ""
	for _, m := range members {
		if m.AreaName == "" {
			continue
		}
		counts[m.AreaName]++
		if best == "" || counts[m.AreaName] > counts[best] {
			best = m.AreaName
		}
	}
	return best
}

// categorySet returns the distinct non-empty categories of the members in
// first-appearance order.
func categorySet(members []models.CustomerLocation) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, m := range members {
		if m.Category == "" || seen[m.Category] {
			continue
		}
		seen[m.Category] = true
		categories = append(categories, m.Category)
	}
	return categories
}
