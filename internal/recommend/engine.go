package recommend

import (
	"sort"
	"time"

	"advisor.fieldroute.org/internal/geo"
	"advisor.fieldroute.org/internal/models"
)

// Engine produces ranked visit-cluster recommendations from a customer
// snapshot. It is stateless between invocations: every call is independent
// and idempotent given the same snapshot, parameters and reference time.
//
// No step ever fails on data conditions. Invalid coordinates and missing
// due dates are filtered at the eligibility boundary, too few customers
// trigger the area fallback, and an empty eligible set yields an empty
// ranked list rather than an error.
type Engine struct {
	Depot  models.GeoPoint
	Params models.ClusterParameters
}

// NewEngine validates the parameters and returns an Engine. Parameter
// violations (see ClusterParameters.Validate) are programmer errors and are
// rejected here, fail fast.
func NewEngine(depot models.GeoPoint, params models.ClusterParameters) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Engine{Depot: depot, Params: params}, nil
}

// Recommend runs the full pipeline: eligibility filter, DBSCAN clustering
// with a relaxed-radius retry, named-area fallback, scoring, oversize
// trimming and ranking. The result is ordered best-first with sequential
// IDs assigned in rank order.
func (e *Engine) Recommend(customers []models.CustomerLocation, now time.Time) []models.Cluster {
	eligible := e.filterEligible(customers, now)

	groups, fromFallback := e.clusterEligible(eligible)

	scorer := &Scorer{Depot: e.Depot, ServiceTimeMinutesPerStop: e.Params.ServiceTimeMinutesPerStop}

	clusters := make([]models.Cluster, 0, len(groups))
	for _, members := range groups {
		c := scorer.Score(members, now)
		c.IsAreaFallback = fromFallback
		// Discard only clusters that are both too slow and too large: a
		// merely large cluster is still trimmable, and a slow small one is
		// still a valid recommendation.
		if c.EstimatedTravelMinutes > e.Params.MaxTravelMinutes && len(c.Members) > e.Params.MaxCustomersPerCluster {
			continue
		}
		if len(c.Members) > e.Params.MaxCustomersPerCluster {
			c = e.trim(c, scorer, now)
		}
		clusters = append(clusters, c)
	}

	// Stable sort keeps discovery order for equal scores, so ties rank
	// deterministically across runs.
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].EfficiencyScore > clusters[j].EfficiencyScore
	})
	for i := range clusters {
		clusters[i].ID = i
	}
	return clusters
}

// Noise returns the eligible customers left unclustered by the same
// pipeline Recommend runs. Together with the ranked clusters this covers
// every eligible customer exactly once.
func (e *Engine) Noise(customers []models.CustomerLocation, now time.Time) []models.CustomerLocation {
	eligible := e.filterEligible(customers, now)
	groups, _ := e.clusterEligible(eligible)

	clustered := make(map[string]bool)
	for _, g := range groups {
		for _, m := range g {
			clustered[m.ID] = true
		}
	}
	var noise []models.CustomerLocation
	for _, c := range eligible {
		if !clustered[c.ID] {
			noise = append(noise, c)
		}
	}
	return noise
}

// filterEligible keeps customers with a valid coordinate and a due date
// within the look-ahead horizon. Everything else is silently excluded; bad
// data is a filter condition here, never an error.
func (e *Engine) filterEligible(customers []models.CustomerLocation, now time.Time) []models.CustomerLocation {
	horizon := now.AddDate(0, 0, e.Params.DaysAheadHorizon)

	var eligible []models.CustomerLocation
	for _, c := range customers {
		if !geo.IsValidLatLon(c.Location.Latitude, c.Location.Longitude) {
			continue
		}
		if c.NextDueDate == nil || c.NextDueDate.Time().After(horizon) {
			continue
		}
		eligible = append(eligible, c)
	}
	return eligible
}

// clusterEligible runs the tiered clustering strategy: primary DBSCAN,
// then a retry at double radius when the primary pass finds no structure,
// then grouping by named area. The fallback branch never invokes DBSCAN.
func (e *Engine) clusterEligible(eligible []models.CustomerLocation) (groups [][]models.CustomerLocation, fromFallback bool) {
	if len(eligible) >= e.Params.MinClusterSize {
		groups, _ = dbscan(eligible, e.Params.ClusterRadiusKm, e.Params.MinClusterSize)
	}
	if len(groups) == 0 && len(eligible) >= 3 {
		groups, _ = dbscan(eligible, e.Params.ClusterRadiusKm*2, e.Params.MinClusterSize)
	}
	if len(groups) == 0 {
		return areaGroups(eligible), true
	}
	return groups, false
}

// areaGroups groups customers by their named area attribute, keeping only
// areas with at least two members. Group order follows the first appearance
// of each area in the input.
func areaGroups(customers []models.CustomerLocation) [][]models.CustomerLocation {
	byArea := make(map[string][]models.CustomerLocation)
	var order []string
	for _, c := range customers {
		if c.AreaName == "" {
			continue
		}
		if _, seen := byArea[c.AreaName]; !seen {
			order = append(order, c.AreaName)
		}
		byArea[c.AreaName] = append(byArea[c.AreaName], c)
	}

	var groups [][]models.CustomerLocation
	for _, area := range order {
		if len(byArea[area]) >= 2 {
			groups = append(groups, byArea[area])
		}
	}
	return groups
}

// trim reduces an oversized cluster to the members nearest its pre-trim
// centroid and rescores the result. Dropped members are simply out of this
// cycle's output; they are not redistributed to other clusters.
func (e *Engine) trim(c models.Cluster, scorer *Scorer, now time.Time) models.Cluster {
	members := append([]models.CustomerLocation(nil), c.Members...)
	sort.SliceStable(members, func(i, j int) bool {
		return geo.DistanceKm(c.Centroid, members[i].Location) < geo.DistanceKm(c.Centroid, members[j].Location)
	})

	kept := scorer.Score(members[:e.Params.MaxCustomersPerCluster], now)
	kept.IsAreaFallback = c.IsAreaFallback
	return kept
}
