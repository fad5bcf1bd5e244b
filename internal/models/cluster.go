package models

// Cluster is one recommended visit grouping. Clusters are created fresh on
// every recommendation run and never persisted; their lifetime is a single
// recommendation cycle.
//
// ID is assigned at ranking time (0..n-1, best first). IsAreaFallback marks
// clusters produced by the named-area grouping branch instead of DBSCAN.
type Cluster struct {
	ID                      int                `json:"id"`
	Members                 []CustomerLocation `json:"members"`
	Centroid                GeoPoint           `json:"centroid"`
	PrimaryAreaName         string             `json:"primaryAreaName,omitempty"`
	Categories              []string           `json:"categories,omitempty"`
	OverdueCount            int                `json:"overdueCount"`
	UpcomingCount           int                `json:"upcomingCount"`
	EfficiencyScore         int                `json:"efficiencyScore"`
	EstimatedTravelMinutes  int                `json:"estimatedTravelMinutes"`
	EstimatedKm             int                `json:"estimatedKm"`
	Density                 float64            `json:"density"`
	AvgRadiusFromCentroidKm float64            `json:"avgRadiusFromCentroidKm"`
	DistanceFromDepotKm     float64            `json:"distanceFromDepotKm"`
	IsAreaFallback          bool               `json:"isAreaFallback"`
	Boundary                []GeoPoint         `json:"boundary,omitempty"`
}

// MemberIDs returns the customer IDs of the cluster members, in member
// order. This is the payload a caller forwards to an external
// route-optimization service.
func (c *Cluster) MemberIDs() []string {
	ids := make([]string, len(c.Members))
	for i, m := range c.Members {
		ids[i] = m.ID
	}
	return ids
}
