package models

import "fmt"

// ClusterParameters holds the caller-supplied tuning values for one
// recommendation run. There is no process-wide tuning state; every call
// receives an explicit value, and persistence across sessions is the
// caller's concern.
type ClusterParameters struct {
	DaysAheadHorizon          int     `json:"daysAheadHorizon"`
	MaxCustomersPerCluster    int     `json:"maxCustomersPerCluster"`
	MaxTravelMinutes          int     `json:"maxTravelMinutes"`
	MinClusterSize            int     `json:"minClusterSize"`
	ClusterRadiusKm           float64 `json:"clusterRadiusKm"`
	ServiceTimeMinutesPerStop int     `json:"serviceTimeMinutesPerStop"`
}

// DefaultClusterParameters returns the standard tuning values used when the
// caller supplies none.
func DefaultClusterParameters() ClusterParameters {
	return ClusterParameters{
		DaysAheadHorizon:          60,
		MaxCustomersPerCluster:    15,
		MaxTravelMinutes:          480,
		MinClusterSize:            3,
		ClusterRadiusKm:           5.0,
		ServiceTimeMinutesPerStop: 30,
	}
}

// Validate rejects parameter values that are contract violations rather
// than data conditions: a non-positive clustering radius or a minimum
// cluster size below one. These fail fast at construction instead of
// producing silently wrong clusters.
func (p ClusterParameters) Validate() error {
	if p.ClusterRadiusKm <= 0 {
		return fmt.Errorf("clusterRadiusKm must be positive, got %v", p.ClusterRadiusKm)
	}
	if p.MinClusterSize < 1 {
		return fmt.Errorf("minClusterSize must be at least 1, got %d", p.MinClusterSize)
	}
	return nil
}
