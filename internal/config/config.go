package config

import (
	"sync"
	"time"

	"advisor.fieldroute.org/internal/models"
)

// Config holds all the configuration settings for our application.
//
// The cluster parameters are the only part that changes at runtime: the UI
// collaborator can adjust them between recommendation runs, so access goes
// through GetParams/UpdateParams under a read-write lock. Persisting them
// across restarts is the caller's concern, not ours.
type Config struct {
	Port                    int
	Env                     string
	Depot                   models.GeoPoint
	SnapshotRefreshInterval time.Duration
	RecomputeInterval       time.Duration

	mu     sync.RWMutex
	params models.ClusterParameters
}

// NewConfig creates a Config with the given settings. The parameters are
// validated; invalid values are a construction error, not a silent default.
func NewConfig(port int, env string, depot models.GeoPoint, params models.ClusterParameters) (*Config, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Config{
		Port:                    port,
		Env:                     env,
		Depot:                   depot,
		SnapshotRefreshInterval: time.Minute,
		RecomputeInterval:       30 * time.Second,
		params:                  params,
	}, nil
}

// UpdateParams safely replaces the cluster parameters. Invalid values are
// rejected and the previous parameters stay in effect.
func (cfg *Config) UpdateParams(p models.ClusterParameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.params = p
	return nil
}

// GetParams safely returns the current cluster parameters.
func (cfg *Config) GetParams() models.ClusterParameters {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.params
}
