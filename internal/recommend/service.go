package recommend

import (
	"fmt"
	"log/slog"
	"time"

	"advisor.fieldroute.org/internal/config"
	"advisor.fieldroute.org/internal/models"
	"advisor.fieldroute.org/internal/snapshot"
)

// Service runs the recommendation engine over the current customer
// snapshot with the currently configured parameters, and publishes run
// statistics as Prometheus gauges.
type Service struct {
	Store  *snapshot.CustomerStore
	Config *config.Config
	Logger *slog.Logger
}

// NewService wires a Service.
func NewService(store *snapshot.CustomerStore, cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{Store: store, Config: cfg, Logger: logger}
}

// Run ranks the current snapshot and records run metrics. It never fails on
// data conditions; an empty snapshot simply produces an empty ranking.
func (s *Service) Run(now time.Time) []models.Cluster {
	customers := s.Store.Customers()

	engine, err := NewEngine(s.Config.Depot, s.Config.GetParams())
	if err != nil {
		// Config.UpdateParams validates before accepting, so this only
		// triggers if a Config was built without NewConfig.
		s.Logger.Error("Invalid cluster parameters, skipping recommendation run", "error", err)
		return nil
	}

	start := time.Now()
	clusters := engine.Recommend(customers, now)
	noise := engine.Noise(customers, now)
	elapsed := time.Since(start)

	eligible := len(engine.filterEligible(customers, now))
	recordRunMetrics(clusters, noise, eligible, elapsed)

	s.Logger.Info("Recommendation run complete",
		"customers", len(customers),
		"eligible", eligible,
		"clusters", len(clusters),
		"noise", len(noise),
		"duration", elapsed)
	return clusters
}

// RunWith ranks an ad hoc snapshot with caller-supplied parameters and
// depot, without touching the store or the run metrics. Used by the POST
// recommendation endpoint.
func (s *Service) RunWith(customers []models.CustomerLocation, depot models.GeoPoint, params models.ClusterParameters, now time.Time) ([]models.Cluster, error) {
	engine, err := NewEngine(depot, params)
	if err != nil {
		return nil, fmt.Errorf("invalid cluster parameters: %w", err)
	}
	return engine.Recommend(customers, now), nil
}

func recordRunMetrics(clusters []models.Cluster, noise []models.CustomerLocation, eligible int, elapsed time.Duration) {
	dbscanCount, fallbackCount := 0, 0
	top := 0
	for _, c := range clusters {
		if c.IsAreaFallback {
			fallbackCount++
		} else {
			dbscanCount++
		}
		if c.EfficiencyScore > top {
			top = c.EfficiencyScore
		}
	}

	EligibleCustomerCount.Set(float64(eligible))
	NoiseCustomerCount.Set(float64(len(noise)))
	RecommendedClusterCount.WithLabelValues("dbscan").Set(float64(dbscanCount))
	RecommendedClusterCount.WithLabelValues("area_fallback").Set(float64(fallbackCount))
	TopEfficiencyScore.Set(float64(top))
	RunDurationSeconds.Set(elapsed.Seconds())
}
