package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EligibleCustomerCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recommendation_eligible_customers",
		Help: "Number of customers that passed the eligibility filter in the last recommendation run",
	})

	NoiseCustomerCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recommendation_noise_customers",
		Help: "Number of eligible customers left unclustered (noise) in the last recommendation run",
	})

	RecommendedClusterCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "recommendation_cluster_count",
		Help: "Number of ranked clusters produced by the last recommendation run, by clustering strategy",
	}, []string{"strategy"})

	TopEfficiencyScore = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recommendation_top_efficiency_score",
		Help: "Efficiency score of the best-ranked cluster in the last recommendation run (0-100)",
	})

	RunDurationSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recommendation_run_duration_seconds",
		Help: "Wall-clock duration of the last recommendation run",
	})
)
