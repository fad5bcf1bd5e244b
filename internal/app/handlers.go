package app

import (
	"encoding/json"
	"net/http"
	"time"

	"advisor.fieldroute.org/internal/geo"
	"advisor.fieldroute.org/internal/models"
)

// HealthStatus defines the structure of the JSON response returned by the
// application's health check endpoint (/v1/healthcheck).
//
// Fields:
//   - Status: a high-level indicator of service availability (e.g., "available").
//   - Environment: the current environment (e.g., "development", "production").
//   - Version: the application version string, useful for deployment tracking.
//   - Customers: the number of customers in the current snapshot.
//   - Ready: whether a customer snapshot has been loaded; the service can
//     only produce meaningful recommendations once that has happened.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Customers   int    `json:"customers"`
	Ready       bool   `json:"ready"`
}

// healthcheckHandler responds with a JSON representation of the
// application's health status. If no snapshot has been loaded yet it
// responds with HTTP 500, otherwise HTTP 200.
func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	_, ready := app.Store.LoadedAt()

	status := HealthStatus{
		Status:      "available",
		Environment: app.Config.Env,
		Version:     app.Version,
		Customers:   app.Store.Count(),
		Ready:       ready,
	}

	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(status)
}

// recommendationsResponse is the ranked output envelope shared by the GET
// and POST recommendation endpoints.
type recommendationsResponse struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Clusters    []models.Cluster `json:"clusters"`
}

// listRecommendationsHandler ranks the current customer snapshot using the
// configured parameters and depot. With ?boundary=true each cluster also
// carries its convex-hull boundary ring for map display.
func (app *Application) listRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	clusters := app.RecommendService.Run(now)

	if r.URL.Query().Get("boundary") == "true" {
		attachBoundaries(clusters)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recommendationsResponse{GeneratedAt: now, Clusters: clusters})
}

// recommendationRequest is the POST body for ad hoc recommendation runs.
// Parameters and depot are optional; the configured values apply when absent.
type recommendationRequest struct {
	Customers  []models.CustomerLocation `json:"customers"`
	Parameters *models.ClusterParameters `json:"parameters,omitempty"`
	Depot      *models.GeoPoint          `json:"depot,omitempty"`
}

// createRecommendationsHandler ranks a snapshot supplied in the request
// body. Malformed JSON or contract-violating parameters yield HTTP 400; an
// empty customer list is not an error and yields an empty ranking.
func (app *Application) createRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := app.Config.GetParams()
	if req.Parameters != nil {
		params = *req.Parameters
	}
	depot := app.Config.Depot
	if req.Depot != nil {
		depot = *req.Depot
	}

	now := time.Now()
	clusters, err := app.RecommendService.RunWith(req.Customers, depot, params, now)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("boundary") == "true" {
		attachBoundaries(clusters)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recommendationsResponse{GeneratedAt: now, Clusters: clusters})
}

// getParametersHandler returns the cluster parameters currently in effect.
func (app *Application) getParametersHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(app.Config.GetParams())
}

// updateParametersHandler replaces the cluster parameters. Contract
// violations (non-positive radius, minimum size below one) are rejected
// with HTTP 400 and the previous parameters stay in effect.
func (app *Application) updateParametersHandler(w http.ResponseWriter, r *http.Request) {
	var params models.ClusterParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := app.Config.UpdateParams(params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app.Logger.Info("Cluster parameters updated",
		"radius_km", params.ClusterRadiusKm,
		"min_cluster_size", params.MinClusterSize,
		"days_ahead", params.DaysAheadHorizon)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(params)
}

// attachBoundaries fills in the convex-hull boundary ring of each cluster,
// for callers that render cluster outlines on a map.
func attachBoundaries(clusters []models.Cluster) {
	for i := range clusters {
		points := make([]models.GeoPoint, len(clusters[i].Members))
		for j, m := range clusters[i].Members {
			points[j] = m.Location
		}
		clusters[i].Boundary = geo.ConvexHull(points)
	}
}
