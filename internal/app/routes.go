package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"

	"advisor.fieldroute.org/internal/middleware"
)

// Routes sets up the HTTP routing configuration for the application and
// returns the final http.Handler.
//
// Registered routes:
//   - GET  /v1/healthcheck      — snapshot/readiness status as JSON
//   - GET  /v1/recommendations  — rank the current snapshot with the
//     configured parameters; ?boundary=true attaches convex-hull rings
//   - POST /v1/recommendations  — rank an ad hoc snapshot from the request
//     body, with optional parameter and depot overrides
//   - GET  /v1/parameters       — current cluster parameters
//   - PUT  /v1/parameters       — replace the cluster parameters
//   - GET  /metrics             — Prometheus exposition, served through the
//     cached handler to keep scrape overhead flat
//
// The whole router is wrapped with the Sentry middleware for error capture
// and with the security-header middleware.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/recommendations", app.listRecommendationsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/recommendations", app.createRecommendationsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/parameters", app.getParametersHandler)
	router.HandlerFunc(http.MethodPut, "/v1/parameters", app.updateParametersHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	handler := middleware.SentryMiddleware(router)
	return middleware.SecurityHeaders(handler)
}
