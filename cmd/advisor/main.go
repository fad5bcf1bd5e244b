package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"advisor.fieldroute.org/internal/app"
	"advisor.fieldroute.org/internal/config"
	"advisor.fieldroute.org/internal/models"
	"advisor.fieldroute.org/internal/report"
	"advisor.fieldroute.org/internal/snapshot"
)

const version = "1.0.0"

const snapshotMaxRetries = 3

func main() {
	// Load .env if present; real environment variables win over file values.
	_ = godotenv.Load()

	var (
		port     = flag.Int("port", 4000, "API server port")
		env      = flag.String("env", "development", "Environment (development|staging|production)")
		depotLat = flag.Float64("depot-lat", 0, "Depot latitude")
		depotLng = flag.Float64("depot-lng", 0, "Depot longitude")

		customersFile = flag.String("customers-file", "", "Path to a local JSON customer snapshot")
		customersURL  = flag.String("customers-url", "", "URL to a remote JSON customer snapshot")
	)

	params := models.DefaultClusterParameters()
	flag.IntVar(&params.DaysAheadHorizon, "days-ahead", params.DaysAheadHorizon, "Visit due-date horizon in days")
	flag.IntVar(&params.MaxCustomersPerCluster, "max-customers", params.MaxCustomersPerCluster, "Maximum customers per recommended cluster")
	flag.IntVar(&params.MaxTravelMinutes, "max-travel-minutes", params.MaxTravelMinutes, "Maximum estimated travel+service minutes per cluster")
	flag.IntVar(&params.MinClusterSize, "min-cluster-size", params.MinClusterSize, "Minimum cluster size (DBSCAN minPts)")
	flag.Float64Var(&params.ClusterRadiusKm, "cluster-radius-km", params.ClusterRadiusKm, "DBSCAN neighbor radius in kilometers")
	flag.IntVar(&params.ServiceTimeMinutesPerStop, "service-minutes", params.ServiceTimeMinutesPerStop, "Service time per stop in minutes")

	flag.Parse()

	snapshotAuthUser := os.Getenv("SNAPSHOT_AUTH_USER")
	snapshotAuthPass := os.Getenv("SNAPSHOT_AUTH_PASS")

	if err := validateSnapshotFlags(customersFile, customersURL); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	report.SetupSentry()
	defer report.FlushSentry()
	report.ConfigureScope(*env, version)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	depot := models.GeoPoint{Latitude: *depotLat, Longitude: *depotLng}
	cfg, err := config.NewConfig(*port, *env, depot, params)
	if err != nil {
		fmt.Printf("Error: invalid cluster parameters: %v\n", err)
		os.Exit(1)
	}

	application := app.New(cfg, logger, version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := app.NewPooledClient()

	var customers []models.CustomerLocation
	if *customersFile != "" {
		customers, err = snapshot.LoadCustomersFromFile(*customersFile)
	} else {
		customers, err = snapshot.LoadCustomersFromURL(ctx, client, *customersURL, snapshotAuthUser, snapshotAuthPass, snapshotMaxRetries)
	}
	if err != nil {
		fmt.Printf("Error loading customer snapshot: %v\n", err)
		os.Exit(1)
	}

	application.Store.Set(customers)
	logger.Info("Loaded customer snapshot", "customers", len(customers))

	// Remote snapshots are refreshed in the background so recommendations
	// track the customer store without a restart.
	if *customersURL != "" {
		go snapshot.RefreshLoop(ctx, client, application.Store, *customersURL, snapshotAuthUser, snapshotAuthPass, logger, cfg.SnapshotRefreshInterval, snapshotMaxRetries)
	}

	application.StartRecommendationLoop(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	report.ReportError(err, sentry.LevelFatal)
	report.FlushSentry()
	logger.Error(err.Error())
	os.Exit(1)
}

// validateSnapshotFlags ensures that exactly one snapshot source is
// specified: either --customers-file or --customers-url.
func validateSnapshotFlags(customersFile, customersURL *string) error {
	if *customersFile == "" && *customersURL == "" {
		return fmt.Errorf("no customer snapshot provided, either --customers-file or --customers-url must be specified")
	}
	if (*customersFile != "" && *customersURL != "") || len(flag.Args()) > 0 {
		return fmt.Errorf("only one of --customers-file or --customers-url can be specified")
	}
	return nil
}
