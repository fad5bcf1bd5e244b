package app

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"advisor.fieldroute.org/internal/config"
	"advisor.fieldroute.org/internal/models"
)

var testDepot = models.GeoPoint{Latitude: 69.6492, Longitude: 18.9553}

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	cfg, err := config.NewConfig(4000, "testing", testDepot, models.DefaultClusterParameters())
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	return New(cfg, logger, "test")
}

// testSnapshot returns a small snapshot with one tight downtown pocket and
// one distant outlier, all due within the horizon.
func testSnapshot(now time.Time) []models.CustomerLocation {
	due := models.DueDate(now.AddDate(0, 0, 7))
	points := []models.GeoPoint{
		{Latitude: 69.6492, Longitude: 18.9553},
		{Latitude: 69.6510, Longitude: 18.9580},
		{Latitude: 69.6475, Longitude: 18.9601},
		{Latitude: 70.2000, Longitude: 19.8000},
	}
	customers := make([]models.CustomerLocation, len(points))
	for i, p := range points {
		customers[i] = models.CustomerLocation{
			ID:          "cust-" + string(rune('a'+i)),
			Location:    p,
			AreaName:    "Sentrum",
			NextDueDate: &due,
		}
	}
	return customers
}
