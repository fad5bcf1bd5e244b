package recommend

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"advisor.fieldroute.org/internal/models"
)

// testCustomer builds a CustomerLocation due dueInDays days after now.
// Negative dueInDays makes the customer overdue.
func testCustomer(id string, lat, lng float64, area string, dueInDays int, now time.Time) models.CustomerLocation {
	due := models.DueDate(now.AddDate(0, 0, dueInDays))
	return models.CustomerLocation{
		ID:          id,
		Location:    models.GeoPoint{Latitude: lat, Longitude: lng},
		DisplayName: "Customer " + id,
		AreaName:    area,
		NextDueDate: &due,
	}
}

// testCustomers numbers customers c0..cN-1 at the given points, all in the
// same area and due in 10 days.
func testCustomers(points []models.GeoPoint, area string, now time.Time) []models.CustomerLocation {
	customers := make([]models.CustomerLocation, len(points))
	for i, p := range points {
		customers[i] = testCustomer(fmt.Sprintf("c%d", i), p.Latitude, p.Longitude, area, 10, now)
	}
	return customers
}

// testLogger returns a logger that discards output.
func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// getGaugeValue retrieves the current float64 value of a Prometheus Gauge.
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()

	pb := &dto.Metric{}
	if err := gauge.Write(pb); err != nil {
		t.Fatalf("Failed to read gauge value: %v", err)
	}
	return pb.Gauge.GetValue()
}

// getGaugeVecValue retrieves the current float64 value of a Prometheus
// GaugeVec metric for the given set of labels.
func getGaugeVecValue(t *testing.T, metric *prometheus.GaugeVec, labels map[string]string) float64 {
	t.Helper()

	c := make(chan prometheus.Metric, 1)
	metric.With(labels).Collect(c)
	m := <-c

	pb := &dto.Metric{}
	if err := m.Write(pb); err != nil {
		t.Fatalf("Failed to read gauge vec value: %v", err)
	}
	return pb.Gauge.GetValue()
}
