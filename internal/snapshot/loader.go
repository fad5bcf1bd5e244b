package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"advisor.fieldroute.org/internal/models"
	"advisor.fieldroute.org/internal/report"
	"advisor.fieldroute.org/internal/utils"
)

const (
	baseBackoff   = 1 * time.Second
	maxBackoff    = 2 * time.Minute
	backoffFactor = 2.0
	jitterFactor  = 0.5
)

// LoadCustomersFromFile reads a JSON customer snapshot from disk and
// unmarshals it into an ordered list of customer records.
//
// On error, it reports issues to Sentry and returns a descriptive error.
// This path is used when the application is started with --customers-file.
func LoadCustomersFromFile(filePath string) ([]models.CustomerLocation, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return nil, fmt.Errorf("failed to read customers file: %v", err)
	}

	var customers []models.CustomerLocation
	if err := json.Unmarshal(data, &customers); err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return nil, fmt.Errorf("failed to unmarshal JSON: %v", err)
	}

	return customers, nil
}

// LoadCustomersFromURL fetches a JSON customer snapshot from a remote
// HTTP(S) endpoint, using the provided client and optional basic
// authentication, retrying transient failures with exponential backoff.
func LoadCustomersFromURL(ctx context.Context, client *http.Client, url, authUser, authPass string, maxRetries int) ([]models.CustomerLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("customers_url", url),
			Level: sentry.LevelError,
		})
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	if authUser != "" && authPass != "" {
		req.SetBasicAuth(authUser, authPass)
	}

	resp, err := doWithBackoff(ctx, client, req, maxRetries)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("customers_url", url),
			Level: sentry.LevelError,
		})
		return nil, fmt.Errorf("failed to fetch customer snapshot: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("customer snapshot endpoint returned status: %d", resp.StatusCode)
		report.ReportErrorWithSentryOptions(statusErr, report.SentryReportOptions{
			Tags:  utils.MakeMap("customers_url", url),
			Level: sentry.LevelError,
		})
		return nil, statusErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("customers_url", url),
			Level: sentry.LevelError,
		})
		return nil, fmt.Errorf("failed to read customer snapshot: %v", err)
	}

	var customers []models.CustomerLocation
	if err := json.Unmarshal(data, &customers); err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("customers_url", url),
			Level: sentry.LevelError,
		})
		return nil, fmt.Errorf("failed to unmarshal JSON: %v", err)
	}

	return customers, nil
}

// RefreshLoop periodically re-fetches the remote snapshot and replaces the
// store contents. Fetch errors are logged and reported but never stop the
// loop; the previous snapshot stays in place until a fetch succeeds. The
// routine stops when the context is canceled.
func RefreshLoop(ctx context.Context, client *http.Client, store *CustomerStore, url, authUser, authPass string, logger *slog.Logger, interval time.Duration, maxRetries int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping customer snapshot refresh routine")
			return
		case <-ticker.C:
			customers, err := LoadCustomersFromURL(ctx, client, url, authUser, authPass, maxRetries)
			if err != nil {
				logger.Error("Failed to refresh customer snapshot", "error", err)
				continue
			}
			store.Set(customers)
			logger.Info("Successfully refreshed customer snapshot", "customers", len(customers))
		}
	}
}

// doWithBackoff performs the request, retrying on transport errors and 5xx
// responses with exponential backoff and jitter, up to maxRetries attempts.
func doWithBackoff(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	backoff := baseBackoff
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoff + time.Duration(rand.Float64()*float64(backoff)*jitterFactor)
			if delay > maxBackoff {
				delay = maxBackoff
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			backoff = time.Duration(float64(backoff) * backoffFactor)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			resp.Body.Close()
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("request failed after %d attempts: %v", maxRetries, lastErr)
}
