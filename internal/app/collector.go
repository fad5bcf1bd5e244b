package app

import (
	"context"
	"time"
)

// StartRecommendationLoop launches a background goroutine that re-runs the
// recommendation engine over the current snapshot at the configured
// interval, so the Prometheus run gauges stay fresh between on-demand API
// calls. The loop stops when the context is canceled.
func (app *Application) StartRecommendationLoop(ctx context.Context) {
	ticker := time.NewTicker(app.Config.RecomputeInterval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				app.Logger.Info("Stopping recommendation loop")
				return
			case <-ticker.C:
				app.RecommendService.Run(time.Now())
			}
		}
	}()
}
