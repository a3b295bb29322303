package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// StartStockCheckScheduler runs the automated stock check on the given
// cron schedule (e.g. "@hourly"). The returned cron instance is already
// started; callers stop it on shutdown.
func StartStockCheckScheduler(schedule string) (*cron.Cron, error) {
	c := cron.New()

	checker := NewStockChecker()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		created, err := checker.Run(ctx)
		if err != nil {
			slog.Error("Scheduled stock check failed", "error", err)
			return
		}
		slog.Info("Scheduled stock check completed", "ordersCreated", created)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	slog.Info("Stock check scheduler started", "schedule", schedule)
	return c, nil
}
