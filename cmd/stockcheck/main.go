package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"inventory-pos/config"
	"inventory-pos/services"
)

// One-shot stock check for external cron. Scans for low-stock items,
// raises alerts, places automated orders, and notifies suppliers.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	logHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(logHandler))

	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := services.InitMongoDB(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer db.Disconnect(ctx)

	services.InitServices(db, cfg.DatabaseName)

	runCtx, cancelRun := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancelRun()

	created, err := services.NewStockChecker().Run(runCtx)
	if err != nil {
		slog.Error("Stock check failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Automated stock check completed. Created %d new orders.\n", created)
}
