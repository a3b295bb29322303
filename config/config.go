package config

import (
	"log/slog"
	"os"
)

type Config struct {
	// MongoDB configuration
	MongoURI     string
	DatabaseName string

	// Server configuration
	Port string

	// Stock check scheduling (cron spec, see robfig/cron)
	StockCheckSchedule string

	// Login page paths per portal, used by the page guards
	AdminLoginPath    string
	StaffLoginPath    string
	SupplierLoginPath string
}

func LoadConfig() *Config {
	cfg := &Config{
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:       getEnv("MONGO_DB_NAME", "inventory_pos"),
		Port:               getEnv("PORT", "8080"),
		StockCheckSchedule: getEnv("STOCK_CHECK_SCHEDULE", "@hourly"),
		AdminLoginPath:     getEnv("ADMIN_LOGIN_PATH", "/admin/login"),
		StaffLoginPath:     getEnv("STAFF_LOGIN_PATH", "/staff/login"),
		SupplierLoginPath:  getEnv("SUPPLIER_LOGIN_PATH", "/supplier/login"),
	}

	// Validate required configuration
	if cfg.MongoURI == "" {
		slog.Error("MONGO_URI not set")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
