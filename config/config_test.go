package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"MONGO_URI", "MONGO_DB_NAME", "PORT", "STOCK_CHECK_SCHEDULE",
		"ADMIN_LOGIN_PATH", "STAFF_LOGIN_PATH", "SUPPLIER_LOGIN_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "inventory_pos", cfg.DatabaseName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "@hourly", cfg.StockCheckSchedule)
	assert.Equal(t, "/admin/login", cfg.AdminLoginPath)
	assert.Equal(t, "/staff/login", cfg.StaffLoginPath)
	assert.Equal(t, "/supplier/login", cfg.SupplierLoginPath)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB_NAME", "pos_test")
	t.Setenv("STOCK_CHECK_SCHEDULE", "*/15 * * * *")
	t.Setenv("STAFF_LOGIN_PATH", "/pos/login")

	cfg := LoadConfig()

	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "pos_test", cfg.DatabaseName)
	assert.Equal(t, "*/15 * * * *", cfg.StockCheckSchedule)
	assert.Equal(t, "/pos/login", cfg.StaffLoginPath)
}
