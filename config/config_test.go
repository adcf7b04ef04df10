package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", time.Minute},
		{"go duration", "90s", 90 * time.Second},
		{"seconds", "30", 30 * time.Second},
		{"garbage", "soon", time.Minute},
		{"negative", "-5s", time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_TTL", tt.value)
			assert.Equal(t, tt.want, getDuration("TEST_TTL", time.Minute))
		})
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("TEST_WORKERS", "4")
	assert.Equal(t, 4, getInt("TEST_WORKERS", 2))

	t.Setenv("TEST_WORKERS", "0")
	assert.Equal(t, 2, getInt("TEST_WORKERS", 2))
}

func TestGetDBConfigByEnv(t *testing.T) {
	t.Setenv("QC_DB_USER", "booker")
	t.Setenv("QC_DB_PASSWORD", "secret")
	t.Setenv("QC_DB_HOST", "db.internal")
	t.Setenv("QC_DB_PORT", "5432")
	t.Setenv("QC_DB_NAME", "hotel")
	t.Setenv("QC_DB_SSLMODE", "disable")

	dsn := getDBConfigByEnv("QC")
	assert.Equal(t, "host=db.internal user=booker password=secret dbname=hotel port=5432 sslmode=disable TimeZone=UTC", dsn)
}

func TestLoadWithoutEnvUsesMemoryStores(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("CACHE_TTL_SEARCH", "45s")

	cfg := Load()
	assert.Empty(t, cfg.DatabaseDSN)
	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.CacheTTLSearch)
	assert.Equal(t, "0 0 * * *", cfg.PendingExpiryCron)
}
