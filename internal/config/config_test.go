package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("WEATHER_CACHE_TTL", "")
	t.Setenv("USSD_DEFAULT_LAT", "")

	cfg := New()

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "shamba", cfg.PostgresCfg.DBname)
	assert.Equal(t, 14, cfg.WeatherCfg.ForecastDays)
	assert.Equal(t, "Africa/Nairobi", cfg.WeatherCfg.Timezone)
	assert.Equal(t, time.Hour, cfg.WeatherCfg.CacheTTL)
	assert.Equal(t, -0.3031, cfg.USSDCfg.DefaultLat)
	assert.Equal(t, "notification_events", cfg.RabbitMQCfg.Queue)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WEATHER_CACHE_TTL", "10m")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("USSD_DEFAULT_LON", "34.75")

	cfg := New()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.WeatherCfg.CacheTTL)
	assert.Equal(t, 8, cfg.WorkerCfg.NumWorkers)
	assert.Equal(t, 34.75, cfg.USSDCfg.DefaultLon)
}

func TestNew_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "many")
	t.Setenv("WEATHER_TIMEOUT", "soon")
	t.Setenv("USSD_DEFAULT_LAT", "north")

	cfg := New()

	assert.Equal(t, 4, cfg.WorkerCfg.NumWorkers)
	assert.Equal(t, 15*time.Second, cfg.WeatherCfg.Timeout)
	assert.Equal(t, -0.3031, cfg.USSDCfg.DefaultLat)
}
