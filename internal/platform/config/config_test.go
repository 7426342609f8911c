package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, int32(34), cfg.DecimalDivisionPrecision)
	assert.Equal(t, int32(2), cfg.DecimalDisplayPlaces)
	assert.Equal(t, 10*time.Minute, cfg.PatternCacheTTL)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("DECIMAL_DISPLAY_PLACES", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PATTERN_CACHE_TTL", "not-a-duration")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int32(4), cfg.DecimalConfig().DisplayPlaces)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.PatternCacheTTL)
	assert.Equal(t, "text", cfg.LogFormat)
}
