package config

import (
	"log"
	"strings"
	"time"

	"github.com/SscSPs/ledger_report_engine/internal/utils/decimalops"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	LogFormat string // json or text
	LogLevel  string

	DecimalDivisionPrecision int32
	DecimalDisplayPlaces     int32
	CashFlowRulesFile        string // empty uses the built-in lines
	PatternCacheTTL          time.Duration

	RateLimit          string // limiter format, e.g. 100-M
	CORSAllowedOrigins []string
	MigrationsPath     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DECIMAL_DIVISION_PRECISION", 34)
	viper.SetDefault("DECIMAL_DISPLAY_PLACES", 2)
	viper.SetDefault("CASHFLOW_RULES_FILE", "")
	viper.SetDefault("PATTERN_CACHE_TTL", "10m")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	patternTTLStr := viper.GetString("PATTERN_CACHE_TTL")
	patternTTL, err := time.ParseDuration(patternTTLStr)
	if err != nil || patternTTL <= 0 {
		patternTTL = 10 * time.Minute
		log.Printf("Warning: Invalid value for PATTERN_CACHE_TTL ('%s'). Defaulting to %s.\n", patternTTLStr, patternTTL.String())
	}

	cfg.DecimalDivisionPrecision = viper.GetInt32("DECIMAL_DIVISION_PRECISION")
	cfg.DecimalDisplayPlaces = viper.GetInt32("DECIMAL_DISPLAY_PLACES")
	defaults := decimalops.DefaultConfig()
	if cfg.DecimalDivisionPrecision <= 0 {
		log.Printf("Warning: DECIMAL_DIVISION_PRECISION must be positive. Defaulting to %d.\n", defaults.DivisionPrecision)
		cfg.DecimalDivisionPrecision = defaults.DivisionPrecision
	}
	if cfg.DecimalDisplayPlaces < 0 {
		log.Printf("Warning: DECIMAL_DISPLAY_PLACES must not be negative. Defaulting to %d.\n", defaults.DisplayPlaces)
		cfg.DecimalDisplayPlaces = defaults.DisplayPlaces
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogFormat = strings.ToLower(viper.GetString("LOG_FORMAT"))
	cfg.LogLevel = strings.ToLower(viper.GetString("LOG_LEVEL"))
	cfg.CashFlowRulesFile = viper.GetString("CASHFLOW_RULES_FILE")
	cfg.PatternCacheTTL = patternTTL
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	return cfg, nil
}

// DecimalConfig returns the arithmetic settings threaded into the calculator.
func (c *Config) DecimalConfig() decimalops.Config {
	return decimalops.Config{DivisionPrecision: c.DecimalDivisionPrecision, DisplayPlaces: c.DecimalDisplayPlaces}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
