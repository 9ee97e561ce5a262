package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret          = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer          = "brokerage-trade-ledger"
	defaultHSTRate            = "0.15"
	defaultLedgerSyncSchedule = "@every 5m"
	defaultRateLimit          = "100-M"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Commission arithmetic
	HSTRate            decimal.Decimal
	FeePlanCatalogPath string

	// Remote accounting API; empty URL keeps the ledger local only
	AccountingAPIURL     string
	AccountingAPIToken   string
	AccountingAPITimeout time.Duration
	LedgerSyncSchedule   string

	RateLimit          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
	PosthogEndpoint    string
	Timezone           *time.Location
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("HST_RATE", defaultHSTRate)
	viper.SetDefault("FEE_PLAN_CATALOG_PATH", "")
	viper.SetDefault("ACCOUNTING_API_URL", "")
	viper.SetDefault("ACCOUNTING_API_TOKEN", "")
	viper.SetDefault("ACCOUNTING_API_TIMEOUT", "10s")
	viper.SetDefault("LEDGER_SYNC_SCHEDULE", defaultLedgerSyncSchedule)
	viper.SetDefault("RATE_LIMIT", defaultRateLimit)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")
	viper.SetDefault("TIMEZONE", "America/Toronto")

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

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// e.g. "60m", "1h"
	cfg.JWTExpiryDuration = parseDuration("JWT_EXPIRY_DURATION", time.Hour)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	hstStr := viper.GetString("HST_RATE")
	hst, err := decimal.NewFromString(strings.TrimSpace(hstStr))
	if err != nil || hst.IsNegative() || hst.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		hst = decimal.RequireFromString(defaultHSTRate)
		log.Printf("Warning: Invalid value for HST_RATE ('%s'). Defaulting to %s.\n", hstStr, hst.String())
	}
	cfg.HSTRate = hst
	cfg.FeePlanCatalogPath = viper.GetString("FEE_PLAN_CATALOG_PATH")

	cfg.AccountingAPIURL = strings.TrimRight(viper.GetString("ACCOUNTING_API_URL"), "/")
	cfg.AccountingAPIToken = viper.GetString("ACCOUNTING_API_TOKEN")
	cfg.AccountingAPITimeout = parseDuration("ACCOUNTING_API_TIMEOUT", 10*time.Second)
	if cfg.AccountingAPIURL == "" {
		log.Println("Warning: ACCOUNTING_API_URL not set. Ledger entries will only be stored locally.")
	}
	cfg.LedgerSyncSchedule = viper.GetString("LEDGER_SYNC_SCHEDULE")
	if cfg.LedgerSyncSchedule == "" {
		cfg.LedgerSyncSchedule = defaultLedgerSyncSchedule
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	tz := viper.GetString("TIMEZONE")
	cfg.Timezone, err = time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Unknown TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		cfg.Timezone = time.UTC
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
