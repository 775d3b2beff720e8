package config

import (
	"log"
	"strings"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Rate source kinds accepted by RATE_SOURCE.
const (
	RateSourceDatabase = "database"
	RateSourceNBP      = "nbp"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       string
	MigrationsPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// DefaultCurrency is the fallback when neither a request nor an order names a currency.
	DefaultCurrency string

	// Exchange rates
	RateSource      string
	NBPBaseURL      string
	RateCacheTTL    time.Duration
	RateCacheSize   int
	RateHTTPTimeout time.Duration

	// Event publishing. Disabled when KafkaBrokers is empty.
	KafkaBrokers []string
	KafkaTopic   string

	PosthogAPIKey string

	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter format, e.g. "300-M"
	LoginRateLimit     string

	AutoApproveCompanies bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "b2b-inventory-app")
	viper.SetDefault("DEFAULT_CURRENCY", domain.DefaultCurrencyCode)
	viper.SetDefault("RATE_SOURCE", RateSourceDatabase)
	viper.SetDefault("NBP_BASE_URL", "https://api.nbp.pl/api")
	viper.SetDefault("RATE_CACHE_TTL", "1h")
	viper.SetDefault("RATE_CACHE_SIZE", 256)
	viper.SetDefault("RATE_HTTP_TIMEOUT", "5s")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "inventory-events")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("AUTO_APPROVE_COMPANIES", true)

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

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	defaultCurrency, err := domain.NormalizeCurrencyCode(viper.GetString("DEFAULT_CURRENCY"))
	if err != nil {
		log.Printf("Warning: Invalid value for DEFAULT_CURRENCY (%v). Defaulting to %s.\n", err, domain.DefaultCurrencyCode)
		defaultCurrency = domain.DefaultCurrencyCode
	}

	rateSource := strings.ToLower(viper.GetString("RATE_SOURCE"))
	if rateSource != RateSourceDatabase && rateSource != RateSourceNBP {
		log.Printf("Warning: Unknown RATE_SOURCE ('%s'). Defaulting to %s.\n", rateSource, RateSourceDatabase)
		rateSource = RateSourceDatabase
	}

	cacheSize := viper.GetInt("RATE_CACHE_SIZE")
	if cacheSize <= 0 {
		cacheSize = 256
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.DefaultCurrency = defaultCurrency
	cfg.RateSource = rateSource
	cfg.NBPBaseURL = strings.TrimRight(viper.GetString("NBP_BASE_URL"), "/")
	cfg.RateCacheTTL = durationOrDefault("RATE_CACHE_TTL", time.Hour)
	cfg.RateCacheSize = cacheSize
	cfg.RateHTTPTimeout = durationOrDefault("RATE_HTTP_TIMEOUT", 5*time.Second)
	cfg.KafkaBrokers = splitList(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.AutoApproveCompanies = viper.GetBool("AUTO_APPROVE_COMPANIES")

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
