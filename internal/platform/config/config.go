package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	// ERP backend
	ERPBaseURL string
	ERPAPIKey  string
	// APIBaseURL is the base the storefront API client talks to. Defaults to the ERP public export root.
	APIBaseURL       string
	APIRetryCount    int
	APIRetryBaseWait time.Duration

	// Exchange rate
	FXProviderURL  string
	FXFallbackRate decimal.Decimal
	FXCacheTTL     time.Duration

	// Tenant routing
	PlatformDomainSuffixes []string
	DefaultHost            string
	// DefaultStoreSlug is where "/" on a platform host redirects. Empty serves a status page.
	DefaultStoreSlug string

	// Edge protection
	RateLimit          string
	RedisURL           string
	CORSAllowedOrigins []string

	// Sessions and client storage
	SessionJWTSecret string
	CookieSecure     bool

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ERP_API_URL", "http://localhost:3000")
	viper.SetDefault("ERP_API_KEY", "")
	viper.SetDefault("STOREFRONT_API_BASE", "")
	viper.SetDefault("API_RETRY_COUNT", 3)
	viper.SetDefault("API_RETRY_BASE_DELAY", "1s")
	viper.SetDefault("FX_PROVIDER_URL", "https://api.frankfurter.app")
	viper.SetDefault("FX_FALLBACK_RATE", "153.50")
	viper.SetDefault("FX_CACHE_TTL", "1h")
	viper.SetDefault("PLATFORM_DOMAIN_SUFFIXES", ".vercel.app")
	viper.SetDefault("DEFAULT_HOST", "localhost:3000")
	viper.SetDefault("DEFAULT_STORE_SLUG", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("SESSION_JWT_SECRET", "")
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(viper.GetString("LOG_LEVEL")))

	cfg.ERPBaseURL = strings.TrimRight(viper.GetString("ERP_API_URL"), "/")
	if cfg.ERPBaseURL == "" {
		cfg.ERPBaseURL = "http://localhost:3000"
		log.Printf("Warning: ERP_API_URL not set. Defaulting to %s.\n", cfg.ERPBaseURL)
	}
	cfg.ERPAPIKey = viper.GetString("ERP_API_KEY")
	if cfg.ERPAPIKey == "" {
		log.Println("Warning: ERP_API_KEY not set. Upstream calls without a customer session will be anonymous.")
	}

	cfg.APIBaseURL = strings.TrimRight(viper.GetString("STOREFRONT_API_BASE"), "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = cfg.ERPBaseURL + "/api/public/export"
	}

	cfg.APIRetryCount = viper.GetInt("API_RETRY_COUNT")
	if cfg.APIRetryCount < 0 {
		log.Printf("Warning: Invalid value for API_RETRY_COUNT (%d). Defaulting to 3.\n", cfg.APIRetryCount)
		cfg.APIRetryCount = 3
	}
	cfg.APIRetryBaseWait = parseDuration("API_RETRY_BASE_DELAY", time.Second)

	cfg.FXProviderURL = strings.TrimRight(viper.GetString("FX_PROVIDER_URL"), "/")
	fallbackStr := viper.GetString("FX_FALLBACK_RATE")
	fallback, err := decimal.NewFromString(fallbackStr)
	if err != nil || !fallback.IsPositive() {
		fallback = decimal.RequireFromString("153.50")
		log.Printf("Warning: Invalid value for FX_FALLBACK_RATE ('%s'). Defaulting to %s.\n", fallbackStr, fallback.String())
	}
	cfg.FXFallbackRate = fallback
	cfg.FXCacheTTL = parseDuration("FX_CACHE_TTL", time.Hour)

	cfg.PlatformDomainSuffixes = splitList(viper.GetString("PLATFORM_DOMAIN_SUFFIXES"))
	cfg.DefaultHost = viper.GetString("DEFAULT_HOST")
	if cfg.DefaultHost == "" {
		cfg.DefaultHost = "localhost:3000"
	}
	cfg.DefaultStoreSlug = strings.Trim(viper.GetString("DEFAULT_STORE_SLUG"), "/ ")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.SessionJWTSecret = viper.GetString("SESSION_JWT_SECRET")
	if cfg.SessionJWTSecret == "" {
		log.Println("Warning: SESSION_JWT_SECRET not set. Session tokens are forwarded to the ERP without local verification.")
	}
	cfg.CookieSecure = viper.GetBool("COOKIE_SECURE")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
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
