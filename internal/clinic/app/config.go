package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/clinic/pkg/cryptox"
	"github.com/aussiebroadwan/clinic/pkg/httpx"
	"github.com/aussiebroadwan/clinic/pkg/jwtx"
)

// Evidence cache backends.
const (
	EvidenceBackendSQLite = "sqlite"
	EvidenceBackendRedis  = "redis"
)

type Config struct {
	Issuer     string        // Optional: issuer claim for session tokens (default: clinic)
	JWTSecret  string        // Required outside dev/test: HS256 secret, at least 32 bytes
	TokenTTL   time.Duration // Optional: session lifetime (default: 24h)
	BcryptCost int           // Optional: password hashing cost (default: 10)
	MFAIssuer  string        // Optional: issuer shown in authenticator apps (default: Clinic)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./clinic.db)
	Env                  string        // Environment (dev, test, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	OTelHTTP             bool          // Wrap the router with otelhttp (default: false)

	RateLimits httpx.RateLimitProfiles // RATELIMIT_{STRICT,MODERATE,LENIENT,PUBLIC}_*

	EvidenceBackend    string        // sqlite or redis (default: sqlite)
	EvidenceTTL        time.Duration // Lifetime of a cached entry (default: 24h)
	EvidenceMaxEntries int           // Bound on the SQLite cache, 0 disables trimming (default: 1000)
	RedisAddr          string        // Required for the redis backend
	RedisPassword      string
	RedisDB            int
	RedisKeyPrefix     string // default: clinic:evidence

	// Provider endpoints. Empty URLs fall back to static placeholder text.
	SummaryURL      string
	SummaryAPIKey   string
	EvidenceURL     string
	EvidenceAPIKey  string
	ProviderTimeout time.Duration // default: 10s
	ProviderRetries int           // default: 2
}

func LoadConfig() Config {
	return Config{
		Issuer:     getEnvOrDefault("CLINIC_ISSUER", "clinic"),
		JWTSecret:  loadSecret(),
		TokenTTL:   getEnvDurationOrDefault("CLINIC_TOKEN_TTL", jwtx.DefaultSessionTTL),
		BcryptCost: getEnvIntOrDefault("CLINIC_BCRYPT_COST", cryptox.DefaultCost),
		MFAIssuer:  getEnvOrDefault("CLINIC_MFA_ISSUER", "Clinic"),

		DatabaseFile:         getEnvOrDefault("CLINIC_DATABASE_FILE", "clinic.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		OTelHTTP:             getEnvBoolOrDefault("OTEL_HTTP_ENABLED", false),

		RateLimits: httpx.RateLimitProfilesFromEnv(),

		EvidenceBackend:    strings.ToLower(getEnvOrDefault("EVIDENCE_CACHE_BACKEND", EvidenceBackendSQLite)),
		EvidenceTTL:        getEnvDurationOrDefault("EVIDENCE_CACHE_TTL", 24*time.Hour),
		EvidenceMaxEntries: getEnvIntOrDefault("EVIDENCE_CACHE_MAX_ENTRIES", 1000),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvIntOrDefault("REDIS_DB", 0),
		RedisKeyPrefix:     getEnvOrDefault("REDIS_KEY_PREFIX", "clinic:evidence"),

		SummaryURL:      os.Getenv("EVIDENCE_SUMMARY_URL"),
		SummaryAPIKey:   os.Getenv("EVIDENCE_SUMMARY_API_KEY"),
		EvidenceURL:     os.Getenv("EVIDENCE_PROVIDER_URL"),
		EvidenceAPIKey:  os.Getenv("EVIDENCE_PROVIDER_API_KEY"),
		ProviderTimeout: getEnvDurationOrDefault("EVIDENCE_PROVIDER_TIMEOUT", 10*time.Second),
		ProviderRetries: getEnvIntOrDefault("EVIDENCE_PROVIDER_RETRIES", 2),
	}
}

// DevLike reports whether an ephemeral JWT secret is acceptable.
func (c Config) DevLike() bool {
	return c.Env == "dev" || c.Env == "test"
}

// loadSecret reads CLINIC_JWT_SECRET, or the file named by
// CLINIC_JWT_SECRET_FILE when the variable itself is unset.
func loadSecret() string {
	if v := os.Getenv("CLINIC_JWT_SECRET"); v != "" {
		return v
	}
	path := os.Getenv("CLINIC_JWT_SECRET_FILE")
	if path == "" {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
