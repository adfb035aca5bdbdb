package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string
	// MigrationsPath overrides the migrations compiled into the binary
	MigrationsPath string

	ProgressBackend string // "cookie" or "sql"
	ProgressTTL     time.Duration
	CleanupInterval time.Duration

	LibraryAPIURL     string
	LibraryAPITimeout time.Duration
	LoginURL          string
	ItemsPerPage      int
	FallbackQuotes    []string

	ClientTokenSecret string
	CSRFSecret        string
	ClientTokenTTL    time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
	// TrustProxy reads client addresses from X-Real-IP / X-Forwarded-For
	TrustProxy bool

	Debug bool
}

var defaultQuotes = []string{
	"The limits of my language mean the limits of my world.",
	"One language sets you in a corridor for life. Two languages open every door along the way.",
	"To have another language is to possess a second soul.",
	"Learning is a treasure that will follow its owner everywhere.",
}

// Placeholder secrets used when none are configured. Tokens signed with
// them can be forged by anyone.
const (
	defaultClientTokenSecret = "change-me-client-token-secret"
	defaultCSRFSecret        = "change-me-csrf-secret"
)

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg := &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./vocabdrill.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", ""),
		ProgressBackend: strings.ToLower(getEnv("PROGRESS_BACKEND", "cookie")),
		ProgressTTL:     getEnvDuration("PROGRESS_TTL", 7*24*time.Hour),
		CleanupInterval: getEnvDuration("CLEANUP_INTERVAL", time.Hour),

		LibraryAPIURL:     strings.TrimSuffix(getEnv("LIBRARY_API_URL", "http://localhost:5000"), "/"),
		LibraryAPITimeout: getEnvDuration("LIBRARY_API_TIMEOUT", 10*time.Second),
		LoginURL:          getEnv("LOGIN_URL", "/login"),
		ItemsPerPage:      getEnvInt("ITEMS_PER_PAGE", 3),
		FallbackQuotes:    getEnvList("FALLBACK_QUOTES", defaultQuotes),

		ClientTokenSecret: getEnv("CLIENT_TOKEN_SECRET", defaultClientTokenSecret),
		CSRFSecret:        getEnv("CSRF_SECRET", defaultCSRFSecret),
		ClientTokenTTL:    getEnvDuration("CLIENT_TOKEN_TTL", 365*24*time.Hour),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
		TrustProxy:     getEnvBool("TRUST_PROXY", false),

		Debug: getEnvBool("DEBUG", false),
	}

	for _, key := range cfg.DefaultSecrets() {
		log.Printf("Warning: %s is not set, using an insecure placeholder", key)
	}
	return cfg
}

// DefaultSecrets lists the secret variables still at their placeholder value
func (c *Config) DefaultSecrets() []string {
	var keys []string
	if c.ClientTokenSecret == defaultClientTokenSecret {
		keys = append(keys, "CLIENT_TOKEN_SECRET")
	}
	if c.CSRFSecret == defaultCSRFSecret {
		keys = append(keys, "CSRF_SECRET")
	}
	return keys
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: invalid %s=%q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
		log.Printf("Warning: invalid %s=%q, using %v", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
		log.Printf("Warning: invalid %s=%q, using %s", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvList splits a |-separated variable, dropping blank entries
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, "|") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
