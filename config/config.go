package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Reference word-lists, read from ReferenceDir unless ReferenceBucket is set
	ReferenceDir    string
	ReferenceBucket string
	ReferencePrefix string

	// Collector configuration
	BaseURL          string
	LinksFile        string
	CategoryDir      string
	OutputDir        string
	CollectorWorkers int
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	switch env {
	case CI:
		// CI reads everything from the environment
		loadConfig(cfg, os.Getenv)
	case Development, Test, Production:
		loadConfig(cfg, secretOrEnv)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadConfig(cfg *Config, lookup func(string) string) {
	get := func(key, fallback string) string {
		if v := lookup(key); v != "" {
			return v
		}
		return fallback
	}

	cfg.ServerPort = get("SERVER_PORT", "8080")
	cfg.ServerHost = get("SERVER_HOST", "0.0.0.0")
	cfg.CORSOrigins = splitList(get("CORS_ORIGINS", ""))

	cfg.DBDriver = get("DB_DRIVER", "sqlite")
	cfg.DBHost = get("DB_HOST", "localhost")
	cfg.DBPort = get("DB_PORT", "5432")
	cfg.DBUser = get("DB_USER", "postgres")
	cfg.DBPassword = get("DB_PASSWORD", "")
	cfg.DBName = get("DB_NAME", "myplate")
	cfg.DBSSLMode = get("DB_SSL_MODE", "disable")
	cfg.SQLitePath = get("SQLITE_PATH", "data/recipes.db")

	cfg.RedisHost = get("REDIS_HOST", "")
	cfg.RedisPort = get("REDIS_PORT", "6379")
	cfg.RedisPassword = get("REDIS_PASSWORD", "")
	cfg.RedisDB = atoi(get("REDIS_DB", "0"), 0)
	cfg.RedisURL = get("REDIS_URL", "")

	cfg.JWTSecret = get("JWT_SECRET", "")

	cfg.ReferenceDir = get("REFERENCE_DIR", "data/reference")
	cfg.ReferenceBucket = get("REFERENCE_S3_BUCKET", "")
	cfg.ReferencePrefix = get("REFERENCE_S3_PREFIX", "reference/")

	cfg.BaseURL = strings.TrimRight(get("BASE_URL", "https://www.myplate.gov"), "/")
	cfg.LinksFile = get("LINKS_FILE", "data/myplate_recipe_links.txt")
	cfg.CategoryDir = get("CATEGORY_DIR", "data")
	cfg.OutputDir = get("OUTPUT_DIR", "data")
	cfg.CollectorWorkers = atoi(get("COLLECTOR_WORKERS", "4"), 4)
}

// RedisEnabled reports whether a redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func atoi(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// secretOrEnv prefers an environment variable and falls back to the Docker
// secret of the same name in lower case (DB_PASSWORD -> db_password).
func secretOrEnv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return readSecret(strings.ToLower(key))
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
