// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pkordes/travel-planner/internal/storage"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Storage selects the key-value backend (STORAGE_DRIVER, default "file")
	// and carries the connection settings for it.
	Storage storage.Options

	// StorageKey is the key the itinerary collection is stored under.
	// Empty means repo.DefaultKey.
	StorageKey string

	// StoragePassphrase, when set, encrypts the stored collection at rest.
	StoragePassphrase string

	// SaveMaxRetries is how many times a failed storage call is retried.
	// Defaults to 3.
	SaveMaxRetries uint64

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitRPS and RateLimitBurst configure per-client rate limiting.
	// An RPS of 0 disables it. Defaults: 20 rps, burst 40.
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadFile reads KEY=VALUE pairs from path into the environment, without
// overriding variables that are already set, then calls Load.
// A missing file is not an error.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Load()
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any variables the selected storage driver requires
// that are not set, or naming a variable whose value cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Storage: storage.Options{
			Driver:         storage.Driver(getEnv("STORAGE_DRIVER", string(storage.DriverFile))),
			DataDir:        getEnv("DATA_DIR", "./data"),
			DatabaseURL:    os.Getenv("DATABASE_URL"),
			RedisURL:       os.Getenv("REDIS_URL"),
			RedisPassword:  os.Getenv("REDIS_PASSWORD"),
			MongoURI:       os.Getenv("MONGO_URI"),
			MongoDatabase:  getEnv("MONGO_DATABASE", "travel_planner"),
			DynamoTable:    os.Getenv("DYNAMODB_TABLE"),
			AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
			DynamoEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		},
		StorageKey:        os.Getenv("STORAGE_KEY"),
		StoragePassphrase: os.Getenv("STORAGE_PASSPHRASE"),
	}

	var err error
	if cfg.SaveMaxRetries, err = parseEnv("SAVE_MAX_RETRIES", uint64(3), func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	}); err != nil {
		return Config{}, err
	}
	if cfg.MaxBodyBytes, err = parseEnv("MAX_BODY_BYTES", int64(1<<20), func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	}); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = parseEnv("RATE_LIMIT_RPS", 20.0, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = parseEnv("RATE_LIMIT_BURST", 40, strconv.Atoi); err != nil {
		return Config{}, err
	}

	if !slices.Contains(storage.Drivers(), cfg.Storage.Driver) {
		return Config{}, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", cfg.Storage.Driver)
	}

	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}
	switch cfg.Storage.Driver {
	case storage.DriverPostgres:
		require("DATABASE_URL", cfg.Storage.DatabaseURL)
	case storage.DriverRedis:
		require("REDIS_URL", cfg.Storage.RedisURL)
	case storage.DriverMongo:
		require("MONGO_URI", cfg.Storage.MongoURI)
	case storage.DriverDynamoDB:
		require("DYNAMODB_TABLE", cfg.Storage.DynamoTable)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseEnv parses the variable named by key with parse, or returns fallback
// if it is not set or is empty.
func parseEnv[T any](key string, fallback T, parse func(string) (T, error)) (T, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	out, err := parse(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid value %q", key, v)
	}
	return out, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
