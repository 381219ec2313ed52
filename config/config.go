package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Snapshot SnapshotConfig
	Auth     AuthConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

// SnapshotConfig selects and configures the snapshot backend.
// Backend is "redis", "postgres" or "none".
type SnapshotConfig struct {
	Backend       string
	Schedule      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string
}

type AuthConfig struct {
	// FirebaseCredentialsPath enables Firebase ID-token verification.
	// When empty, the X-Principal header is trusted (local development).
	FirebaseCredentialsPath string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Snapshot: SnapshotConfig{
			Backend:       getEnv("SNAPSHOT_BACKEND", "none"),
			Schedule:      getEnv("SNAPSHOT_SCHEDULE", "@every 5m"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			PostgresDSN:   getEnv("DB_DSN", ""),
		},
		Auth: AuthConfig{
			FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Snapshot.Backend {
	case "none", "redis":
	case "postgres":
		if c.Snapshot.PostgresDSN == "" {
			return fmt.Errorf("DB_DSN is required when SNAPSHOT_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown SNAPSHOT_BACKEND %q", c.Snapshot.Backend)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
