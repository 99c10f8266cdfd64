package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted in STORAGE_BACKEND.
const (
	BackendRelational = "relational"
	BackendDocument   = "document"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// StorageBackend selects the primary backend once at startup:
	// "relational" (embedded SQLite or PostgreSQL, with document fallback)
	// or "document" (JSON collections only). The router never re-evaluates
	// this per call.
	StorageBackend string

	// Relational backend
	DBDriver   string // sqlite | postgres
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Document backend / data directory (also holds the first-launch marker)
	DataDir string

	// Collaborators
	ReminderInterval  time.Duration
	SeedOnFirstLaunch bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		StorageBackend: getEnv("STORAGE_BACKEND", BackendRelational),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		SQLitePath: getEnv("SQLITE_PATH", "projefa.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "projefa"),
		DBPassword: getEnv("DB_PASSWORD", "projefa"),
		DBName:     getEnv("DB_NAME", "projefa"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		DataDir: getEnv("DATA_DIR", "data"),
	}

	intervalStr := getEnv("REMINDER_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		log.Printf("Warning: invalid REMINDER_INTERVAL value '%s', falling back to 15m\n", intervalStr)
		interval = 15 * time.Minute
	}
	config.ReminderInterval = interval

	seedStr := getEnv("SEED_ON_FIRST_LAUNCH", "true")
	seed, err := strconv.ParseBool(seedStr)
	if err != nil {
		log.Printf("Warning: invalid SEED_ON_FIRST_LAUNCH value '%s', falling back to true\n", seedStr)
		seed = true
	}
	config.SeedOnFirstLaunch = seed

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
