package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}
	getEnvDefault := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:         getEnv("DB_NAME"),
		MigrationsDir:  getEnvDefault("MIGRATIONS_DIR", "./migrations"),
		Port:           getEnv("PORT"),
		Mode:           getEnvDefault("MODE", "local"),
		AdapterTimeout: getEnvDefault("ADAPTER_TIMEOUT", "10s"),
	}

	if cfg.Mode == "remote" {
		// A shared tournament needs an identity and the shared database.
		cfg.TournamentID = getEnv("TOURNAMENT_ID")
		cfg.Turso = TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL"),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN"),
		}
	}
	return cfg
}
