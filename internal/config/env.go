package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFile loads environment variables from the first of .env/.env.local
// that exists. Existing process environment variables are not overwritten.
func loadEnvFile() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load environment file", slog.String("path", envPath), slog.String("error", err.Error()))
			continue
		}
		slog.Debug("Loaded environment variables", slog.String("path", envPath))
		return
	}
}
