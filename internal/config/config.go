package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	HTTPAddr      string
	DBPath        string
	JWTSecret     string
	DefaultLocale string
	PrintCommand  string
	Env           string
}

// Load reads .env if present, then the environment. Missing keys fall back
// to local-desktop defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		DBPath:        getenv("DB_PATH", "martpos.db"),
		JWTSecret:     getenv("JWT_SECRET", "dev-only-secret"),
		DefaultLocale: getenv("DEFAULT_LOCALE", "en"),
		PrintCommand:  getenv("PRINT_COMMAND", "lp"),
		Env:           getenv("APP_ENV", "dev"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
