package config

import (
	"os"
	"strings"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	CORSOrigins []string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8000")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:ecom.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS",
		"http://localhost:3000,http://127.0.0.1:3000"))
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
