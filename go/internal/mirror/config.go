package mirror

import (
	"os"
	"strconv"
)

// EnvConfig holds Redis connection settings for the mirror.
type EnvConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewEnvConfig reads REDIS_* environment variables (with defaults).
func NewEnvConfig() EnvConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		db = 0
	}

	return EnvConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
