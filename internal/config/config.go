package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"auction-ledger/utils"
)

// Config holds the process configuration
type Config struct {
	Port          string
	AMQPURL       string
	SweepInterval time.Duration
	Env           string
}

// Load reads .env when present and falls back to system env variables
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Info("no .env file found, relying on system env variables", nil)
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		AMQPURL:       getEnv("AMQP_URL", ""),
		SweepInterval: getDuration("SWEEP_INTERVAL", 30*time.Second),
		Env:           getEnv("ENV", "development"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		utils.Warn("invalid duration in env, using fallback", map[string]any{
			"key":      key,
			"value":    raw,
			"fallback": fallback.String(),
		})
		return fallback
	}
	return d
}
