package configs

import (
	"os"
	"time"
)

type Config struct {
	API APIConfig
	CLI CLIConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CLIConfig struct {
	// Prompt shown by the interactive shell.
	Prompt string
}

func LoadConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: getEnv("PET_CENTER_API_URL", "http://localhost:5000"),
			Timeout: getEnvDuration("PET_CENTER_API_TIMEOUT", 30*time.Second),
		},
		CLI: CLIConfig{
			Prompt: getEnv("PET_CENTER_PROMPT", "petcenter> "),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
