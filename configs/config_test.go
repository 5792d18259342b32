package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PET_CENTER_API_URL", "")
	t.Setenv("PET_CENTER_API_TIMEOUT", "")
	t.Setenv("PET_CENTER_PROMPT", "")

	config := LoadConfig()
	assert.Equal(t, "http://localhost:5000", config.API.BaseURL)
	assert.Equal(t, 30*time.Second, config.API.Timeout)
	assert.Equal(t, "petcenter> ", config.CLI.Prompt)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PET_CENTER_API_URL", "https://shop.example.com")
	t.Setenv("PET_CENTER_API_TIMEOUT", "5s")
	t.Setenv("PET_CENTER_PROMPT", "$ ")

	config := LoadConfig()
	assert.Equal(t, "https://shop.example.com", config.API.BaseURL)
	assert.Equal(t, 5*time.Second, config.API.Timeout)
	assert.Equal(t, "$ ", config.CLI.Prompt)
}

func TestLoadConfigBadTimeoutFallsBack(t *testing.T) {
	t.Setenv("PET_CENTER_API_TIMEOUT", "not-a-duration")

	config := LoadConfig()
	assert.Equal(t, 30*time.Second, config.API.Timeout)
}
