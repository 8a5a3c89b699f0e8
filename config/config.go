// Package config provides environment-based configuration for the
// stackplan server, CLI and assistant.
package config

import (
	"os"
	"strconv"
)

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvInt retrieves an integer environment variable with a fallback value
func GetEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// Assistant holds configuration for the language-model backend.
type Assistant struct {
	BaseURL string
	APIKey  string
	Model   string
}

// LoadAssistant reads the assistant configuration from the environment.
func LoadAssistant() Assistant {
	return Assistant{
		BaseURL: GetEnv("ASSISTANT_BASE_URL", "https://api.openai.com/v1"),
		APIKey:  GetEnv("ASSISTANT_API_KEY", ""),
		Model:   GetEnv("ASSISTANT_MODEL", "gpt-4o-mini"),
	}
}
