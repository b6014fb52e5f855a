package config

import (
	"os"

	"github.com/joho/godotenv"

	"dewy/internal/keyring"
	"dewy/internal/logger"
)

const (
	envAPIKey        = "DEWY_GEMINI_API_KEY"
	envAPIKeyGeneric = "GEMINI_API_KEY"
)

// LoadEnv loads a .env file from the working directory if one exists.
// Missing files are fine, the system environment is used as-is.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment")
	}
}

// ResolveAPIKey returns the Gemini API key, preferring environment
// variables over the OS keyring. An empty string means classification
// runs on the built-in rules only.
func ResolveAPIKey() string {
	if key := os.Getenv(envAPIKey); key != "" {
		return key
	}
	if key := os.Getenv(envAPIKeyGeneric); key != "" {
		return key
	}

	key, err := keyring.GetAPIKey()
	if err != nil {
		if err != keyring.ErrNotFound {
			logger.Warn("Could not read API key from keyring", "error", err)
		}
		return ""
	}
	return key
}
