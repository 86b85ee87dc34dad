package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the configuration for the application.
type Config struct {
	// Client side
	DBPath      string
	EndpointURL string

	// Server side
	Port           string
	IdentitySecret string

	// Optional notification sink
	TelegramBotToken string
	TelegramChatID   int64
}

// NewFromEnv creates a new Config object from environment variables.
// Nothing is strictly required at load time: the pieces that need a
// particular value (the analysis endpoint, the Gemini key) ask for it
// when they actually use it.
func NewFromEnv() (*Config, error) {
	dbPath := os.Getenv("RIGHTSTEP_DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory for default DB path: %w", err)
		}
		dbPath = filepath.Join(home, ".rightstep", "rightstep.db")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	telegramChatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	var telegramChatID int64
	if telegramChatIDStr != "" {
		if _, err := fmt.Sscanf(telegramChatIDStr, "%d", &telegramChatID); err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID is not a valid integer: %w", err)
		}
	}

	return &Config{
		DBPath:           dbPath,
		EndpointURL:      os.Getenv("RIGHTSTEP_ENDPOINT_URL"),
		Port:             port,
		IdentitySecret:   os.Getenv("RIGHTSTEP_IDENTITY_SECRET"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   telegramChatID,
	}, nil
}

// RequireEndpointURL returns the analysis endpoint URL or an error if unset.
func (c *Config) RequireEndpointURL() (string, error) {
	if c.EndpointURL == "" {
		return "", fmt.Errorf("RIGHTSTEP_ENDPOINT_URL environment variable not set")
	}
	return c.EndpointURL, nil
}

// ResolveGeminiKey resolves the Gemini API key at request time. The server
// deliberately does not read this at startup: a missing key is a
// per-request configuration failure, not a boot failure.
func ResolveGeminiKey() (string, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	return key, nil
}
