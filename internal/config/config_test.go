package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		os.Unsetenv("RIGHTSTEP_DB_PATH")
		os.Unsetenv("PORT")
		os.Unsetenv("TELEGRAM_CHAT_ID")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DBPath == "" {
			t.Error("Expected DBPath to default to a path under the home directory")
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected Port to default to '8080', got '%s'", cfg.Port)
		}
	})

	t.Run("ExplicitValues", func(t *testing.T) {
		t.Setenv("RIGHTSTEP_DB_PATH", "/tmp/rightstep-test.db")
		t.Setenv("RIGHTSTEP_ENDPOINT_URL", "http://endpoint.test")
		t.Setenv("PORT", "9090")
		t.Setenv("TELEGRAM_CHAT_ID", "12345")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DBPath != "/tmp/rightstep-test.db" {
			t.Errorf("Expected DBPath '/tmp/rightstep-test.db', got '%s'", cfg.DBPath)
		}
		if cfg.EndpointURL != "http://endpoint.test" {
			t.Errorf("Expected EndpointURL 'http://endpoint.test', got '%s'", cfg.EndpointURL)
		}
		if cfg.Port != "9090" {
			t.Errorf("Expected Port '9090', got '%s'", cfg.Port)
		}
		if cfg.TelegramChatID != 12345 {
			t.Errorf("Expected TelegramChatID 12345, got %d", cfg.TelegramChatID)
		}
	})

	t.Run("InvalidChatID", func(t *testing.T) {
		t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for invalid TELEGRAM_CHAT_ID, got nil")
		}
	})
}

func TestRequireEndpointURL(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.RequireEndpointURL(); err == nil {
		t.Fatal("Expected an error for missing endpoint URL, got nil")
	}

	cfg.EndpointURL = "http://endpoint.test"
	url, err := cfg.RequireEndpointURL()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if url != "http://endpoint.test" {
		t.Errorf("Expected 'http://endpoint.test', got '%s'", url)
	}
}

func TestResolveGeminiKey(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		os.Unsetenv("GEMINI_API_KEY")

		_, err := ResolveGeminiKey()
		if err == nil {
			t.Fatal("Expected an error for missing GEMINI_API_KEY, got nil")
		}
		expectedError := "GEMINI_API_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("Present", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "gemini_key")

		key, err := ResolveGeminiKey()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if key != "gemini_key" {
			t.Errorf("Expected 'gemini_key', got '%s'", key)
		}
	})
}
