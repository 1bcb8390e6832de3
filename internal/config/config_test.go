package config

import (
	"os"
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestFirstEnvOrDefault(t *testing.T) {
	keys := []string{"TEST_PRIMARY_URI", "TEST_FALLBACK_URL"}

	if got := firstEnvOrDefault(keys, "default"); got != "default" {
		t.Errorf("Expected default with nothing set, got %q", got)
	}

	os.Setenv("TEST_FALLBACK_URL", "postgres://fallback")
	defer os.Unsetenv("TEST_FALLBACK_URL")
	if got := firstEnvOrDefault(keys, "default"); got != "postgres://fallback" {
		t.Errorf("Expected fallback value, got %q", got)
	}

	os.Setenv("TEST_PRIMARY_URI", "mongodb://primary")
	defer os.Unsetenv("TEST_PRIMARY_URI")
	if got := firstEnvOrDefault(keys, "default"); got != "mongodb://primary" {
		t.Errorf("Expected primary value to win, got %q", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGODB_URI", "DATABASE_URL", "GEMINI_API_KEY", "GEMINI_MODEL", "REDIS_URL", "PERSONA_NAME"} {
		if val, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			defer os.Setenv(key, val)
		}
	}

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %q", cfg.Port)
	}
	if cfg.DatabaseURL != defaultDatabaseURL {
		t.Errorf("Expected default database URL, got %q", cfg.DatabaseURL)
	}
	if cfg.GeminiAPIKey != "" {
		t.Errorf("Expected no API key by default")
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("Expected default model, got %q", cfg.GeminiModel)
	}
	if cfg.RedisURL != "" {
		t.Errorf("Expected Redis disabled by default, got %q", cfg.RedisURL)
	}
	if cfg.PersonaName != "Komal" {
		t.Errorf("Expected default persona name, got %q", cfg.PersonaName)
	}
}

func TestLoad_MissingAPIKeyDoesNotPanic(t *testing.T) {
	if val, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
		os.Unsetenv("GEMINI_API_KEY")
		defer os.Setenv("GEMINI_API_KEY", val)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Load panicked without GEMINI_API_KEY: %v", r)
		}
	}()
	Load()
}
