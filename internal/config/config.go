package config

import (
	"os"

	"github.com/joho/godotenv"
)

const defaultDatabaseURL = "mongodb://127.0.0.1:27017/komal"

type Config struct {
	// Server
	Port string
	Env  string

	// Message store (mongodb:// or postgres://)
	DatabaseURL string

	// Redis (optional, enables cross-process live events)
	RedisURL string

	// Gemini AI (an empty key disables /chat only)
	GeminiAPIKey string
	GeminiModel  string

	// Persona
	PersonaName   string
	PersonaPrompt string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "3000"),
		Env:           getEnvOrDefault("ENV", "development"),
		DatabaseURL:   firstEnvOrDefault([]string{"MONGODB_URI", "DATABASE_URL"}, defaultDatabaseURL),
		RedisURL:      getEnvOrDefault("REDIS_URL", ""),
		GeminiAPIKey:  getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		PersonaName:   getEnvOrDefault("PERSONA_NAME", "Komal"),
		PersonaPrompt: getEnvOrDefault("PERSONA_PROMPT", ""),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// firstEnvOrDefault returns the first non-empty variable among keys.
func firstEnvOrDefault(keys []string, defaultVal string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return defaultVal
}
