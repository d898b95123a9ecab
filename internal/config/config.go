package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	Origin      string

	// Record store backend: memory, postgres or mysql.
	StoreBackend string
	DatabaseURL  string
	MySQLDSN     string

	// Extraction services, tried in order.
	ExtractionProviders string
	GroqAPIKey          string
	GroqBaseURL         string
	GeminiAPIKey        string
	GeminiBaseURL       string

	// Speech-to-text.
	OpenAIKey string
	UploadDir string

	// Identity.
	JWTSecret            string
	JWTExpirationMinutes int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("APP_ENV", "development"),
		Origin:       getEnv("ORIGIN", "*"),
		StoreBackend: getEnv("STORE_BACKEND", "memory"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		MySQLDSN:     os.Getenv("MYSQL_DSN"),

		ExtractionProviders: getEnv("EXTRACTION_PROVIDERS", "groq,gemini"),

		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:   getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	expMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}
	cfg.JWTExpirationMinutes = expMinutes

	// Validate required environment variables
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required. Please set it as environment variable:\n  Linux/Mac: export JWT_SECRET=\"your_secret\"")
	}

	switch cfg.StoreBackend {
	case "memory":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	case "mysql":
		if cfg.MySQLDSN == "" {
			return nil, fmt.Errorf("MYSQL_DSN is required when STORE_BACKEND=mysql")
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND: %s. Supported: memory, postgres, mysql", cfg.StoreBackend)
	}

	// Extraction and STT keys are optional: manual entry still works without
	// them. They are validated when the pipeline/provider is built.

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
