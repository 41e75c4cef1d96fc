package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	DatabaseURL      string
	CORSAllowOrigins []string

	JWTSecret string
	JWTTTL    time.Duration

	LLMProvider    string
	LLMModel       string
	OpenAIAPIKey   string
	LLMMaxAttempts int
	LLMRetryDelay  time.Duration

	InitialCredits int
}

// Load reads configuration from .env (best effort) and environment variables.
func Load() Config {
	_ = godotenv.Load(".env", ".env.local")

	env := normalizeEnv(getEnv("ENV", "development"))
	dbURL := os.Getenv("DATABASE_URL")
	if env == "production" && dbURL == "" {
		log.Fatal("DATABASE_URL is required in production")
	}

	secret := os.Getenv("JWT_SECRET")
	if env == "production" && secret == "" {
		log.Fatal("JWT_SECRET is required in production")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		DatabaseURL:      dbURL,
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret"),
		JWTTTL:           getEnvDuration("JWT_TTL", 24*time.Hour),
		LLMProvider:      getEnv("LLM_PROVIDER", "openai"),
		LLMModel:         getEnv("LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		LLMMaxAttempts:   getEnvInt("LLM_MAX_ATTEMPTS", 3),
		LLMRetryDelay:    getEnvDuration("LLM_RETRY_DELAY", 2*time.Second),
		InitialCredits:   getEnvInt("INITIAL_CREDITS", 10),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config %s invalid duration %q, using %s", key, raw, def)
		return def
	}
	return val
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "development"
	}
}
