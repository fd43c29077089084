package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Cache   CacheConfig
	Ai      AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
}

type CatalogConfig struct {
	// BaseURL of the JSON-RPC tool backend.
	BaseURL   string
	AuthToken string
}

type CacheConfig struct {
	ResponseTTLSeconds int
}

type AIConfig struct {
	LLMProvider    string // "ollama" or "huggingface"
	LLMModel       string // e.g. "llama3", "qwen2.5"
	OllamaBaseURL  string
	LLMBaseURL     string // provider-specific override (huggingface router etc)
	LLMAPIKey      string
	TimeoutSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Catalog: CatalogConfig{
			BaseURL:   getEnv("CATALOG_RPC_URL", "http://localhost:4000/mcp"),
			AuthToken: getEnv("CATALOG_AUTH_TOKEN", ""),
		},
		Cache: CacheConfig{
			ResponseTTLSeconds: getEnvAsInt("RESPONSE_CACHE_TTL_SECONDS", 30),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:       getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMBaseURL:     getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:      getEnv("LLM_API_KEY", ""),
			TimeoutSeconds: getEnvAsInt("LLM_TIMEOUT_SECONDS", 120),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
