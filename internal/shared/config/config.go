package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DatabaseURL string
	Port        string
	Env         string

	JWTSecret string

	// LLM extraction provider
	LLMProvider string
	OpenAIKey   string
	GroqKey     string
	DeepSeekKey string
	LLMModel    string

	// OCR text recognition
	OCRSpaceKey string

	// Document storage
	StorageProvider string // "local" or "s3"
	UploadDir       string
	UploadBaseURL   string
	AWSRegion       string
	AWSAccessKeyID  string
	AWSSecretKey    string
	S3Bucket        string

	// Background workers
	WorkerConcurrency int

	// Scheduled agent runs (cron expression, empty disables)
	AgentRunSchedule string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             os.Getenv("PORT"),
		Env:              os.Getenv("ENV"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		LLMProvider:      os.Getenv("LLM_PROVIDER"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		GroqKey:          os.Getenv("GROQ_API_KEY"),
		DeepSeekKey:      os.Getenv("DEEPSEEK_API_KEY"),
		LLMModel:         os.Getenv("LLM_MODEL"),
		OCRSpaceKey:      os.Getenv("OCRSPACE_API_KEY"),
		StorageProvider:  os.Getenv("STORAGE_PROVIDER"),
		UploadDir:        os.Getenv("UPLOAD_DIR"),
		UploadBaseURL:    os.Getenv("UPLOAD_BASE_URL"),
		AWSRegion:        os.Getenv("AWS_REGION"),
		AWSAccessKeyID:   os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:     os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		AgentRunSchedule: os.Getenv("AGENT_RUN_SCHEDULE"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "openai"
	}
	if cfg.StorageProvider == "" {
		cfg.StorageProvider = "local"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	if cfg.UploadBaseURL == "" {
		cfg.UploadBaseURL = "http://localhost:" + cfg.Port
	}

	cfg.WorkerConcurrency = envInt("WORKER_CONCURRENCY", 2)

	return cfg
}

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid integer env var, using default")
		return def
	}
	return n
}
