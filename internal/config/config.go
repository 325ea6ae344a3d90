package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Store    StoreConfig
	Keys     APIKeys
	Ocr      OcrConfig
	Grammar  GrammarConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type StoreConfig struct {
	Driver string // "memory", "redis" or "postgres"
}

type APIKeys struct {
	GoogleVision     string
	GoogleGemini     string
	RecognitionTopic string
}

type OcrConfig struct {
	Provider       string // "vision" or "tesseract"
	TesseractLangs string
}

type GrammarConfig struct {
	BaseURL        string
	Locale         string
	TimeoutSeconds int
}

type AIConfig struct {
	LLMProvider   string // "gemini" or "ollama"
	LLMModel      string // e.g. "gemini-1.5-flash", "llama3"
	OllamaBaseURL string
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
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", "memory"),
		},
		Keys: APIKeys{
			GoogleVision:     getEnv("GOOGLE_VISION_API_KEY", ""),
			GoogleGemini:     getEnv("GOOGLE_GEMINI_API_KEY", ""),
			RecognitionTopic: getEnv("RECOGNITION_COMPLETED_TOPIC_NAME", "RECOGNITION_COMPLETED"),
		},
		Ocr: OcrConfig{
			Provider:       getEnv("OCR_PROVIDER", "vision"),
			TesseractLangs: getEnv("TESSERACT_LANGUAGES", "eng,ara"),
		},
		Grammar: GrammarConfig{
			BaseURL:        getEnv("GRAMMAR_BASE_URL", "https://api.languagetool.org"),
			Locale:         getEnv("GRAMMAR_LOCALE", "en-US"),
			TimeoutSeconds: getEnvAsInt("GRAMMAR_TIMEOUT_SECONDS", 15),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:      getEnv("LLM_MODEL", "gemini-1.5-flash"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
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
