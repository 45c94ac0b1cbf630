package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	InteractionLogPath string
	CorsAllowedOrigins string
	RedisURL           string
	CorpusDir          string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI       string
	Tavily       string
	IngestTopic  string // Corpus ingestion topic
	SessionIdleM int    // Session idle eviction (minutes)
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" or "openai"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama", "openai"
	LLMModel          string // e.g. "llama3", "gpt-4o-mini"
	RoleTimeoutSec    int    // Upper bound for a single role invocation
}

type RetrievalConfig struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	Threshold    float64 // Minimum best-hit similarity before web fallback
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			InteractionLogPath: getEnv("INTERACTION_LOG_PATH", "logs/interactions.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			CorpusDir:          getEnv("CORPUS_DIR", "data/corpus"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			Tavily:       getEnv("TAVILY_API_KEY", ""),
			IngestTopic:  getEnv("INGEST_CORPUS_TOPIC_NAME", "INGEST_CORPUS_DOCUMENT"),
			SessionIdleM: getEnvAsInt("SESSION_IDLE_MINUTES", 60),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			RoleTimeoutSec:    getEnvAsInt("ROLE_TIMEOUT_SECONDS", 90),
		},
		Retrieval: RetrievalConfig{
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 1500),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 200),
			TopK:         getEnvAsInt("RETRIEVAL_TOP_K", 5),
			Threshold:    getEnvAsFloat("RETRIEVAL_THRESHOLD", 0.35),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
