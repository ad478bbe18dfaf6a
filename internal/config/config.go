package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Chat     ChatConfig
	Query    QueryConfig
}

type AppConfig struct {
	Port               string
	ServiceName        string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	ThreadStore        string // "memory" or "redis"
	ThreadTTL          time.Duration
	EventTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "gemini"
	LLMModel      string
	OllamaBaseURL string
	Temperature   float64
	MaxTurns      int
	MaxHandoffs   int
	AgentTimeout  time.Duration // 0 disables the timeout
	OutputMode    string        // "last_message" or "full_history"
}

// ChatConfig controls how stored turns are replayed into the pipeline.
type ChatConfig struct {
	HistoryWindow int
	HistoryOrder  string // "chronological" or "newest_first"
}

// QueryConfig bounds statements executed against session databases.
type QueryConfig struct {
	Timeout  time.Duration
	RowLimit int
	// SchemaCacheTTL lets a thread reuse a schema snapshot; 0 reads the catalog on every call.
	SchemaCacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			ServiceName:        getEnv("APP_SERVICE_NAME", "db-chat-backend"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ThreadStore:        getEnv("THREAD_STORE", "memory"),
			ThreadTTL:          getEnvAsDuration("THREAD_TTL", time.Hour),
			EventTopic:         getEnv("EVENT_TOPIC_NAME", "DB_CHAT_EVENTS"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3.1"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.9),
			MaxTurns:      getEnvAsInt("AGENT_MAX_TURNS", 10),
			MaxHandoffs:   getEnvAsInt("AGENT_MAX_HANDOFFS", 6),
			AgentTimeout:  getEnvAsDuration("AGENT_TIMEOUT", 0),
			OutputMode:    getEnv("AGENT_OUTPUT_MODE", "last_message"),
		},
		Chat: ChatConfig{
			HistoryWindow: getEnvAsInt("CHAT_HISTORY_WINDOW", 16),
			HistoryOrder:  getEnv("CHAT_HISTORY_ORDER", "chronological"),
		},
		Query: QueryConfig{
			Timeout:        getEnvAsDuration("SQL_QUERY_TIMEOUT", 30*time.Second),
			RowLimit:       getEnvAsInt("SQL_QUERY_ROW_LIMIT", 1000),
			SchemaCacheTTL: getEnvAsDuration("SCHEMA_CACHE_TTL", 0),
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

// getEnvAsDuration accepts Go durations ("45s") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
