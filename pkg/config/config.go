package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Gemini     GeminiConfig
	Twilio     TwilioConfig
	ElevenLabs ElevenLabsConfig
	RAG        RAGConfig
	Business   BusinessConfig
	Sweeps     SweepConfig
	Logger     LoggerConfig
	BaseURL    string
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	Temperature    float64
	MaxTokens      int
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

type ElevenLabsConfig struct {
	APIKey  string
	AgentID string
	VoiceID string
}

type RAGConfig struct {
	TopK                int
	SimilarityThreshold float64
	Dimension           int
	IndexDelay          time.Duration
}

// DayWindow is a daily opening window in local time, e.g. 6:00-21:00.
type DayWindow struct {
	OpenHour  int
	CloseHour int
}

type BusinessConfig struct {
	Weekday  DayWindow
	Saturday DayWindow
	Sunday   DayWindow
}

type SweepConfig struct {
	RetentionDelay   time.Duration
	ReminderDelay    time.Duration
	ReminderInterval time.Duration // 0 disables the background reminder job
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	topK, _ := strconv.Atoi(getEnv("RAG_TOP_K", "3"))
	threshold, _ := strconv.ParseFloat(getEnv("RAG_SIMILARITY_THRESHOLD", "0.6"), 64)
	dimension, _ := strconv.Atoi(getEnv("RAG_EMBEDDING_DIMENSION", "768"))
	indexDelay, _ := strconv.Atoi(getEnv("RAG_INDEX_DELAY_MS", "500"))
	temperature, _ := strconv.ParseFloat(getEnv("GEMINI_TEMPERATURE", "0.7"), 64)
	maxTokens, _ := strconv.Atoi(getEnv("GEMINI_MAX_TOKENS", "500"))
	retentionDelay, _ := strconv.Atoi(getEnv("RETENTION_SWEEP_DELAY_MS", "1000"))
	reminderDelay, _ := strconv.Atoi(getEnv("REMINDER_SWEEP_DELAY_MS", "500"))
	reminderInterval, _ := strconv.Atoi(getEnv("REMINDER_SWEEP_INTERVAL_MINUTES", "0"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3400"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			EmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			Temperature:    temperature,
			MaxTokens:      maxTokens,
		},
		Twilio: TwilioConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		},
		ElevenLabs: ElevenLabsConfig{
			APIKey:  getEnv("ELEVENLABS_API_KEY", ""),
			AgentID: getEnv("ELEVENLABS_AGENT_ID", ""),
			VoiceID: getEnv("ELEVENLABS_VOICE_ID", "ElevenLabs-Default"),
		},
		RAG: RAGConfig{
			TopK:                topK,
			SimilarityThreshold: threshold,
			Dimension:           dimension,
			IndexDelay:          time.Duration(indexDelay) * time.Millisecond,
		},
		Business: BusinessConfig{
			Weekday:  parseWindow(getEnv("BUSINESS_HOURS_WEEKDAY", "6-21")),
			Saturday: parseWindow(getEnv("BUSINESS_HOURS_SATURDAY", "8-14")),
			Sunday:   parseWindow(getEnv("BUSINESS_HOURS_SUNDAY", "10-12")),
		},
		Sweeps: SweepConfig{
			RetentionDelay:   time.Duration(retentionDelay) * time.Millisecond,
			ReminderDelay:    time.Duration(reminderDelay) * time.Millisecond,
			ReminderInterval: time.Duration(reminderInterval) * time.Minute,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		BaseURL: getEnv("BASE_URL", "http://localhost:3400"),
	}, nil
}

// Validate reports the first missing required credential. The process must
// not start without them.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Twilio.AccountSID == "" || c.Twilio.AuthToken == "" || c.Twilio.FromNumber == "" {
		return fmt.Errorf("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_PHONE_NUMBER are required")
	}
	if c.ElevenLabs.APIKey == "" || c.ElevenLabs.AgentID == "" {
		return fmt.Errorf("ELEVENLABS_API_KEY and ELEVENLABS_AGENT_ID are required")
	}
	return nil
}

// parseWindow parses an "open-close" hour pair like "6-21".
func parseWindow(s string) DayWindow {
	var open, close int
	if _, err := fmt.Sscanf(s, "%d-%d", &open, &close); err != nil || open < 0 || close > 24 || open >= close {
		return DayWindow{OpenHour: 6, CloseHour: 21}
	}
	return DayWindow{OpenHour: open, CloseHour: close}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
