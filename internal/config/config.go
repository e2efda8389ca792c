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
	Line     LineConfig
	OpenAI   OpenAIConfig
	Speech   SpeechConfig
}

type AppConfig struct {
	Port        string
	BaseURL     string
	Environment string
	LogFilePath string
	AudioDir    string
}

type DatabaseConfig struct {
	// Connection is a Postgres DSN. When empty the app falls back to a
	// local SQLite file at SqlitePath.
	Connection string
	SqlitePath string
}

type LineConfig struct {
	ChannelSecret string
	ChannelToken  string
}

type OpenAIConfig struct {
	APIKey     string
	ChatModel  string
	AudioModel string
	MaxTokens  int
}

type SpeechConfig struct {
	CredentialsJSON string // inline service-account JSON
	CredentialsFile string // or a path to one
	VoiceName       string
	LanguageCode    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:        getEnv("APP_PORT", "8080"),
			BaseURL:     getEnv("SERVER_URL", "http://localhost:8080"),
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/app.log"),
			AudioDir:    getEnv("AUDIO_DIR", "files"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			SqlitePath: getEnv("SQLITE_PATH", "data/tutor.db"),
		},
		Line: LineConfig{
			ChannelSecret: getEnv("LINE_CHANNEL_SECRET", ""),
			ChannelToken:  getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			ChatModel:  getEnv("CHAT_COMPLETION_MODEL", "gpt-4o"),
			AudioModel: getEnv("AUDIO_MODEL_ENGINE", "whisper-1"),
			MaxTokens:  getEnvAsInt("MAX_RESPONSE_TOKENS", 300),
		},
		Speech: SpeechConfig{
			CredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			VoiceName:       getEnv("TTS_VOICE_NAME", "en-US-Studio-O"),
			LanguageCode:    getEnv("TTS_LANGUAGE_CODE", "en-US"),
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
