package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Llama    LlamaConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Path string
}

type LlamaConfig struct {
	ServerURL string
	ModelPath string
	ModelURL  string
	Device    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "chat_history.db"),
		},
		Llama: LlamaConfig{
			ServerURL: getEnv("LLAMA_SERVER_URL", "http://127.0.0.1:8080"),
			ModelPath: getEnv("LLAMA_MODEL_PATH", "models/Llama-3.2-1B-Instruct-Q8_0.gguf"),
			ModelURL:  getEnv("LLAMA_MODEL_URL", ""),
			Device:    getEnv("LLAMA_DEVICE", "cpu"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
