package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

// DefaultSystemPrompt is the persona preamble prepended to every model
// prompt. It is a configuration value (llm.system_prompt), not logic.
const DefaultSystemPrompt = `You are an AI assistant for SmartRent, a smart rental property management platform.
You help users with questions about:
- Property management
- Rental inquiries
- Smart home features
- Tenant services
- Maintenance requests
- Payment and billing questions

Be helpful, professional, and provide accurate information about rental properties and smart home technologies.
If you don't know something specific about SmartRent, acknowledge it and provide general helpful guidance.`

// LLMConfig holds the language-model client settings.
type LLMConfig struct {
	APIKey                string `mapstructure:"api_key"` // normally provided via GEMINI_API_KEY
	Model                 string `mapstructure:"model"`
	BaseURL               string `mapstructure:"base_url"`
	SystemPrompt          string `mapstructure:"system_prompt"`
	HistoryLimit          int    `mapstructure:"history_limit"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		DSN string `mapstructure:"dsn"` // "memory" or a SQLite file path
	} `mapstructure:"database"`
	LLM              LLMConfig `mapstructure:"llm"`
	MaxConversations int       `mapstructure:"max_conversations"` // 0 = unbounded
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from config.yaml (optional) and
// environment variables. SERVER_PORT, DATABASE_DSN and GEMINI_API_KEY
// override whatever the file provides.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("llm.model", "gemini-2.5-pro")
	viper.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com/v1beta/openai/")
	viper.SetDefault("llm.system_prompt", DefaultSystemPrompt)
	viper.SetDefault("llm.history_limit", 10)
	viper.SetDefault("llm.request_timeout_seconds", 60)
	viper.SetDefault("max_conversations", 0)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
		log.Printf("INFO: [Config] Database DSN overridden by environment variable DATABASE_DSN.")
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		AppConfig.LLM.APIKey = key
		log.Println("INFO: [Config] Loaded Gemini API key from environment variable GEMINI_API_KEY.")
	}
	if AppConfig.LLM.APIKey == "" {
		log.Println("WARN: [Config] GEMINI_API_KEY is not set. Chat endpoints will be unavailable until it is configured.")
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}
