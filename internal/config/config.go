package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Storage  StorageConfig
	LLM      LLMConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	Mode           Mode
	AllowedOrigins []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// StorageConfig selects the campaign store
type StorageConfig struct {
	Driver string // mongodb, memory
}

// LLMConfig holds the message generation provider configuration
type LLMConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Mock      bool
}

const (
	StorageMongoDB = "mongodb"
	StorageMemory  = "memory"
)

// envBindings maps config keys onto the environment variables that feed them.
// Some keys accept several variable names.
var envBindings = map[string][]string{
	"server.port":           {"PORT"},
	"server.mode":           {"APP_ENV", "NODE_ENV"},
	"server.allowedorigins": {"ALLOWED_ORIGINS"},
	"mongodb.uri":           {"MONGODB_URI"},
	"mongodb.database":      {"MONGODB_DATABASE"},
	"mongodb.timeout":       {"MONGODB_TIMEOUT"},
	"storage.driver":        {"STORAGE_DRIVER"},
	"llm.apikey":            {"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPEN_AI_KEY"},
	"llm.model":             {"LLM_MODEL"},
	"llm.maxtokens":         {"LLM_MAX_TOKENS"},
	"llm.mock":              {"LLM_MOCK"},
	"loglevel":              {"LOG_LEVEL"},
}

// LoadConfig loads configuration from a .env file, an optional config.yaml in path,
// and the environment. Environment variables win over the file.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Server.AllowedOrigins = splitList(strings.Join(cfg.Server.AllowedOrigins, ","))
	cfg.Server.Mode = ParseMode(string(cfg.Server.Mode))
	if cfg.LLM.APIKey == "" && !v.IsSet("llm.mock") {
		cfg.LLM.Mock = true
	}

	return &cfg, cfg.Validate()
}

// Validate reports configuration that cannot work
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI is required when STORAGE_DRIVER=mongodb")
		}
	case StorageMemory:
	default:
		return errors.New("STORAGE_DRIVER must be mongodb or memory")
	}
	if !c.LLM.Mock && c.LLM.APIKey == "" {
		return errors.New("an LLM API key is required unless LLM_MOCK=true")
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "5000")
	v.SetDefault("Server.Mode", string(ModeDevelopment))
	v.SetDefault("Server.AllowedOrigins", []string{"*"})
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "outflo")
	v.SetDefault("MongoDB.Timeout", 10*time.Second)
	v.SetDefault("Storage.Driver", StorageMongoDB)
	v.SetDefault("LLM.Model", "gemini-2.0-flash")
	v.SetDefault("LLM.MaxTokens", 200)
	v.SetDefault("LogLevel", "info")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
