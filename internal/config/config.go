package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	OpenRouter OpenRouterConfig
	Auth       AuthConfig
	YouTube    YouTubeConfig
	Logger     LoggerConfig
	CacheTTLs  CacheTTLConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Path string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Models  ModelConfig
}

// ModelConfig names the model used for each generation concern.
type ModelConfig struct {
	Quiz       string
	Chapters   string
	Chat       string
	Search     string
	Datesheets string
}

type AuthConfig struct {
	JWTSecret string
}

type YouTubeConfig struct {
	UserAgent string
}

type LoggerConfig struct {
	Level string
	Env   string
}

// CacheTTLConfig holds TTL strings (time.ParseDuration format) per cached object.
type CacheTTLConfig struct {
	Transcript  string
	Suggestions string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("database.path", "praxis.db")
	viper.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("openrouter.models.quiz", "openai/gpt-4.1-mini")
	viper.SetDefault("openrouter.models.chapters", "openai/gpt-5-chat")
	viper.SetDefault("openrouter.models.chat", "openai/gpt-4.1-mini")
	viper.SetDefault("openrouter.models.search", "openai/gpt-4o-mini")
	viper.SetDefault("openrouter.models.datesheets", "anthropic/claude-sonnet-4")
	viper.SetDefault("youtube.user_agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")
	viper.SetDefault("cache_ttls.transcript", "24h")
	viper.SetDefault("cache_ttls.suggestions", "168h")

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; env vars and defaults cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Database: DatabaseConfig{
			Path: viper.GetString("database.path"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:  viper.GetString("openrouter.api_key"),
			BaseURL: viper.GetString("openrouter.base_url"),
			Models: ModelConfig{
				Quiz:       viper.GetString("openrouter.models.quiz"),
				Chapters:   viper.GetString("openrouter.models.chapters"),
				Chat:       viper.GetString("openrouter.models.chat"),
				Search:     viper.GetString("openrouter.models.search"),
				Datesheets: viper.GetString("openrouter.models.datesheets"),
			},
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("auth.jwt_secret"),
		},
		YouTube: YouTubeConfig{
			UserAgent: viper.GetString("youtube.user_agent"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   os.Getenv("ENV"),
		},
		CacheTTLs: CacheTTLConfig{
			Transcript:  viper.GetString("cache_ttls.transcript"),
			Suggestions: viper.GetString("cache_ttls.suggestions"),
		},
	}

	// Override with environment variables if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = viper.GetInt("SERVER_PORT")
	}
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		config.Database.Path = path
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if apiKey := os.Getenv("OPENROUTER_API_KEY"); apiKey != "" {
		config.OpenRouter.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENROUTER_BASE_URL"); baseURL != "" {
		config.OpenRouter.BaseURL = baseURL
	}
	if secret := os.Getenv("AUTH_JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if ua := os.Getenv("YOUTUBE_USER_AGENT"); ua != "" {
		config.YouTube.UserAgent = ua
	}

	return config, nil
}

// ParseTTLStringOrDefault parses a duration string, falling back to def on
// empty or malformed input.
func (c *Config) ParseTTLStringOrDefault(ttl string, def time.Duration) time.Duration {
	if ttl == "" {
		return def
	}
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return def
	}
	return d
}
