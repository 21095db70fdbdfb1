package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration, loaded from a yaml file
// with environment variable overrides.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	LLM    LLMConfig
	Auth   AuthConfig
	Cache  CacheConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// LLMConfig configures the external text-generation service. BaseURL points
// at any OpenAI-compatible endpoint (OpenRouter by default).
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

type CacheConfig struct {
	// PendingQuizTTL bounds how long a served quiz can wait for submission.
	PendingQuizTTL time.Duration
	// CourseListTTL bounds the per-user course listing cache.
	CourseListTTL time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LoadConfig reads config.yaml from the working directory or ./config and
// applies environment overrides. A missing config file is not fatal; the
// environment alone can carry a full configuration.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.cors_origins", "http://localhost:5173")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("llm.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("llm.model", "mistralai/mistral-7b-instruct:free")
	viper.SetDefault("llm.timeout", 60)
	viper.SetDefault("auth.access_token_ttl", 24)
	viper.SetDefault("cache.pending_quiz_ttl", 600)
	viper.SetDefault("cache.course_list_ttl", 300)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.AutomaticEnv()

	bindings := map[string]string{
		"db.host":       "DB_HOST",
		"db.port":       "DB_PORT",
		"db.user":       "DB_USER",
		"db.password":   "DB_PASSWORD",
		"db.name":       "DB_NAME",
		"server.port":   "PORT",
		"redis.address": "REDIS_ADDRESS",
		"llm.api_key":   "OPENROUTER_API_KEY",
		"llm.base_url":  "OPENROUTER_BASE_URL",
		"llm.model":     "OPENROUTER_MODEL",
		"auth.secret":   "JWT_SECRET",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  time.Duration(viper.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("server.write_timeout")) * time.Second,
			CORSOrigins:  viper.GetString("server.cors_origins"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			BaseURL: viper.GetString("llm.base_url"),
			APIKey:  viper.GetString("llm.api_key"),
			Model:   viper.GetString("llm.model"),
			Timeout: time.Duration(viper.GetInt("llm.timeout")) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:      viper.GetString("auth.secret"),
			AccessTokenTTL: time.Duration(viper.GetInt("auth.access_token_ttl")) * time.Hour,
		},
		Cache: CacheConfig{
			PendingQuizTTL: time.Duration(viper.GetInt("cache.pending_quiz_ttl")) * time.Second,
			CourseListTTL:  time.Duration(viper.GetInt("cache.course_list_ttl")) * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	return cfg, nil
}

// GetDSN builds a Postgres connection string for the pgx stdlib driver.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
