package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName      string
	AppEnv       string
	AppPort      string
	DatabaseURL  string
	RedisURL     string
	JWTSecret    string
	JudgeHost    string
	JudgeAPIKey  string
	JudgeTimeout time.Duration
	TestCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EXAMIDE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "ExamIDE API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("judge.host", "judge0-ce.p.rapidapi.com")
	v.SetDefault("judge.timeout", "10s")
	v.SetDefault("test.cache_ttl", "5m")

	judgeTimeout, err := time.ParseDuration(v.GetString("judge.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid judge timeout: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("test.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid test cache ttl: %w", err)
	}

	cfg := Config{
		AppName:      v.GetString("app.name"),
		AppEnv:       v.GetString("app.env"),
		AppPort:      v.GetString("app.port"),
		DatabaseURL:  v.GetString("database.url"),
		RedisURL:     v.GetString("redis.url"),
		JWTSecret:    v.GetString("jwt.secret"),
		JudgeHost:    v.GetString("judge.host"),
		JudgeAPIKey:  v.GetString("judge.api_key"),
		JudgeTimeout: judgeTimeout,
		TestCacheTTL: cacheTTL,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.JudgeAPIKey == "" {
		return Config{}, fmt.Errorf("judge api key must be provided")
	}

	if cfg.JudgeTimeout <= 0 {
		cfg.JudgeTimeout = 10 * time.Second
	}

	return cfg, nil
}
