// Package config содержит логику чтения конфигурации клиента витрины и эмулятора бэкенда.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultAPIBaseURL     = "http://localhost:8080/api"
	defaultRequestTimeout = 10 * time.Second
	defaultLogLevel       = "info"
	defaultRunAddress     = "localhost:8080"
)

// Config содержит параметры конфигурации клиента витрины и эмулятора бэкенда.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	AuthToken      string        `env:"AUTH_TOKEN"`
	LogLevel       string        `env:"LOG_LEVEL"`
	RunAddress     string        `env:"RUN_ADDRESS"`
	AuthSecret     string        `env:"AUTH_SECRET"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envCfg := *cfg

	flag.StringVar(&cfg.APIBaseURL, "u", defaultAPIBaseURL, "backend API base URL")
	flag.DurationVar(&cfg.RequestTimeout, "t", defaultRequestTimeout, "backend request timeout")
	flag.StringVar(&cfg.AuthToken, "k", "", "bearer token of the signed-in user")
	flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")
	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for the mock backend")
	flag.StringVar(&cfg.AuthSecret, "s", "", "mock backend token signing secret")

	flag.Parse()

	if envCfg.APIBaseURL != "" {
		cfg.APIBaseURL = envCfg.APIBaseURL
	}
	if envCfg.RequestTimeout != 0 {
		cfg.RequestTimeout = envCfg.RequestTimeout
	}
	if envCfg.AuthToken != "" {
		cfg.AuthToken = envCfg.AuthToken
	}
	if envCfg.LogLevel != "" {
		cfg.LogLevel = envCfg.LogLevel
	}
	if envCfg.RunAddress != "" {
		cfg.RunAddress = envCfg.RunAddress
	}
	if envCfg.AuthSecret != "" {
		cfg.AuthSecret = envCfg.AuthSecret
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}

	return cfg, nil
}
