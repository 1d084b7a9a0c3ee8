// Package config содержит логику чтения конфигурации гаражного сервиса.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

const defaultWeatherAddress = "https://api.openweathermap.org"

// Config содержит параметры конфигурации гаражного сервиса.
type Config struct {
	RunAddress     string `env:"RUN_ADDRESS"`
	DatabaseURI    string `env:"DATABASE_URI"`
	RedisAddress   string `env:"REDIS_ADDRESS"`
	WeatherAPIKey  string `env:"WEATHER_API_KEY"`
	WeatherAddress string `env:"WEATHER_ADDRESS"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envRedisAddress := cfg.RedisAddress
	envWeatherAPIKey := cfg.WeatherAPIKey
	envWeatherAddress := cfg.WeatherAddress

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI for fleet snapshots")
	flag.StringVar(&cfg.RedisAddress, "r", "", "redis address for fleet snapshots")
	flag.StringVar(&cfg.WeatherAPIKey, "k", "", "OpenWeatherMap API key")
	flag.StringVar(&cfg.WeatherAddress, "w", defaultWeatherAddress, "OpenWeatherMap API address")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envRedisAddress != "" {
		cfg.RedisAddress = envRedisAddress
	}
	if envWeatherAPIKey != "" {
		cfg.WeatherAPIKey = envWeatherAPIKey
	}
	if envWeatherAddress != "" {
		cfg.WeatherAddress = envWeatherAddress
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.WeatherAddress == "" {
		cfg.WeatherAddress = defaultWeatherAddress
	}

	return cfg, nil
}
