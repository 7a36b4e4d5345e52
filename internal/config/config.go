package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds process configuration. Values come from an optional YAML
// file, then environment variables (a .env file is loaded first if present).
type Config struct {
	RESTPort string `yaml:"rest_port"`
	WSPort   string `yaml:"ws_port"`

	StatsBaseURL string        `yaml:"stats_base_url"`
	StatsTimeout time.Duration `yaml:"stats_timeout"`
	// Season pins the queried season ("2024-25"); empty derives it from the clock.
	Season string `yaml:"season"`

	RedisURL string `yaml:"redis_url"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	EnableWebSocket    bool     `yaml:"enable_websocket"`
}

// Default returns the built-in defaults
func Default() Config {
	return Config{
		RESTPort:           "8080",
		WSPort:             "8081",
		StatsBaseURL:       "https://stats.nba.com/stats",
		StatsTimeout:       30 * time.Second,
		LogLevel:           "info",
		LogFormat:          "console",
		CORSAllowedOrigins: []string{"*"},
		EnableWebSocket:    true,
	}
}

// Load builds the configuration from defaults, CONFIG_PATH and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional if env vars are set directly
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.RESTPort = getEnv("REST_PORT", c.RESTPort)
	c.WSPort = getEnv("WS_PORT", c.WSPort)
	c.StatsBaseURL = getEnv("NBA_STATS_BASE", c.StatsBaseURL)
	c.Season = getEnv("NBA_SEASON", c.Season)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	if v := os.Getenv("NBA_STATS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid NBA_STATS_TIMEOUT %q: %w", v, err)
		}
		c.StatsTimeout = d
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSAllowedOrigins = splitList(v)
	}

	if v := os.Getenv("ENABLE_WEBSOCKET"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ENABLE_WEBSOCKET %q: %w", v, err)
		}
		c.EnableWebSocket = b
	}

	return nil
}

// Validate checks fields that would otherwise fail late
func (c *Config) Validate() error {
	if c.RESTPort == "" {
		return errors.New("REST_PORT is required")
	}
	if c.EnableWebSocket && c.WSPort == "" {
		return errors.New("WS_PORT is required when the websocket feed is enabled")
	}
	if c.StatsTimeout <= 0 {
		return fmt.Errorf("stats timeout must be positive, got %s", c.StatsTimeout)
	}
	if c.Season != "" && !validSeason(c.Season) {
		return fmt.Errorf("season %q must look like 2024-25", c.Season)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func validSeason(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	start, err := strconv.Atoi(s[:4])
	if err != nil {
		return false
	}
	end, err := strconv.Atoi(s[5:])
	if err != nil {
		return false
	}
	return (start+1)%100 == end
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
