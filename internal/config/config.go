package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const (
	defaultPort         = "8080"
	defaultDatabaseURL  = "parvarish.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultSessionTTL   = "720h"
	defaultCookieSecure = "false"
	defaultLogLevel     = "info"
)

type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	JWTSecret          string
	SessionTTL         time.Duration
	CookieSecure       bool
	CORSAllowedOrigins []string
	LogLevel           string
}

// fileConfig mirrors the keys accepted in CONFIG_FILE. Durations and bools
// are kept as strings so they go through the same parsing as env values.
type fileConfig struct {
	AppEnv             string   `yaml:"app_env"`
	Port               string   `yaml:"port"`
	DatabaseURL        string   `yaml:"database_url"`
	JWTSecret          string   `yaml:"jwt_secret"`
	SessionTTL         string   `yaml:"session_ttl"`
	CookieSecure       string   `yaml:"cookie_secure"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	LogLevel           string   `yaml:"log_level"`
}

// Load reads CONFIG_FILE (optional YAML) first, then lets environment
// variables override it, then falls back to development defaults.
func Load() (*Config, error) {
	var fc fileConfig
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	appEnv := getEnv("APP_ENV", fc.AppEnv)
	if appEnv == "" {
		appEnv = getEnv("ENV", "dev")
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(appEnv))

	cfg.Port = strings.TrimSpace(getEnv("PORT", or(fc.Port, defaultPort)))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", or(fc.DatabaseURL, defaultDatabaseURL)))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", or(fc.JWTSecret, defaultJWTSecret)))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", or(fc.LogLevel, defaultLogLevel)))

	var err error
	cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", or(fc.SessionTTL, defaultSessionTTL))
	if err != nil {
		return nil, err
	}
	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", or(fc.CookieSecure, defaultCookieSecure))

	cfg.CORSAllowedOrigins = fc.CORSAllowedOrigins
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		cfg.CORSAllowedOrigins = splitList(extra)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == defaultJWTSecret {
		log.Warn().Msg("JWT_SECRET is the built-in development default; set it before deploying")
	}
	if cfg.DatabaseURL == defaultDatabaseURL {
		log.Warn().Str("database_url", cfg.DatabaseURL).Msg("DATABASE_URL not set, using local SQLite file")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func or(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
