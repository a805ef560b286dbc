// Package config loads server settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/draw"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/grouping"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/storage/sqlite"
)

type Config struct {
	// Web Server
	Addr        string
	StaticPath  string
	CORSOrigins []string

	// Storage
	DBPath string

	// Session tokens
	JWTSecret string
	TokenTTL  time.Duration

	// Draw animation
	DrawTicks    int
	DrawInterval time.Duration

	// Grouping
	GroupDelay       time.Duration
	DefaultGroupSize int

	// Logging
	LogLevel string
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:        getEnvDefault("ADDR", ":8080"),
		StaticPath:  os.Getenv("STATIC_PATH"),
		CORSOrigins: splitList(getEnvDefault("CORS_ORIGINS", "*")),
		DBPath:      getEnvDefault("DB_PATH", sqlite.MemoryPath),
		JWTSecret:   getEnvDefault("JWT_SECRET", "dev-only-change-me"),
		LogLevel:    getEnvDefault("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.DrawTicks, err = intEnv("DRAW_TICKS", draw.DefaultTicks); err != nil {
		return nil, err
	}
	if cfg.DrawInterval, err = durationEnv("DRAW_INTERVAL", draw.DefaultInterval); err != nil {
		return nil, err
	}
	if cfg.GroupDelay, err = durationEnv("GROUP_DELAY", grouping.DefaultDelay); err != nil {
		return nil, err
	}
	if cfg.DefaultGroupSize, err = intEnv("DEFAULT_GROUP_SIZE", grouping.DefaultGroupSize); err != nil {
		return nil, err
	}

	if cfg.DrawTicks < 1 {
		return nil, fmt.Errorf("DRAW_TICKS must be at least 1, got %d", cfg.DrawTicks)
	}
	if cfg.DrawInterval <= 0 {
		return nil, fmt.Errorf("DRAW_INTERVAL must be positive, got %s", cfg.DrawInterval)
	}
	if cfg.GroupDelay <= 0 {
		return nil, fmt.Errorf("GROUP_DELAY must be positive, got %s", cfg.GroupDelay)
	}
	if cfg.DefaultGroupSize < 1 {
		return nil, fmt.Errorf("DEFAULT_GROUP_SIZE must be at least 1, got %d", cfg.DefaultGroupSize)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
