package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	TimeZone    string
	Location    *time.Location

	JWTSecret string
	JWTTTL    time.Duration

	AllowedOrigins []string
	LogLevel       slog.Level

	// Giới hạn gửi phản hồi / đăng nhập theo client
	SubmitRatePerMin int
	SubmitBurst      int

	AllowIncompleteResponses bool
}

// Load đọc .env (nếu có) rồi đọc biến môi trường.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using system environment")
	}

	cfg := &Config{
		Port:           GetEnv("PORT", "8080"),
		TimeZone:       GetEnv("DB_TIMEZONE", "Asia/Ho_Chi_Minh"),
		JWTSecret:      GetEnv("JWT_SECRET"),
		AllowedOrigins: splitList(GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET chưa được thiết lập")
	}

	cfg.DatabaseURL = GetEnv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			GetEnv("DB_HOST", "localhost"),
			GetEnv("DB_USER", "postgres"),
			GetEnv("DB_PASSWORD"),
			GetEnv("DB_NAME", "survey_manager_db"),
			GetEnv("DB_PORT", "5432"),
			GetEnv("DB_SSLMODE", "disable"),
			cfg.TimeZone,
		)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		slog.Warn("unknown time zone, falling back to local", "tz", cfg.TimeZone, "error", err)
		loc = time.Local
	}
	cfg.Location = loc

	if cfg.JWTTTL, err = time.ParseDuration(GetEnv("JWT_TTL", "1h")); err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}
	if cfg.SubmitRatePerMin, err = strconv.Atoi(GetEnv("SUBMIT_RATE_PER_MIN", "10")); err != nil {
		return nil, fmt.Errorf("SUBMIT_RATE_PER_MIN: %w", err)
	}
	if cfg.SubmitBurst, err = strconv.Atoi(GetEnv("SUBMIT_BURST", "5")); err != nil {
		return nil, fmt.Errorf("SUBMIT_BURST: %w", err)
	}
	if cfg.AllowIncompleteResponses, err = strconv.ParseBool(GetEnv("ALLOW_INCOMPLETE_RESPONSES", "false")); err != nil {
		return nil, fmt.Errorf("ALLOW_INCOMPLETE_RESPONSES: %w", err)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(GetEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
