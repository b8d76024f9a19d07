// Package config загружает конфигурацию сервера из окружения.
// Переменные окружения перекрывают .env файл.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// MinJWTSecretLen минимальная длина секрета подписи токенов
	MinJWTSecretLen = 16
)

// Config содержит настройки сервера синхронизации
type Config struct {
	ListenAddr      string        // адрес HTTP listener-а
	DatabasePath    string        // путь к файлу SQLite
	JWTSecret       string        // секрет подписи access token-ов
	LogLevel        string        // DEBUG / INFO / WARN / ERROR
	LogFormat       string        // TEXT / JSON
	AccessTokenTTL  time.Duration // время жизни access token-а
	ShutdownTimeout time.Duration // таймаут graceful shutdown
	RateLimit       int           // запросов на IP в RateWindow
	RateWindow      time.Duration
	LoginRateLimit  int // отдельный, жесткий лимит на логин
	LoginRateWindow time.Duration
}

// Load читает конфигурацию из .env и окружения.
// Возвращает ошибку, если не задан JWT_SECRET: сервер с дефолтным
// секретом подписи недопустим даже в разработке.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := getEnv("JWT_SECRET", "")
	if len(secret) < MinJWTSecretLen {
		return nil, fmt.Errorf("JWT_SECRET must be set and at least %d characters long", MinJWTSecretLen)
	}

	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		DatabasePath:    getEnv("DATABASE_PATH", "labsync.db"),
		JWTSecret:       secret,
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		LogFormat:       getEnv("LOG_FORMAT", "TEXT"),
		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MIN", 60)) * time.Minute,
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
		RateLimit:       getEnvInt("RATE_LIMIT", 300),
		RateWindow:      time.Duration(getEnvInt("RATE_WINDOW_SEC", 60)) * time.Second,
		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: time.Duration(getEnvInt("LOGIN_RATE_WINDOW_SEC", 60)) * time.Second,
	}, nil
}

// SlogLevel конвертирует LogLevel в slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
