package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
// Загружается один раз при старте и дальше не изменяется, в том числе
// секрет подписи токенов.
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL,required"`
	ServerPort     string `env:"SERVER_PORT"`
	MigrationsPath string `env:"MIGRATIONS_PATH"`

	// Настройки токенов доступа
	SecretKey string        `env:"SECRET_KEY,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL"`

	// Настройки хранения изображений
	UploadDir     string `env:"UPLOAD_DIR"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	// Вручную устанавливаем значения по умолчанию
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "internal/database/migrations"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads/seashells"
	}
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = 5 * 1024 * 1024 // 5 MiB
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	return &cfg, nil
}
