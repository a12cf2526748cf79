// Файл: pkg/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type TableConfig struct {
	PageSize int
}

type TransferConfig struct {
	ExportFileName    string
	ExportSheetName   string
	ImportMaxSizeMB   int64
	ImportReadTimeout time.Duration // 0 - без таймаута
}

type LogConfig struct {
	Level string
	File  string
}

type Config struct {
	Server   ServerConfig
	Table    TableConfig
	Transfer TransferConfig
	Log      LogConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Table: TableConfig{
			PageSize: getEnvInt("TABLE_PAGE_SIZE", 10),
		},
		Transfer: TransferConfig{
			ExportFileName:    getEnv("EXPORT_FILE_NAME", "branches.xlsx"),
			ExportSheetName:   getEnv("EXPORT_SHEET_NAME", "Branches"),
			ImportMaxSizeMB:   int64(getEnvInt("IMPORT_MAX_SIZE_MB", 10)),
			ImportReadTimeout: getEnvDuration("IMPORT_READ_TIMEOUT", 0),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "debug"),
			File:  getEnv("LOG_FILE", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		log.Printf("Предупреждение: некорректное значение %s=%q, используется %d", key, value, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
		log.Printf("Предупреждение: некорректное значение %s=%q, используется %s", key, value, fallback)
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
