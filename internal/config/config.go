package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// http server config
	APP_PORT string
	// elasticsearch config
	ES_URL          string
	ES_INDEX        string
	ES_EMAIL_INDEX  string
	ES_REQUEST_SIZE int
	// upload config
	UPLOAD_DIR      string
	UPLOAD_MAX_SIZE int64
	// auth config
	JWT_SECRET     string
	TOKEN_TTL      time.Duration
	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
	// logger config
	LOG_FILE_PATH string
}

func LoadEnvConfig() error {
	// A missing .env file is fine; the process environment still applies.
	_ = godotenv.Load()

	DefaultEnvConfig = &envConfig{
		APP_PORT:        getEnvString("APP_PORT", "5000"),
		ES_URL:          getEnvString("ES_URL", "http://localhost:9200"),
		ES_INDEX:        getEnvString("ES_INDEX", "employees"),
		ES_EMAIL_INDEX:  getEnvString("ES_EMAIL_INDEX", "employee_emails"),
		ES_REQUEST_SIZE: getEnvInt("ES_REQUEST_SIZE", 1000),
		UPLOAD_DIR:      getEnvString("UPLOAD_DIR", "uploads"),
		UPLOAD_MAX_SIZE: getEnvInt64("UPLOAD_MAX_SIZE", 5*1024*1024),
		JWT_SECRET:      getEnvString("JWT_SECRET", ""),
		TOKEN_TTL:       getEnvDuration("TOKEN_TTL", 24*time.Hour),
		ADMIN_EMAIL:     getEnvString("ADMIN_EMAIL", "admin@example.com"),
		ADMIN_PASSWORD:  getEnvString("ADMIN_PASSWORD", ""),
		LOG_FILE_PATH:   getEnvString("LOG_FILE_PATH", ""),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
