package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DatabasePath string
	LogLevel     string

	// Query-cache tuning for the read interface.
	CacheExpiry          time.Duration
	CacheCleanupInterval time.Duration

	// Files larger than this are skipped during directory scans.
	MaxFileSizeBytes int64
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	maxFileSizeBytesStr := getEnv("MAX_FILE_SIZE_BYTES", "10485760")
	maxFileSizeBytes, err := strconv.ParseInt(maxFileSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_FILE_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxFileSizeBytesStr, err)
		maxFileSizeBytes = 10 * 1024 * 1024
	}

	Cfg = &AppConfig{
		DatabasePath:         getEnv("DATABASE_PATH", "./finsift.db"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		CacheExpiry:          getEnvAsDuration("CACHE_EXPIRY", 5*time.Minute),
		CacheCleanupInterval: getEnvAsDuration("CACHE_CLEANUP_INTERVAL", 10*time.Minute),
		MaxFileSizeBytes:     maxFileSizeBytes,
	}

	log.Printf("Configuration loaded: LogLevel=%s, DBPath=%s", Cfg.LogLevel, Cfg.DatabasePath)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
