package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Record source kinds
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceMock     = "mock"
)

// Config holds the application settings
type Config struct {
	Port          string
	Env           string
	Source        string
	DataBaseURL   string
	DatabaseURL   string
	FetchTimeout  time.Duration
	CacheSize     int
	HexResolution int
}

// Load reads .env if present, then the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment only
func FromEnv() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("GO_ENV", "development"),
		Source:        getEnv("SOURCE", SourceHTTP),
		DataBaseURL:   getEnv("DATA_BASE_URL", "https://raw.githubusercontent.com/Maplub/odsample/master"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		FetchTimeout:  getDuration("FETCH_TIMEOUT", 60*time.Second),
		CacheSize:     getInt("CACHE_SIZE", 5),
		HexResolution: getInt("HEX_RESOLUTION", 9),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}
