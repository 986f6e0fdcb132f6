package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	FaceAPI   FaceAPIConfig
	Matching  MatchingConfig
	Scheduler SchedulerConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

type JWTConfig struct {
	Secret string
}

type FaceAPIConfig struct {
	BaseURL string // Base URL of the face signature service
	Enabled bool   // Enable/disable face processing
}

type MatchingConfig struct {
	Threshold float64 // Maximum Euclidean distance for a match
}

type SchedulerConfig struct {
	DailySummaryEnabled bool
	DailySummaryCron    string
}

type RateLimitConfig struct {
	Enabled           bool
	MaxRequests       int
	WindowSeconds     int
	AuthMaxRequests   int
	AuthWindowSeconds int
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists (optional for production)
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	threshold, err := strconv.ParseFloat(getEnv("MATCH_THRESHOLD", "0.6"), 64)
	if err != nil || threshold <= 0 {
		threshold = 0.6
	}

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "FaceAttend"),
			Port: getEnv("APP_PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "faceattend"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			Enabled:  getEnv("REDIS_ENABLED", "true") == "true",
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		FaceAPI: FaceAPIConfig{
			BaseURL: getEnv("FACE_API_URL", "http://localhost:5000"),
			Enabled: getEnv("FACE_API_ENABLED", "true") == "true",
		},
		Matching: MatchingConfig{
			Threshold: threshold,
		},
		Scheduler: SchedulerConfig{
			DailySummaryEnabled: getEnv("DAILY_SUMMARY_ENABLED", "true") == "true",
			DailySummaryCron:    getEnv("DAILY_SUMMARY_CRON", "5 0 * * *"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnv("RATE_LIMIT_ENABLED", "true") == "true",
			MaxRequests:       atoiOr(getEnv("RATE_LIMIT_MAX_REQUESTS", "100"), 100),
			WindowSeconds:     atoiOr(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"), 60),
			AuthMaxRequests:   atoiOr(getEnv("RATE_LIMIT_AUTH_MAX_REQUESTS", "10"), 10),
			AuthWindowSeconds: atoiOr(getEnv("RATE_LIMIT_AUTH_WINDOW_SECONDS", "60"), 60),
		},
	}

	return config, nil
}

func atoiOr(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
