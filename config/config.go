package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	MongoURI  string
	MongoDb   string
	JWTSecret string

	S3Bucket string
	S3Region string

	FeedPageSize int64
}

// Load reads .env if present and falls back to sane local defaults.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		MongoURI:     getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDb:      getEnv("MONGODB_DATABASE", "bloom"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret"),
		S3Bucket:     getEnv("S3_BUCKET", "bloom-media"),
		S3Region:     getEnv("S3_REGION", "us-east-1"),
		FeedPageSize: getEnvInt64("FEED_PAGE_SIZE", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
