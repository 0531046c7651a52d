package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config collects every environment setting the app reads.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
}

// C is the loaded configuration, set by Load at startup.
var C Config

// Load reads .env when present and falls back to the process
// environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	C = Config{
		Port:        getEnv("PORT", "8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   getEnv("JWT_SECRET", "solid_secret_key"),
	}
	return C
}

// JWTSecret returns the token signing secret, reading the environment
// directly when Load has not run yet.
func JWTSecret() string {
	if C.JWTSecret != "" {
		return C.JWTSecret
	}
	return getEnv("JWT_SECRET", "solid_secret_key")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
