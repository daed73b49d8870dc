package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string
	Port            string
	Domain          string
	DBURL           string
	JWTSecret       string
	AccessExpiryMin int
	ResetExpiryMin  int
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPass        string
	SMTPFrom        string
}

func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Env:             getEnv("ENV", "development"),
		Port:            getEnv("PORT", "5001"),
		Domain:          getEnv("DOMAIN", "http://localhost:5001"),
		DBURL:           mustGetEnv("DB_URL"),
		JWTSecret:       mustGetEnv("JWT_SECRET"),
		AccessExpiryMin: getEnvAsInt("ACCESS_TOKEN_EXPIRY", 30),
		ResetExpiryMin:  getEnvAsInt("RESET_TICKET_EXPIRY", 60),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:        getEnv("SMTP_USER", ""),
		SMTPPass:        getEnv("SMTP_PASS", ""),
		SMTPFrom:        getEnv("SMTP_FROM", "no-reply@contact-management.local"),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
