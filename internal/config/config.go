package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the server reads from the environment. Secrets
// are required; the rest has workable defaults.
type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	JWTSecret       string
	StripeSecretKey string
	StripeBaseURL   string
}

// Load reads .env if present and builds the config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env: %s", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "5000"),
		MongoURI:        os.Getenv("MONGOURI"),
		DBName:          getEnv("DB_NAME", "photographyDB"),
		JWTSecret:       os.Getenv("JWT_TOKEN_SECRET"),
		StripeSecretKey: os.Getenv("PAYMENT_SECRET_KEY"),
		StripeBaseURL:   getEnv("STRIPE_BASE_URL", "https://api.stripe.com"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGOURI environment variable not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_TOKEN_SECRET environment variable not set")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("PAYMENT_SECRET_KEY environment variable not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
