package config

import "os"

type Config struct {
	Port       string
	JWTSecret  string
	APIBaseURL string
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8082"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		APIBaseURL: getEnv("ORDERDESK_API_URL", "http://localhost:8082"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
