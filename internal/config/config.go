package config

import (
	"os"
	"strconv"
)

const (
	// Upload limits for game archives.
	MaxUploadBytes = 100 * 1024 * 1024
)

type Config struct {
	Port           string
	DatabaseURL    string
	SessionSecret  string
	UploadDir      string
	BootstrapAdmin bool
	AdminEmail     string
	AdminPassword  string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SessionSecret:  getEnv("SESSION_SECRET", "secret_key_change_me"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		BootstrapAdmin: getBoolEnv("ADMIN_BOOTSTRAP"),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
