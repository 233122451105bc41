package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "time/tzdata"

	"github.com/joho/godotenv"

	util "attendance-tracker/pkg/utils"
)

type AppConfig struct {
	Port           string
	MongoString    string
	DBName         string
	PasetoSecret   string
	TokenTTL       time.Duration
	Timezone       string
	Location       *time.Location
	AllowedOrigins []string
	LogLevel       string
	Development    bool

	// GeneratedSecret is set when PASETO_SECRET was missing and a random key
	// was created for this process.
	GeneratedSecret bool
}

// LoadConfig loads configuration from .env and the environment.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file (might not exist in production): %v", err)
	}

	cfg := &AppConfig{
		Port:        getEnv("PORT", "5000"),
		MongoString: getEnv("MONGOSTRING", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "attendance-tracker"),
		Timezone:    getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "production") == "development",
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	cfg.PasetoSecret = getEnv("PASETO_SECRET", "")
	if cfg.PasetoSecret == "" {
		cfg.PasetoSecret, err = util.GenerateTokenSecret()
		if err != nil {
			return nil, err
		}
		cfg.GeneratedSecret = true
	}
	if _, err := DecodeSecret(cfg.PasetoSecret); err != nil {
		return nil, err
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg, nil
}

// DecodeSecret accepts URL-safe base64 with or without padding, or standard
// base64, and requires a key of util.TokenKeySize bytes.
func DecodeSecret(secret string) ([]byte, error) {
	key, err := base64.URLEncoding.DecodeString(secret)
	if err != nil {
		key, err = base64.RawURLEncoding.DecodeString(secret)
		if err != nil {
			key, err = base64.StdEncoding.DecodeString(secret)
			if err != nil {
				return nil, fmt.Errorf("PASETO_SECRET is not valid base64: %w", err)
			}
		}
	}
	if len(key) != util.TokenKeySize {
		return nil, fmt.Errorf("PASETO_SECRET (decoded) must be exactly %d bytes long, got %d", util.TokenKeySize, len(key))
	}
	return key, nil
}

// Helper function to get environment variable or fallback to default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
