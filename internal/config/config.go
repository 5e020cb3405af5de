package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"debug"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8082"`

	// PostgreSQL (account rows and follow log rows)
	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" required:"true"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	// Secret field, loaded from a secret file rather than the environment.
	DBPassword string

	// Redis (account snapshot cache)
	RedisAddr    string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB      int           `envconfig:"REDIS_DB" default:"0"`
	UserCacheTTL time.Duration `envconfig:"USER_CACHE_TTL" default:"1h"`
	// Secret field, loaded from a secret file rather than the environment.
	RedisPassword string

	// CORS Settings
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// LoadConfig loads configuration from environment variables and secrets.
func LoadConfig(envFilePath string) (*Config, error) {
	if _, err := os.Stat(envFilePath); err == nil {
		if err := godotenv.Load(envFilePath); err != nil {
			log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
		} else {
			log.Printf("Loaded configuration from %s", envFilePath)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	var loadErr error
	cfg.DBPassword, loadErr = ReadSecret("db_password")
	if loadErr != nil {
		return nil, loadErr
	}

	// Redis auth is optional; an absent secret means no password.
	redisPass, err := ReadSecret("redis_password")
	if err == nil {
		cfg.RedisPassword = redisPass
		log.Println("Redis password loaded from secret.")
	} else {
		log.Printf("Optional secret 'redis_password' not found or failed to read: %v. Assuming no password.", err)
	}

	log.Println("Configuration loaded successfully (secrets read from files).")
	return &cfg, nil
}
