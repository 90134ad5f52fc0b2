package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables.
// A .env file in the working directory is read first when present.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Upload   UploadConfig
	Auth     AuthConfig
	Session  SessionConfig
	Site     SiteConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	CORSOrigins     []string
}

type DatabaseConfig struct {
	Driver string // sqlite, postgres or mysql
	URL    string
}

type UploadConfig struct {
	Backend       string // local or cloudinary
	Dir           string
	CloudinaryURL string
	MaxSizeMB     int
}

// AuthConfig describes the single admin account.
// PasswordHash is a bcrypt hash; Password is a plain-text fallback for local development
// and is hashed once at startup.
type AuthConfig struct {
	Username           string
	PasswordHash       string
	Password           string
	LoginRatePerMinute int
}

type SessionConfig struct {
	Secret string
	MaxAge int // seconds, 0 keeps the cookie for the browser session with no server-side expiry
	Secure bool
}

type SiteConfig struct {
	ContactNumber string
	ExposeErrors  bool
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	UploadLocal      = "local"
	UploadCloudinary = "cloudinary"

	minSessionSecretLen = 32
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			CORSOrigins:     getEnvAsSlice("CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			URL:    getEnv("DATABASE_URL", "cardapio.db"),
		},
		Upload: UploadConfig{
			Backend:       strings.ToLower(getEnv("UPLOAD_BACKEND", UploadLocal)),
			Dir:           getEnv("UPLOAD_DIR", "uploads"),
			CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
			MaxSizeMB:     getEnvAsInt("MAX_UPLOAD_MB", 8),
		},
		Auth: AuthConfig{
			Username:           getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash:       getEnv("ADMIN_PASSWORD_HASH", ""),
			Password:           getEnv("ADMIN_PASSWORD", ""),
			LoginRatePerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 0),
			Secure: getEnvAsBool("SESSION_SECURE", false),
		},
		Site: SiteConfig{
			ContactNumber: getEnv("CONTACT_NUMBER", "5519986088874"),
			ExposeErrors:  getEnvAsBool("EXPOSE_ERRORS", false),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings, for tools that never serve HTTP
func LoadDatabase() (DatabaseConfig, error) {
	if err := loadDotEnv(); err != nil {
		return DatabaseConfig{}, err
	}
	cfg := databaseFromEnv()
	if err := cfg.Validate(); err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the driver name and connection string
func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("invalid DB_DRIVER: %s (must be sqlite, postgres, or mysql)", c.Driver)
	}
	if c.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if err := c.Database.Validate(); err != nil {
		return err
	}

	switch c.Upload.Backend {
	case UploadLocal:
		if c.Upload.Dir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for the local upload backend")
		}
	case UploadCloudinary:
		if c.Upload.CloudinaryURL == "" {
			return fmt.Errorf("CLOUDINARY_URL is required for the cloudinary upload backend")
		}
	default:
		return fmt.Errorf("invalid UPLOAD_BACKEND: %s (must be local or cloudinary)", c.Upload.Backend)
	}
	if c.Upload.MaxSizeMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}

	if c.Auth.Username == "" {
		return fmt.Errorf("ADMIN_USERNAME is required")
	}
	if c.Auth.PasswordHash == "" && c.Auth.Password == "" {
		return fmt.Errorf("one of ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
	}
	if c.Auth.LoginRatePerMinute < 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must not be negative")
	}

	if len(c.Session.Secret) < minSessionSecretLen {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLen)
	}
	if c.Session.MaxAge < 0 {
		return fmt.Errorf("SESSION_MAX_AGE must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// loadDotEnv reads a .env file from the working directory when present.
// Variables already set in the environment win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env file: %w", err)
	}
	return nil
}

func databaseFromEnv() DatabaseConfig {
	return DatabaseConfig{
		Driver: strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		URL:    getEnv("DATABASE_URL", "cardapio.db"),
	}
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
