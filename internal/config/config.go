package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Store    StoreConfig
	Cache    CacheConfig
	Seed     SeedConfig
	S3       S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string
}

// StoreConfig holds storefront display configuration.
type StoreConfig struct {
	Name string
}

// CacheConfig holds Redis listing cache configuration.
type CacheConfig struct {
	Enabled  bool
	URL      string
	Password string
	DB       int
	TTL      int // seconds
}

// SeedConfig holds catalogue fixture import configuration.
type SeedConfig struct {
	File string // Imported on start when set
}

// S3Config holds AWS S3 configuration for catalogue fixtures.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "catalog/")
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first when present;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "shoestore"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Store: StoreConfig{
			Name: getEnv("STORE_NAME", "Sole&Ankle"),
		},
		Cache: CacheConfig{
			Enabled:  getEnvAsBool("CACHE_ENABLED", false),
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsInt("CACHE_TTL", 60),
		},
		Seed: SeedConfig{
			File: getEnv("SEED_FILE", ""),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "catalog/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Database.validate(),
		c.Auth.validate(),
		c.Logger.validate(),
		c.Cache.validate(),
		c.S3.validate(),
	)
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Port)
	}
	return nil
}

func (c *DatabaseConfig) validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("database host is required"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid database port: %d", c.Port))
	}
	if c.User == "" {
		errs = append(errs, errors.New("database user is required"))
	}
	if c.Database == "" {
		errs = append(errs, errors.New("database name is required"))
	}
	if c.MaxConnections < 1 {
		errs = append(errs, errors.New("database max connections must be at least 1"))
	}
	if c.MinConnections < 1 {
		errs = append(errs, errors.New("database min connections must be at least 1"))
	}
	if c.MinConnections > c.MaxConnections {
		errs = append(errs, errors.New("database min connections cannot exceed max connections"))
	}
	return errors.Join(errs...)
}

func (c *AuthConfig) validate() error {
	if c.APIKey == "" {
		return errors.New("API key is required")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func (c *LoggerConfig) validate() error {
	var errs []error
	if !validLogLevels[c.Level] {
		errs = append(errs, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level))
	}
	if c.Format != "json" && c.Format != "console" {
		errs = append(errs, fmt.Errorf("invalid log format: %s (must be json or console)", c.Format))
	}
	return errors.Join(errs...)
}

// validate only applies when the listing cache is enabled.
func (c *CacheConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("redis URL is required when cache is enabled"))
	}
	if c.TTL < 1 {
		errs = append(errs, errors.New("cache TTL must be at least 1 second"))
	}
	if c.DB < 0 {
		errs = append(errs, fmt.Errorf("invalid redis DB: %d", c.DB))
	}
	return errors.Join(errs...)
}

func (c *S3Config) validate() error {
	if !c.Enabled {
		return nil
	}
	var errs []error
	if c.Bucket == "" {
		errs = append(errs, errors.New("S3 bucket is required when S3 is enabled"))
	}
	if c.Region == "" {
		errs = append(errs, errors.New("S3 region is required when S3 is enabled"))
	}
	return errors.Join(errs...)
}

// ConnectionString returns the PostgreSQL URL with credentials escaped.
func (c *DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// TTLDuration returns the cache TTL as a duration.
func (c *CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// Address returns the listen address.
func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
