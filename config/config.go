package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Storage backend names accepted by the STORAGE setting.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	ServerPort      int           `toml:"server_port"`
	LogLevel        string        `toml:"log_level"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	Version         string        `toml:"version"`

	// Persistence gateway
	Storage    string `toml:"storage"`     // memory, redis or sqlite
	RedisURL   string `toml:"redis_url"`   // used when Storage == redis
	SQLitePath string `toml:"sqlite_path"` // used when Storage == sqlite
	StorageKey string `toml:"storage_key"` // single key the task blob lives under

	// Write-behind persistence
	SaveRetries int           `toml:"save_retries"` // attempts per snapshot save
	SaveBackoff time.Duration `toml:"save_backoff"` // initial retry backoff, doubles per attempt

	// Notifications
	Notifications bool `toml:"notifications"` // when false, reminders never fire
}

// LoadConfig loads configuration with sensible defaults. An optional TOML
// file named by MEMORA_CONFIG is applied first; environment variables
// override whatever the file set.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:      8080,
		LogLevel:        "INFO",
		ShutdownTimeout: 15 * time.Second,
		Version:         "1.0.0",
		Storage:         StorageMemory,
		RedisURL:        "redis://localhost:6379",
		SQLitePath:      "memora.db",
		StorageKey:      "tasks",
		SaveRetries:     3,
		SaveBackoff:     250 * time.Millisecond,
		Notifications:   true,
	}

	if path := os.Getenv("MEMORA_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides configuration with environment variables when present.
func (c *Config) applyEnv() {
	c.ServerPort = getEnvInt("PORT", c.ServerPort)
	c.LogLevel = getEnvString("LOG_LEVEL", c.LogLevel)
	c.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.Version = getEnvString("VERSION", c.Version)
	c.Storage = getEnvString("STORAGE", c.Storage)
	c.RedisURL = getEnvString("REDIS_URL", c.RedisURL)
	c.SQLitePath = getEnvString("SQLITE_PATH", c.SQLitePath)
	c.StorageKey = getEnvString("STORAGE_KEY", c.StorageKey)
	c.SaveRetries = getEnvInt("SAVE_RETRIES", c.SaveRetries)
	c.SaveBackoff = getEnvDuration("SAVE_BACKOFF", c.SaveBackoff)
	c.Notifications = getEnvBool("NOTIFICATIONS", c.Notifications)
}

// Address returns the server address in host:port format
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// validate performs basic validation of the configuration
func (c *Config) validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid server port %d: must be between 1 and 65535", c.ServerPort)
	}

	validLevels := map[string]bool{
		"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true,
	}
	upperLevel := strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if !validLevels[upperLevel] {
		return fmt.Errorf("invalid log level '%s': must be DEBUG, INFO, WARN, or ERROR", c.LogLevel)
	}
	c.LogLevel = upperLevel

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout)
	}
	if c.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("invalid shutdown timeout %v: must not exceed 5 minutes", c.ShutdownTimeout)
	}

	if strings.TrimSpace(c.Version) == "" {
		return fmt.Errorf("version cannot be empty")
	}
	c.Version = strings.TrimSpace(c.Version)

	switch c.Storage {
	case StorageMemory:
	case StorageRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("redis URL cannot be empty when storage is %s", StorageRedis)
		}
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("sqlite path cannot be empty when storage is %s", StorageSQLite)
		}
	default:
		return fmt.Errorf("invalid storage '%s': must be %s, %s, or %s", c.Storage, StorageMemory, StorageRedis, StorageSQLite)
	}

	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("storage key cannot be empty")
	}

	if c.SaveRetries < 1 {
		return fmt.Errorf("save retries must be at least 1")
	}
	if c.SaveBackoff <= 0 {
		return fmt.Errorf("invalid save backoff %v: must be positive", c.SaveBackoff)
	}

	return nil
}
