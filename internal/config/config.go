package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmuslimabdulj/likechat/internal/domain"
)

// Store drivers
const (
	StoreDriverFile   = "file"
	StoreDriverSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port            string
	ShutdownTimeout time.Duration

	// Security
	AllowedOrigins    []string
	AdminPassword     string
	AdminPasswordHash string // bcrypt, takes precedence over AdminPassword

	// Logging
	LogLevel string

	// WebSocket
	MaxMessageSize int

	// History
	MaxLogSize        int
	RecentMessages    int
	PersistedMessages int

	// Persistence
	StoreDriver  string
	DataFile     string
	SQLitePath   string
	SaveInterval time.Duration
	SaveRate     float64 // max background writes per second
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Port:              "3000",
		ShutdownTimeout:   domain.ShutdownTimeout,
		AllowedOrigins:    []string{"http://localhost:3000", "http://localhost:8080"},
		AdminPassword:     "",
		LogLevel:          "info", // Options: debug, info, warn, error, silent
		MaxMessageSize:    domain.MaxMessageSize,
		MaxLogSize:        domain.MaxLogSize,
		RecentMessages:    domain.RecentMessagesLimit,
		PersistedMessages: domain.PersistedMessagesLimit,
		StoreDriver:       StoreDriverFile,
		DataFile:          "database.json",
		SQLitePath:        "likechat.db",
		SaveInterval:      domain.SaveInterval,
		SaveRate:          4,
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	// Server
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if secs := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); secs != "" {
		if val, err := strconv.Atoi(secs); err == nil && val > 0 {
			cfg.ShutdownTimeout = time.Duration(val) * time.Second
		}
	}

	// Security
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = parseOrigins(origins)
	}

	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		cfg.AdminPassword = pw
	}

	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		cfg.AdminPasswordHash = hash
	}

	// Logging
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	// WebSocket
	if size := os.Getenv("MAX_MESSAGE_SIZE"); size != "" {
		if val, err := strconv.Atoi(size); err == nil && val > 0 {
			cfg.MaxMessageSize = val
		}
	}

	// History
	if size := os.Getenv("MAX_LOG_SIZE"); size != "" {
		if val, err := strconv.Atoi(size); err == nil && val > 0 {
			cfg.MaxLogSize = val
		}
	}

	if n := os.Getenv("RECENT_MESSAGES"); n != "" {
		if val, err := strconv.Atoi(n); err == nil && val > 0 {
			cfg.RecentMessages = val
		}
	}

	if n := os.Getenv("PERSISTED_MESSAGES"); n != "" {
		if val, err := strconv.Atoi(n); err == nil && val > 0 {
			cfg.PersistedMessages = val
		}
	}

	// Persistence
	if driver := os.Getenv("STORE_DRIVER"); driver != "" {
		switch strings.ToLower(driver) {
		case StoreDriverFile, StoreDriverSQLite:
			cfg.StoreDriver = strings.ToLower(driver)
		}
	}

	if path := os.Getenv("DATA_FILE"); path != "" {
		cfg.DataFile = path
	}

	if path := os.Getenv("SQLITE_PATH"); path != "" {
		cfg.SQLitePath = path
	}

	if secs := os.Getenv("SAVE_INTERVAL_SECONDS"); secs != "" {
		if val, err := strconv.Atoi(secs); err == nil && val > 0 {
			cfg.SaveInterval = time.Duration(val) * time.Second
		}
	}

	if r := os.Getenv("SAVE_RATE"); r != "" {
		if val, err := strconv.ParseFloat(r, 64); err == nil && val > 0 {
			cfg.SaveRate = val
		}
	}

	return cfg
}

// IsSilent reports whether logging is switched off
func (c *Config) IsSilent() bool {
	return c.LogLevel == "silent" || c.LogLevel == "off"
}

// IsOriginAllowed checks if the origin is in the allowed list.
// Empty origin is allowed (same-origin and non-browser clients).
func (c *Config) IsOriginAllowed(origin string) bool {
	if origin == "" {
		return true
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || origin == allowed {
			return true
		}
	}
	return false
}

// parseOrigins parses comma-separated origins
func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
