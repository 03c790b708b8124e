// Package config loads application settings from an optional YAML file,
// a .env file and environment variables, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
	"github.com/mmynk/nutritrack/internal/storage/filesystem"
	"github.com/mmynk/nutritrack/internal/storage/memory"
	"github.com/mmynk/nutritrack/internal/storage/sqlite"
)

// Environments.
const (
	EnvTest        = "test"
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage backends.
const (
	BackendMemory     = "memory"
	BackendFilesystem = "filesystem"
	BackendSQLite     = "sqlite"
)

// Config holds every runtime setting.
type Config struct {
	Env     string        `yaml:"env"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	FoodDB  FoodDBConfig  `yaml:"fooddb"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	StaticPath     string   `yaml:"static_path"`
	ImagesPath     string   `yaml:"images_path"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type StorageConfig struct {
	// Backend is memory, filesystem or sqlite. Empty picks one from Env.
	Backend string `yaml:"backend"`
	// DataDir holds the filesystem documents or the sqlite database file.
	DataDir string `yaml:"data_dir"`
}

type AuthConfig struct {
	JWTSecret      string  `yaml:"jwt_secret"`
	TokenTTLDays   int     `yaml:"token_ttl_days"`
	SecureCookie   bool    `yaml:"secure_cookie"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

type FoodDBConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads path (if non-empty), then .env (if present), then the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Env, "APP_ENV")
	setInt(&c.Server.Port, "PORT")
	setString(&c.Server.StaticPath, "STATIC_PATH")
	setString(&c.Server.ImagesPath, "IMAGES_PATH")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	setString(&c.Storage.Backend, "STORAGE_BACKEND")
	setString(&c.Storage.DataDir, "DATA_DIR")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setInt(&c.Auth.TokenTTLDays, "TOKEN_TTL_DAYS")
	if v := os.Getenv("SECURE_COOKIE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Auth.SecureCookie = b
		}
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Auth.RateLimitRPS = f
		}
	}
	setInt(&c.Auth.RateLimitBurst, "RATE_LIMIT_BURST")
	setString(&c.FoodDB.BaseURL, "FOODDB_BASE_URL")
	setInt(&c.FoodDB.TimeoutSeconds, "FOODDB_TIMEOUT_SECONDS")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
}

func (c *Config) applyDefaults() {
	if c.Env == "" {
		c.Env = EnvDevelopment
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.StaticPath == "" {
		c.Server.StaticPath = "./static"
	}
	if c.Server.ImagesPath == "" {
		c.Server.ImagesPath = "./data/images"
	}
	if c.Storage.Backend == "" {
		switch c.Env {
		case EnvTest:
			c.Storage.Backend = BackendMemory
		case EnvProduction:
			c.Storage.Backend = BackendSQLite
		default:
			c.Storage.Backend = BackendFilesystem
		}
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "./data"
	}
	if c.Auth.TokenTTLDays == 0 {
		c.Auth.TokenTTLDays = 7
	}
	if c.Auth.RateLimitRPS == 0 {
		c.Auth.RateLimitRPS = 1
	}
	if c.Auth.RateLimitBurst == 0 {
		c.Auth.RateLimitBurst = 5
	}
	if c.FoodDB.TimeoutSeconds == 0 {
		c.FoodDB.TimeoutSeconds = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Env == EnvTest && c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = "test-secret"
	}
}

// Validate reports misconfiguration as an infrastructure error.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvTest, EnvDevelopment, EnvProduction:
	default:
		return models.Infrastructuref("unknown environment %q", c.Env)
	}
	switch c.Storage.Backend {
	case BackendMemory, BackendFilesystem, BackendSQLite:
	default:
		return models.Infrastructuref("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Auth.JWTSecret == "" {
		return models.Infrastructuref("JWT_SECRET is required in the %s environment", c.Env)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return models.Infrastructuref("invalid port %d", c.Server.Port)
	}
	if c.Auth.TokenTTLDays < 0 {
		return models.Infrastructuref("token ttl must be positive, got %d days", c.Auth.TokenTTLDays)
	}
	return nil
}

// TokenTTL is the session lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLDays) * 24 * time.Hour
}

// FoodDBTimeout is the food database request timeout.
func (c *Config) FoodDBTimeout() time.Duration {
	return time.Duration(c.FoodDB.TimeoutSeconds) * time.Second
}

// OpenStorage opens the configured backend. The caller closes it.
func (c *Config) OpenStorage() (storage.Backend, error) {
	switch c.Storage.Backend {
	case BackendMemory:
		return memory.New(), nil
	case BackendFilesystem:
		return filesystem.New(c.Storage.DataDir)
	case BackendSQLite:
		return sqlite.New(filepath.Join(c.Storage.DataDir, "nutritrack.db"))
	default:
		return nil, models.Infrastructuref("unknown storage backend %q", c.Storage.Backend)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
