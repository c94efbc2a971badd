package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DevJWTSecret is only accepted outside production
const DevJWTSecret = "pegawe-dev-secret-change-me"

type Config struct {
	Port        string         `yaml:"port"`
	Env         string         `yaml:"env"`
	MetricsPort string         `yaml:"metrics_port"`
	LogLevel    string         `yaml:"log_level"`
	CORSOrigins []string       `yaml:"cors_origins"`
	Database    DatabaseConfig `yaml:"database"`
	Auth        AuthConfig     `yaml:"auth"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite"
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type AuthConfig struct {
	JWTSecret         string        `yaml:"jwt_secret"`
	UserTokenTTL      time.Duration `yaml:"user_token_ttl"`
	AdminTokenTTL     time.Duration `yaml:"admin_token_ttl"`
	AdminUsername     string        `yaml:"admin_username"`
	AdminPassword     string        `yaml:"admin_password"`
	AdminPasswordHash string        `yaml:"admin_password_hash"` // bcrypt, wins over AdminPassword
	CookieSecure      bool          `yaml:"cookie_secure"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Port:        "8080",
		Env:         "development",
		MetricsPort: "9090",
		LogLevel:    "info",
		Database: DatabaseConfig{
			Driver: "postgres",
		},
		Auth: AuthConfig{
			JWTSecret:     DevJWTSecret,
			UserTokenTTL:  7 * 24 * time.Hour,
			AdminTokenTTL: 24 * time.Hour,
			AdminUsername: "admin",
		},
	}
}

// Load builds the configuration with layered precedence:
// 1. Defaults
// 2. YAML file at path (skipped when path is empty)
// 3. .env file in the working directory
// 4. Environment variables
func Load(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
		logger.Debug("Loaded config file", slog.String("path", path))
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, assuming environment variables are set")
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Env = getEnv("ENV", c.Env)
	c.MetricsPort = getEnv("METRICS_PORT", c.MetricsPort)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("POSTGRES_CONN_STR", c.Database.DSN)
	c.Database.DSN = getEnv("DATABASE_DSN", c.Database.DSN)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.AdminUsername = getEnv("ADMIN_USERNAME", c.Auth.AdminUsername)
	c.Auth.AdminPassword = getEnv("ADMIN_PASSWORD", c.Auth.AdminPassword)
	c.Auth.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", c.Auth.AdminPasswordHash)
	c.Auth.UserTokenTTL = getDuration("USER_TOKEN_TTL", c.Auth.UserTokenTTL)
	c.Auth.AdminTokenTTL = getDuration("ADMIN_TOKEN_TTL", c.Auth.AdminTokenTTL)
	c.Auth.CookieSecure = getBool("COOKIE_SECURE", c.Auth.CookieSecure || c.IsProduction())
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required (POSTGRES_CONN_STR or DATABASE_DSN)")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}
	if c.IsProduction() && c.Auth.JWTSecret == DevJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.Auth.AdminUsername == "" {
		return errors.New("admin username is required")
	}
	if c.Auth.AdminPassword == "" && c.Auth.AdminPasswordHash == "" {
		return errors.New("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required")
	}
	if c.Auth.UserTokenTTL <= 0 || c.Auth.AdminTokenTTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
