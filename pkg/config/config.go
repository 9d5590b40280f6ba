package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
	Planner PlannerConfig `mapstructure:"planner"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port    int    `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// DBConfig selects postgres when DSN is set, sqlite at Path otherwise
type DBConfig struct {
	DSN  string `mapstructure:"dsn"`
	Path string `mapstructure:"path"`
}

// AuthConfig holds admin and API key secrets
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	APIMasterSecret string        `mapstructure:"api_master_secret"`
	AdminUsername   string        `mapstructure:"admin_username"`
	AdminPassword   string        `mapstructure:"admin_password"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PlannerConfig bounds the cost of one planning request
type PlannerConfig struct {
	MaxSlots      int           `mapstructure:"max_slots"`
	Timeout       time.Duration `mapstructure:"timeout"`
	PageSize      int           `mapstructure:"page_size"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
}

// envFiles are tried in order; the first one found is loaded
var envFiles = []string{".env", "../.env", "../../.env"}

// Load reads defaults, then the config file, then PLANNER_* environment variables.
// A .env file is loaded into the environment first if one exists.
func Load(path string) (*Config, error) {
	for _, p := range envFiles {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	v := viper.New()
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.path", "planner.db")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.api_master_secret", "")
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("planner.max_slots", 62)
	v.SetDefault("planner.timeout", "10s")
	v.SetDefault("planner.page_size", 10)
	v.SetDefault("planner.max_concurrent", 4)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot run with
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret is required")
	}
	if c.Auth.APIMasterSecret == "" {
		return errors.New("config: auth.api_master_secret is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Planner.MaxSlots <= 0 {
		return fmt.Errorf("config: planner.max_slots must be positive, got %d", c.Planner.MaxSlots)
	}
	if c.Planner.Timeout <= 0 {
		return fmt.Errorf("config: planner.timeout must be positive, got %s", c.Planner.Timeout)
	}
	if c.Planner.PageSize <= 0 {
		return fmt.Errorf("config: planner.page_size must be positive, got %d", c.Planner.PageSize)
	}
	if c.Planner.MaxConcurrent <= 0 {
		return fmt.Errorf("config: planner.max_concurrent must be positive, got %d", c.Planner.MaxConcurrent)
	}
	return nil
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
