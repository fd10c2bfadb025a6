// Package config loads jardin settings from an optional YAML file, an
// optional .env file and the environment. Environment variables always win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "config.yaml"

type Config struct {
	// DBPath defaults to ~/.jardin/jardin.db when empty.
	DBPath      string `yaml:"db" env:"JARDIN_DB" env-default:""`
	CompanyName string `yaml:"company_name" env:"JARDIN_COMPANY_NAME" env-default:""`

	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
	Remote RemoteConfig `yaml:"remote"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"JARDIN_ADDR" env-default:":8080"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"JARDIN_REQUEST_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"JARDIN_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// AuthConfig holds bearer token settings. The secret is never read from YAML.
type AuthConfig struct {
	TokenSecret string        `yaml:"-" env:"JARDIN_TOKEN_SECRET"`
	TokenTTL    time.Duration `yaml:"token_ttl" env:"JARDIN_TOKEN_TTL" env-default:"12h"`
	Issuer      string        `yaml:"issuer" env:"JARDIN_TOKEN_ISSUER" env-default:"jardin"`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"JARDIN_LOG_LEVEL" env-default:"info"`
	Format   string `yaml:"format" env:"JARDIN_LOG_FORMAT" env-default:"console"`
	UseCases bool   `yaml:"use_cases" env:"JARDIN_LOG_USE_CASES" env-default:"false"`
}

// RemoteConfig points the CLI's remote commands at a running server.
type RemoteConfig struct {
	URL   string `yaml:"url" env:"JARDIN_API_URL" env-default:"http://localhost:8080"`
	Token string `yaml:"-" env:"JARDIN_API_TOKEN"`
}

// Load reads path (or DefaultFile when empty) if it exists, then applies
// .env and environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := &Config{}
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("reading %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".jardin", "jardin.db")
	}
	return cfg, nil
}

// RequireTokenSecret reports a missing signing secret. Only the server and
// token commands need one.
func (c *Config) RequireTokenSecret() error {
	if len(c.Auth.TokenSecret) < 16 {
		return fmt.Errorf("JARDIN_TOKEN_SECRET must be set to at least 16 characters")
	}
	return nil
}
