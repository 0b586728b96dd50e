package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "loreweaver.yaml"
	DefaultDSN  = "sqlite://./campaigns.db"
)

type Config struct {
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"LOREWEAVER_DB"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOREWEAVER_LOG_LEVEL"`
	Format string `yaml:"format" env:"LOREWEAVER_LOG_FORMAT"`
}

func Default() *Config {
	return &Config{
		Version:  1,
		Database: DatabaseConfig{DSN: DefaultDSN},
		Log:      LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads the config file at path, applies environment overrides and
// validates the result. When optional is set a missing file yields the
// defaults instead of an error.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("loading config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported version: %d", c.Version)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	if _, err := Engine(c.Database.DSN); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q, expected json or console", c.Log.Format)
	}
	return nil
}

// Engine names the storage engine a DSN selects: "sqlite" or "postgres".
func Engine(dsn string) (string, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", nil
	}
	return "", fmt.Errorf("unsupported database dsn scheme in %q, expected sqlite://, postgres:// or postgresql://", dsn)
}

// Write stores cfg at path and refuses to replace an existing file.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	return f.Close()
}
