package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("valid config loads", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\ndatabase:\n  dsn: postgres://localhost/lore\nlog:\n  level: debug\n  format: console\n")
		cfg, err := Load(path, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Database.DSN != "postgres://localhost/lore" {
			t.Fatalf("expected dsn from file, got %q", cfg.Database.DSN)
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
			t.Fatalf("expected log settings from file, got %+v", cfg.Log)
		}
	})

	t.Run("partial config keeps defaults", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\n")
		cfg, err := Load(path, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Database.DSN != DefaultDSN || cfg.Log.Format != "json" {
			t.Fatalf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("optional missing file uses defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Database.DSN != DefaultDSN {
			t.Fatalf("expected default dsn, got %q", cfg.Database.DSN)
		}
	})

	t.Run("required missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempConfig(t, "version: 2\n")
		if _, err := Load(path, false); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown dsn scheme", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\ndatabase:\n  dsn: mysql://localhost/lore\n")
		if _, err := Load(path, false); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad log level", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\nlog:\n  level: loud\n")
		if _, err := Load(path, false); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad log format", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\nlog:\n  format: xml\n")
		if _, err := Load(path, false); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "database: [\n")
		if _, err := Load(path, false); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LOREWEAVER_DB", "sqlite://./override.db")
	t.Setenv("LOREWEAVER_LOG_LEVEL", "warn")

	path := writeTempConfig(t, "version: 1\ndatabase:\n  dsn: postgres://localhost/lore\nlog:\n  level: debug\n")
	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Database.DSN != "sqlite://./override.db" {
		t.Errorf("expected env dsn, got %q", cfg.Database.DSN)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected env level, got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("unset env var should keep format, got %q", cfg.Log.Format)
	}
}

func TestEngine(t *testing.T) {
	tests := []struct {
		dsn     string
		want    string
		wantErr bool
	}{
		{dsn: "sqlite://./campaigns.db", want: "sqlite"},
		{dsn: "sqlite://:memory:", want: "sqlite"},
		{dsn: "postgres://localhost/lore", want: "postgres"},
		{dsn: "postgresql://localhost/lore", want: "postgres"},
		{dsn: "campaigns.db", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := Engine(tt.dsn)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("Engine(%q) = %q, %v; want %q", tt.dsn, got, err, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := Write(path, Default()); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("reading written config: %v", err)
	}
	if cfg.Database.DSN != DefaultDSN {
		t.Errorf("round trip dsn = %q", cfg.Database.DSN)
	}

	err = Write(path, Default())
	if !errors.Is(err, fs.ErrExist) {
		t.Errorf("second write: got %v, want file exists", err)
	}
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
