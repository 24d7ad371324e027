// Package config resolves runtime settings from defaults, an optional YAML
// file and PROTOCOL_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	// DefaultDirName is created under the user's home directory.
	DefaultDirName = ".protocol"
	// DefaultDBName is the database file inside DefaultDirName.
	DefaultDBName = "protocol.db"
	// ConfigFileName is the optional settings file inside DefaultDirName.
	ConfigFileName = "config.yaml"
	// DefaultUserID namespaces rows when no user is configured.
	DefaultUserID = "default"
	// DefaultPollInterval is how often watch checks for a new day.
	DefaultPollInterval = time.Minute
)

// ErrInvalid wraps every rejected setting.
var ErrInvalid = errors.New("invalid config")

// Config holds resolved runtime settings.
type Config struct {
	DBPath       string
	UserID       string
	PollInterval time.Duration
	LogLevel     slog.Level
	// File is the settings file that was read, empty when none existed.
	File string
}

// fileConfig mirrors the YAML file. Empty fields leave defaults in place.
type fileConfig struct {
	DB           string `yaml:"db"`
	User         string `yaml:"user"`
	PollInterval string `yaml:"poll_interval"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the settings used when nothing is configured.
func Default(home string) Config {
	return Config{
		DBPath:       filepath.Join(home, DefaultDirName, DefaultDBName),
		UserID:       DefaultUserID,
		PollInterval: DefaultPollInterval,
		LogLevel:     slog.LevelWarn,
	}
}

// Load resolves settings for the current process.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolving home directory: %w", err)
	}
	return LoadFrom(home, os.Getenv)
}

// LoadFrom resolves settings relative to home, reading variables through
// getenv. PROTOCOL_CONFIG points at a different settings file.
func LoadFrom(home string, getenv func(string) string) (Config, error) {
	cfg := Default(home)

	path := getenv("PROTOCOL_CONFIG")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, DefaultDirName, ConfigFileName)
	}
	if err := applyFile(&cfg, home, path, explicit); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, home, path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrInvalid, path, err)
	}
	cfg.File = path

	if fc.DB != "" {
		cfg.DBPath = expandHome(fc.DB, home)
	}
	if fc.User != "" {
		cfg.UserID = fc.User
	}
	if fc.PollInterval != "" {
		if cfg.PollInterval, err = parseInterval("poll_interval", fc.PollInterval); err != nil {
			return err
		}
	}
	if fc.LogLevel != "" {
		if cfg.LogLevel, err = ParseLevel(fc.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	var err error
	if v := getenv("PROTOCOL_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("PROTOCOL_USER"); v != "" {
		cfg.UserID = v
	}
	if v := getenv("PROTOCOL_POLL_INTERVAL"); v != "" {
		if cfg.PollInterval, err = parseInterval("PROTOCOL_POLL_INTERVAL", v); err != nil {
			return err
		}
	}
	if v := getenv("PROTOCOL_LOG_LEVEL"); v != "" {
		if cfg.LogLevel, err = ParseLevel(v); err != nil {
			return err
		}
	}
	return nil
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("%w: log level %q (expected debug, info, warn or error)", ErrInvalid, s)
	}
	return level, nil
}

func parseInterval(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s %q (expected a positive duration like 30s or 1m)", ErrInvalid, field, s)
	}
	return d, nil
}

// expandHome resolves a leading ~ against home.
func expandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}
