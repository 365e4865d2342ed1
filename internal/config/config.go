// Package config resolves prepcoach settings from defaults, a YAML file
// and the environment. Command-line flags are applied on top by cmd.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL   = "http://localhost:8000"
	DefaultTimeout  = 60 * time.Second
	DefaultLogLevel = "info"
	appDir          = "prepcoach"
)

// Config holds all client settings.
type Config struct {
	// APIURL is the Analysis Service base URL.
	APIURL string
	// Timeout bounds a single service request.
	Timeout time.Duration
	// LogFile receives JSON logs. Empty disables logging.
	LogFile string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// fileConfig is the on-disk shape. Timeout is a Go duration string.
type fileConfig struct {
	APIURL   string `yaml:"api_url"`
	Timeout  string `yaml:"timeout"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with defaults for every field.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		Timeout:  DefaultTimeout,
		LogFile:  defaultLogFile(),
		LogLevel: DefaultLogLevel,
	}
}

// Load builds a Config from defaults, the YAML file at path and the
// environment, in that order. An empty path means DefaultPath; a missing
// default file is not an error, a missing explicit one is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path, explicit); err != nil {
			return cfg, err
		}
	}

	if err := cfg.mergeEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath is $XDG_CONFIG_HOME/prepcoach/config.yaml, falling back to
// ~/.config/prepcoach/config.yaml.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDir, "config.yaml"), nil
}

// defaultLogFile is $XDG_STATE_HOME/prepcoach/prepcoach.log, or "" when no
// home directory can be found.
func defaultLogFile() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, appDir, appDir+".log")
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.APIURL != "" {
		c.APIURL = fc.APIURL
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("config %s: timeout: %w", path, err)
		}
		c.Timeout = d
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return nil
}

// mergeEnv applies PREPCOACH_* variables. NEXT_PUBLIC_API_URL is honored
// below PREPCOACH_API_URL so an existing web client .env keeps working.
func (c *Config) mergeEnv(getenv func(string) string) error {
	if u := getenv("NEXT_PUBLIC_API_URL"); u != "" {
		c.APIURL = u
	}
	if u := getenv("PREPCOACH_API_URL"); u != "" {
		c.APIURL = u
	}
	if t := getenv("PREPCOACH_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("PREPCOACH_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if f := getenv("PREPCOACH_LOG_FILE"); f != "" {
		c.LogFile = f
	}
	if l := getenv("PREPCOACH_LOG_LEVEL"); l != "" {
		c.LogLevel = l
	}
	return nil
}

// Validate checks the service URL, timeout and log level.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api url must be an http(s) URL, got %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level for LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
