package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"devconsole/log"

	"github.com/caarlos0/env/v11"
	"github.com/gofrs/flock"
)

const (
	ConfigFileName = "config.json"
	// LockFileName is the name of the lock file
	LockFileName = "config.lock"
	// DefaultLockTimeout is the default timeout for acquiring locks
	DefaultLockTimeout = 5 * time.Second
	// EnvPrefix prefixes every environment override, e.g.
	// DEVCONSOLE_HISTORY_CAPACITY or DEVCONSOLE_LOG_DIR.
	EnvPrefix = "DEVCONSOLE_"
)

const (
	DefaultHistoryCapacity       = 6
	DefaultLogCapacity           = 75
	DefaultHelpPageSize          = 15
	DefaultAutocompleteThreshold = 2
)

// LogSettings mirrors log.LogConfig in the config file.
type LogSettings struct {
	LogsEnabled bool   `json:"logs_enabled" env:"ENABLED"`
	LogsDir     string `json:"logs_dir" env:"DIR"`
	LogMaxSize  int    `json:"log_max_size" env:"MAX_SIZE"`
	LogMaxFiles int    `json:"log_max_files" env:"MAX_FILES"`
	LogMaxAge   int    `json:"log_max_age" env:"MAX_AGE"`
	LogCompress bool   `json:"log_compress" env:"COMPRESS"`
}

// Config represents the console settings that persist between runs
type Config struct {
	// HistoryCapacity bounds the command history
	HistoryCapacity int `json:"history_capacity" env:"HISTORY_CAPACITY"`
	// LogCapacity bounds the number of lines kept by the log view
	LogCapacity int `json:"log_capacity" env:"LOG_CAPACITY"`
	// HelpPageSize is the number of commands per help page
	HelpPageSize int `json:"help_page_size" env:"HELP_PAGE_SIZE"`
	// AutocompleteThreshold is the input length that must be exceeded
	// before a suggestion is shown
	AutocompleteThreshold int `json:"autocomplete_threshold" env:"AUTOCOMPLETE_THRESHOLD"`
	// StartOpen shows the console panel on start
	StartOpen bool `json:"start_open" env:"START_OPEN"`
	// Log configures the file loggers
	Log LogSettings `json:"log" envPrefix:"LOG_"`

	dir         string
	lockFile    *flock.Flock
	lockTimeout time.Duration
}

// DefaultConfig returns the default config, not bound to any directory
func DefaultConfig() *Config {
	defaults := log.DefaultLogConfig()
	return &Config{
		HistoryCapacity:       DefaultHistoryCapacity,
		LogCapacity:           DefaultLogCapacity,
		HelpPageSize:          DefaultHelpPageSize,
		AutocompleteThreshold: DefaultAutocompleteThreshold,
		StartOpen:             false,
		Log: LogSettings{
			LogsEnabled: defaults.LogsEnabled,
			LogsDir:     defaults.LogsDir,
			LogMaxSize:  defaults.LogMaxSize,
			LogMaxFiles: defaults.LogMaxFiles,
			LogMaxAge:   defaults.LogMaxAge,
			LogCompress: defaults.LogCompress,
		},
		lockTimeout: DefaultLockTimeout,
	}
}

// Load reads the config stored in dir and applies environment overrides.
// A missing file is created with the defaults so it can be edited. The
// returned config is always usable: on error it holds the defaults with
// the environment applied.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.dir = dir
	cfg.lockFile = flock.New(filepath.Join(dir, LockFileName))

	var loadErr error
	found, err := cfg.loadFromDisk()
	if err != nil {
		loadErr = err
	} else if !found {
		// Written before the environment is applied so overrides stay out of the file
		if err := cfg.Save(); err != nil {
			loadErr = fmt.Errorf("failed to write default config: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil && loadErr == nil {
		loadErr = err
	}
	cfg.normalize()
	return cfg, loadErr
}

// LoadConfig loads the config from the default directory. If it cannot be
// done, we return the default config.
func LoadConfig() *Config {
	dir, err := log.GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		cfg := DefaultConfig()
		if err := cfg.applyEnv(); err != nil {
			log.WarningLog.Printf("%v", err)
		}
		cfg.normalize()
		return cfg
	}

	cfg, err := Load(dir)
	if err != nil {
		log.WarningLog.Printf("failed to load config: %v", err)
	}
	return cfg
}

// Path returns the location of the config file, or an empty string for a
// config that is not bound to a directory.
func (c *Config) Path() string {
	if c.dir == "" {
		return ""
	}
	return filepath.Join(c.dir, ConfigFileName)
}

// LogConfig converts the log block for log.Initialize.
func (c *Config) LogConfig() *log.LogConfig {
	return &log.LogConfig{
		LogsEnabled: c.Log.LogsEnabled,
		LogsDir:     c.Log.LogsDir,
		LogMaxSize:  c.Log.LogMaxSize,
		LogMaxFiles: c.Log.LogMaxFiles,
		LogMaxAge:   c.Log.LogMaxAge,
		LogCompress: c.Log.LogCompress,
	}
}

// applyEnv overrides fields from DEVCONSOLE_* variables. Unset variables
// leave the current values alone.
func (c *Config) applyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// normalize replaces non-positive capacities with their defaults.
func (c *Config) normalize() {
	if c.HistoryCapacity <= 0 {
		c.HistoryCapacity = DefaultHistoryCapacity
	}
	if c.LogCapacity <= 0 {
		c.LogCapacity = DefaultLogCapacity
	}
	if c.HelpPageSize <= 0 {
		c.HelpPageSize = DefaultHelpPageSize
	}
	if c.AutocompleteThreshold < 0 {
		c.AutocompleteThreshold = DefaultAutocompleteThreshold
	}
}

// loadFromDisk loads the config file with a shared read lock. found is
// false when there is no file yet.
func (c *Config) loadFromDisk() (found bool, err error) {
	path := c.Path()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet - keep the defaults
			return false, nil
		}
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.lockTimeout)
	defer cancel()

	locked, err := c.lockFile.TryRLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return true, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	if !locked {
		return true, fmt.Errorf("could not acquire read lock within timeout")
	}
	defer c.lockFile.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return true, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over a copy so a bad file leaves the defaults untouched
	loaded := *c
	if err := json.Unmarshal(data, &loaded); err != nil {
		return true, fmt.Errorf("failed to parse config file: %w", err)
	}
	*c = loaded
	return true, nil
}

// Save writes the config to disk with an exclusive write lock
func (c *Config) Save() error {
	if c.dir == "" {
		return fmt.Errorf("config is not bound to a directory")
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.lockTimeout)
	defer cancel()

	locked, err := c.lockFile.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire write lock within timeout")
	}
	defer c.lockFile.Unlock()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to a temporary file first to ensure atomicity
	path := c.Path()
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to atomically update config file: %w", err)
	}

	return nil
}
