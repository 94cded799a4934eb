// Package config loads readtime settings from the config file, the first-run
// prompt and command-line flags
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/readtime/internal/pathutil"
)

type (
	// Config holds all configuration settings
	Config struct {
		CLI           CLIConfig          `mapstructure:"-"`
		Storage       StorageConfig      `mapstructure:"storage"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Goal          GoalConfig         `mapstructure:"goal"`
		Server        ServerConfig       `mapstructure:"server"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
	}

	GoalConfig struct {
		DefaultMinutes float64 `mapstructure:"default_minutes"`
	}

	// StorageConfig selects the database backend. An empty path means the
	// default location for the driver.
	StorageConfig struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
	}

	SettingsConfig struct {
		// Cmd runs after every saved reading session.
		Cmd            string `mapstructure:"cmd"`
		TwentyFourHour bool   `mapstructure:"24hr_clock"`
	}

	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	ServerConfig struct {
		Port uint `mapstructure:"port"`
	}

	// CLIConfig holds values that only come from flags.
	CLIConfig struct {
		Date    time.Time
		BookRef string
		Debug   bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// DBPath returns the database file for the configured driver.
func (c *Config) DBPath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}

	return pathutil.DBFilePath(c.Storage.Driver)
}

// New creates a new Config with default values, applies options and
// validates the result.
func New(opts ...Option) (*Config, error) {
	cfg := Defaults()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// Defaults returns the configuration used before any file or flag is read.
func Defaults() *Config {
	return &Config{
		Goal:          GoalConfig{DefaultMinutes: defaultGoalMinutes},
		Storage:       StorageConfig{Driver: defaultDriver},
		Notifications: NotificationConfig{Enabled: true},
		Display:       DisplayConfig{DarkTheme: true},
		Server:        ServerConfig{Port: defaultPort},
	}
}
