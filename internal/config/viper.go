package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ayoisaiah/readtime/internal/osutil"
)

const (
	keyGoalDefaultMinutes   = "goal.default_minutes"
	keyStorageDriver        = "storage.driver"
	keyStoragePath          = "storage.path"
	keySessionCmd           = "settings.cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyNotificationsEnabled = "notifications.enabled"
	keyDarkTheme            = "display.dark_theme"
	keyServerPort           = "server.port"
)

const (
	defaultGoalMinutes = 30
	defaultDriver      = "bolt"
	defaultPort        = 1111
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. A missing file is created from the current values, so
// a goal picked in the first-run prompt is written out.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return errReadConfig.Wrap(err)
		}

		if err := os.MkdirAll(filepath.Dir(configPath), osutil.DirPermission); err != nil {
			return errWriteConfig.Wrap(err)
		}

		if err := v.WriteConfigAs(configPath); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper seeds Viper with the values already in c as defaults.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyGoalDefaultMinutes, c.Goal.DefaultMinutes)
	v.SetDefault(keyStorageDriver, c.Storage.Driver)
	v.SetDefault(keyStoragePath, c.Storage.Path)
	v.SetDefault(keySessionCmd, c.Settings.Cmd)
	v.SetDefault(keyTwentyFourHour, c.Settings.TwentyFourHour)
	v.SetDefault(keyNotificationsEnabled, c.Notifications.Enabled)
	v.SetDefault(keyDarkTheme, c.Display.DarkTheme)
	v.SetDefault(keyServerPort, c.Server.Port)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	cli := c.CLI

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	c.CLI = cli

	return nil
}
