package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/internal/apperr"
)

func TestViperWritesDefaultsWhenFileIsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readtime", "config.yml")

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.InDelta(t, 30, cfg.Goal.DefaultMinutes, 0)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, uint(1111), cfg.Server.Port)
	assert.True(t, cfg.Notifications.Enabled)
	assert.True(t, cfg.Display.DarkTheme)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "default_minutes: 30")
}

func TestViperReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	yml := `goal:
  default_minutes: 45
storage:
  driver: sqlite
  path: /tmp/books.sqlite
settings:
  cmd: notify-send done
  24hr_clock: true
notifications:
  enabled: false
server:
  port: 8080
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.InDelta(t, 45, cfg.Goal.DefaultMinutes, 0)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/books.sqlite", cfg.DBPath())
	assert.Equal(t, "notify-send done", cfg.Settings.Cmd)
	assert.True(t, cfg.Settings.TwentyFourHour)
	assert.False(t, cfg.Notifications.Enabled)
	assert.True(t, cfg.Display.DarkTheme)
	assert.Equal(t, uint(8080), cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(c *Config)
		valid  bool
	}{
		{name: "defaults", modify: func(*Config) {}, valid: true},
		{name: "zero goal", modify: func(c *Config) { c.Goal.DefaultMinutes = 0 }},
		{name: "goal over a day", modify: func(c *Config) { c.Goal.DefaultMinutes = 1441 }},
		{name: "unknown driver", modify: func(c *Config) { c.Storage.Driver = "postgres" }},
		{name: "sqlite driver", modify: func(c *Config) { c.Storage.Driver = "sqlite" }, valid: true},
		{name: "zero port", modify: func(c *Config) { c.Server.Port = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}

			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func cliContext(t *testing.T, flags map[string]string) *cli.Context {
	t.Helper()

	f := flag.NewFlagSet("readtime", flag.ContinueOnError)

	for k, v := range flags {
		_ = f.String(k, "", "")
		require.NoError(t, f.Set(k, v))
	}

	return cli.NewContext(&cli.App{}, f, nil)
}

func TestCLIOverlay(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)

	ctx := cliContext(t, map[string]string{
		"storage-driver": " SQLite ",
		"db-path":        "/tmp/x.sqlite",
		"session-cmd":    "echo saved",
		"book":           " dune ",
		"date":           "2026-10-01",
	})

	cfg, err := New(WithCLIConfig(ctx, now))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/x.sqlite", cfg.Storage.Path)
	assert.Equal(t, "echo saved", cfg.Settings.Cmd)
	assert.Equal(t, "dune", cfg.CLI.BookRef)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local), cfg.CLI.Date)
}

func TestCLIOverlayDefaultsDateToNow(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)

	cfg, err := New(WithCLIConfig(cliContext(t, nil), now))
	require.NoError(t, err)

	assert.Equal(t, now, cfg.CLI.Date)
}

func TestCLIOverlayRejectsBadDate(t *testing.T) {
	ctx := cliContext(t, map[string]string{"date": "%%"})

	_, err := New(WithCLIConfig(ctx, time.Now()))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCLIOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: sqlite\n"), 0o600))

	ctx := cliContext(t, map[string]string{"storage-driver": "bolt"})

	cfg, err := New(WithViperConfig(path), WithCLIConfig(ctx, time.Now()))
	require.NoError(t, err)

	assert.Equal(t, "bolt", cfg.Storage.Driver)
}
