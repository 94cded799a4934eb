package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/ayoisaiah/readtime/goal"
)

const asciiLogo = `
██████╗ ███████╗ █████╗ ██████╗ ████████╗██╗███╗   ███╗███████╗
██╔══██╗██╔════╝██╔══██╗██╔══██╗╚══██╔══╝██║████╗ ████║██╔════╝
██████╔╝█████╗  ███████║██║  ██║   ██║   ██║██╔████╔██║█████╗
██╔══██╗██╔══╝  ██╔══██║██║  ██║   ██║   ██║██║╚██╔╝██║██╔══╝
██║  ██║███████╗██║  ██║██████╔╝   ██║   ██║██║ ╚═╝ ██║███████╗
╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝    ╚═╝   ╚═╝╚═╝     ╚═╝╚══════╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Driver      string
	GoalMinutes float64
}

// WithPromptConfig returns an Option that asks for the daily goal the first
// time readtime runs, when no config file exists yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		GoalMinutes: defaultGoalMinutes,
		Driver:      defaultDriver,
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure readtime for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'readtime edit-config' to change any settings.`, " ").
		Render()

	goalOptions := make([]huh.Option[float64], 0, len(goal.Presets))
	for _, m := range goal.Presets {
		goalOptions = append(goalOptions, huh.NewOption(
			fmt.Sprintf("%v minutes", m),
			m,
		).Selected(m == defaultGoalMinutes))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("Daily reading goal").
				Options(goalOptions...).
				Value(&opts.GoalMinutes),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage backend").
				Options(
					huh.NewOption("BoltDB (default)", "bolt").Selected(true),
					huh.NewOption("SQLite", "sqlite"),
				).
				Value(&opts.Driver),
		),
	)

	if err := form.Run(); err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Goal.DefaultMinutes = opts.GoalMinutes
	c.Storage.Driver = opts.Driver
}
