package config

import (
	"slices"
)

const maxGoalMinutes = 24 * 60

var drivers = []string{"bolt", "sqlite"}

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if c.Goal.DefaultMinutes < 1 || c.Goal.DefaultMinutes > maxGoalMinutes {
		return errInvalidGoal.Fmt(maxGoalMinutes, c.Goal.DefaultMinutes)
	}

	if !slices.Contains(drivers, c.Storage.Driver) {
		return errInvalidDriver.Fmt(c.Storage.Driver)
	}

	if c.Server.Port == 0 || c.Server.Port > 65535 {
		return errInvalidPort.Fmt(c.Server.Port)
	}

	return nil
}
