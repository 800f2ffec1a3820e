package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := validateDirection("content.direction", c.Content.Direction); err != nil {
		return err
	}
	if err := validateDirection("filename.direction", c.Filename.Direction); err != nil {
		return err
	}
	if err := c.validateFilename(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func validateDirection(key, value string) error {
	switch value {
	case "s2t", "t2s":
		return nil
	default:
		return fmt.Errorf("%s must be s2t or t2s, got %q", key, value)
	}
}

func (c *Config) validateFilename() error {
	switch c.Filename.Operation {
	case "move", "copy":
		return nil
	default:
		return fmt.Errorf("filename.operation must be move or copy, got %q", c.Filename.Operation)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", strings.TrimSpace(c.Logging.Level))
	}
	return nil
}
