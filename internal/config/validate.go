package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRun(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRun() error {
	if c.Run.Workers < 0 {
		return errors.New("run.workers must not be negative")
	}
	if c.Run.MaxCompression <= 0 || c.Run.MaxCompression > 1 {
		return errors.New("run.max_compression must be in (0, 1]")
	}
	return nil
}

func (c *Config) validateImages() error {
	if c.Images.MinDimension < 0 {
		return errors.New("images.min_dimension must not be negative")
	}
	if c.Images.JPEGQuality < 1 || c.Images.JPEGQuality > 100 {
		return errors.New("images.jpeg_quality must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateVideo() error {
	switch c.Video.Codec {
	case "libx265", "libx264":
	default:
		return fmt.Errorf("video.codec: unsupported codec %q (use libx265 or libx264)", c.Video.Codec)
	}
	if c.Video.CRF < 0 || c.Video.CRF > 51 {
		return errors.New("video.crf must be between 0 and 51")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
