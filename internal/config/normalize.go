package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeRun(); err != nil {
		return err
	}
	c.normalizeVideo()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeRun() error {
	c.Run.Suffix = strings.TrimSpace(c.Run.Suffix)
	if c.Run.Suffix == "" {
		c.Run.Suffix = defaultSuffix
	}
	if c.Run.MaxCompression == 0 {
		c.Run.MaxCompression = defaultMaxCompression
	}
	if strings.TrimSpace(c.Run.TempDir) != "" {
		expanded, err := ExpandPath(c.Run.TempDir)
		if err != nil {
			return fmt.Errorf("run.temp_dir: %w", err)
		}
		c.Run.TempDir = expanded
	}
	return nil
}

func (c *Config) normalizeVideo() {
	c.Video.Codec = strings.TrimSpace(c.Video.Codec)
	if c.Video.Codec == "" {
		c.Video.Codec = defaultVideoCodec
	}
	if c.Video.CRF == 0 {
		c.Video.CRF = defaultVideoCRF
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
