package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all runtime configuration for a careload run.
type Config struct {
	DSN          string
	FilePath     string
	MappingsPath string
	LogFormat    string // "text" or "json"
	AsOf         string // RFC3339 or YYYY-MM-DD; empty means now
	Force        bool
	// MaxSkipped is the number of skipped rows tolerated before the batch
	// fails. Negative means unlimited.
	MaxSkipped int
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if _, err := c.AsOfTime(); err != nil {
		return err
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}

// AsOfTime parses the --as-of flag. The timestamp is captured once per batch
// so validity stamps are non-decreasing across the batch.
func (c *Config) AsOfTime() (time.Time, error) {
	if c.AsOf == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, c.AsOf); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", c.AsOf); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid --as-of %q: want RFC3339 or YYYY-MM-DD", c.AsOf)
}
