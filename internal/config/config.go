// Package config loads empatia settings from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Defaults applied when neither file nor environment provides a value.
const (
	DefaultCacheDir     = ".empatia-cache"
	DefaultCacheTTL     = 24 * time.Hour
	DefaultMinBlockSize = 5
	DefaultMaxFiles     = 400
	DefaultFormat       = "txt"
)

// ErrInvalidMinBlockSize is returned for a non-positive duplication window.
var ErrInvalidMinBlockSize = errors.New("min block size must be positive")

// ErrInvalidMaxFiles is returned for a non-positive file cap.
var ErrInvalidMaxFiles = errors.New("max files must be positive")

// ErrInvalidCacheTTL is returned for a negative cache TTL.
var ErrInvalidCacheTTL = errors.New("cache ttl must not be negative")

// ErrInvalidFormat is returned for an unrecognized export format.
var ErrInvalidFormat = errors.New("invalid export format")

// validFormats are the accepted export format names.
var validFormats = map[string]bool{
	"txt":  true,
	"json": true,
	"yaml": true,
	"html": true,
}

// Config holds all empatia settings.
type Config struct {
	GitHubToken string        `mapstructure:"github_token"`
	CacheDir    string        `mapstructure:"cache_dir"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	MinBlock    int           `mapstructure:"min_block_size"`
	MaxFiles    int           `mapstructure:"max_files"`
	Format      string        `mapstructure:"format"`
	Verbose     bool          `mapstructure:"verbose"`
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.MinBlock <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMinBlockSize, c.MinBlock)
	}

	if c.MaxFiles <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxFiles, c.MaxFiles)
	}

	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCacheTTL, c.CacheTTL)
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}

	return nil
}
