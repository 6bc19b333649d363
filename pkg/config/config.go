package config

import (
	"strings"
	"time"

	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/paths"
	"github.com/arthur-debert/typedisk/pkg/retry"
)

// Config is the effective typedisk configuration.
type Config struct {
	Retry RetryConfig `koanf:"retry"`
	Disk  DiskConfig  `koanf:"disk"`
	Paths PathsConfig `koanf:"paths"`
	Log   LogConfig   `koanf:"log"`
}

// RetryConfig configures the delete-under-contention policy.
type RetryConfig struct {
	InitialDelay    time.Duration `koanf:"initial_delay"`
	MaxDelay        time.Duration `koanf:"max_delay"`
	Multiplier      float64       `koanf:"multiplier"`
	Jitter          float64       `koanf:"jitter"`
	MaxAttempts     int           `koanf:"max_attempts"`
	MaxElapsed      time.Duration `koanf:"max_elapsed"`
	FileDeleteDelay time.Duration `koanf:"file_delete_delay"`
}

// DiskConfig configures pkg/disk.
type DiskConfig struct {
	PreserveDir string `koanf:"preserve_dir"`
	TempSuffix  string `koanf:"temp_suffix"`
}

type PathsConfig struct {
	Case string `koanf:"case"`
}

type LogConfig struct {
	Verbosity int `koanf:"verbosity"`
}

// RetryPolicy converts the retry section.
func (c *Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		InitialDelay:    c.Retry.InitialDelay,
		MaxDelay:        c.Retry.MaxDelay,
		Multiplier:      c.Retry.Multiplier,
		Jitter:          c.Retry.Jitter,
		MaxAttempts:     c.Retry.MaxAttempts,
		MaxElapsed:      c.Retry.MaxElapsed,
		FileDeleteDelay: c.Retry.FileDeleteDelay,
	}
}

// CaseMode resolves paths.case.
func (c *Config) CaseMode() (paths.CaseMode, error) {
	return paths.ParseCaseMode(c.Paths.Case)
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	invalid := func(key string, value interface{}, why string) error {
		return errors.Newf(errors.ErrConfigParse, "invalid %s: %s", key, why).
			WithDetail("key", key).
			WithDetail("value", value)
	}

	r := c.Retry
	switch {
	case r.InitialDelay <= 0:
		return invalid("retry.initial_delay", r.InitialDelay, "must be positive")
	case r.MaxDelay < r.InitialDelay:
		return invalid("retry.max_delay", r.MaxDelay, "must not be below retry.initial_delay")
	case r.Multiplier < 1:
		return invalid("retry.multiplier", r.Multiplier, "must be at least 1")
	case r.Jitter < 0 || r.Jitter > 1:
		return invalid("retry.jitter", r.Jitter, "must be between 0 and 1")
	case r.MaxAttempts < retry.Unbounded:
		return invalid("retry.max_attempts", r.MaxAttempts, "must be -1 or more")
	case r.MaxElapsed < 0:
		return invalid("retry.max_elapsed", r.MaxElapsed, "must not be negative")
	case r.FileDeleteDelay < 0:
		return invalid("retry.file_delete_delay", r.FileDeleteDelay, "must not be negative")
	}

	if c.Disk.TempSuffix == "" || strings.ContainsAny(c.Disk.TempSuffix, `/\`) {
		return invalid("disk.temp_suffix", c.Disk.TempSuffix, "must be a non-empty name fragment")
	}
	if strings.ContainsAny(c.Disk.PreserveDir, `/\`) {
		return invalid("disk.preserve_dir", c.Disk.PreserveDir, "must be a single directory name")
	}
	if _, err := c.CaseMode(); err != nil {
		return invalid("paths.case", c.Paths.Case, err.Error())
	}
	return nil
}
