package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/typedisk/pkg/errors"
)

// Render encodes the effective configuration as TOML. Durations are written
// as strings so the output loads back unchanged.
func (c *Config) Render() (string, error) {
	doc := map[string]interface{}{
		"retry": map[string]interface{}{
			"initial_delay":     c.Retry.InitialDelay.String(),
			"max_delay":         c.Retry.MaxDelay.String(),
			"multiplier":        c.Retry.Multiplier,
			"jitter":            c.Retry.Jitter,
			"max_attempts":      c.Retry.MaxAttempts,
			"max_elapsed":       c.Retry.MaxElapsed.String(),
			"file_delete_delay": c.Retry.FileDeleteDelay.String(),
		},
		"disk": map[string]interface{}{
			"preserve_dir": c.Disk.PreserveDir,
			"temp_suffix":  c.Disk.TempSuffix,
		},
		"paths": map[string]interface{}{
			"case": c.Paths.Case,
		},
		"log": map[string]interface{}{
			"verbosity": c.Log.Verbosity,
		},
	}

	out, err := toml.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(out), nil
}
