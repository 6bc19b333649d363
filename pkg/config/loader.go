package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/paths"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "TYPEDISK_"
	// ConfigFileName is the user config file below the XDG config dir.
	ConfigFileName = "config.toml"
)

// DefaultConfigPath returns $XDG_CONFIG_HOME/typedisk/config.toml.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, paths.AppDirName, ConfigFileName)
}

// envKey maps TYPEDISK_RETRY__MAX_ATTEMPTS to retry.max_attempts. A double
// underscore separates sections so single underscores survive in key names.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Default returns the embedded defaults alone.
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return decode(k)
}

// Load builds the effective configuration. An empty path reads the default
// user file when it exists; an explicit path must exist. overrides are
// dotted keys (retry.max_attempts) applied last.
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	userPath := path
	if userPath == "" {
		userPath = DefaultConfigPath()
		if _, err := os.Stat(userPath); err != nil {
			userPath = ""
		}
	} else if _, err := os.Stat(userPath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", userPath).
			WithDetail("path", userPath)
	}
	if userPath != "" {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userPath).
				WithDetail("path", userPath)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	return decode(k)
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
