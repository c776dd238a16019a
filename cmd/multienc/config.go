package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/stewi1014/multienc/base"
)

// Config holds the settings shared by every subcommand.
type Config struct {
	Base     string    `mapstructure:"base"`
	Strategy string    `mapstructure:"strategy"`
	Log      LogConfig `mapstructure:"log"`
}

// LogConfig configures the logger built by SetupLogger.
type LogConfig struct {
	Level   string   `mapstructure:"level"`   // debug|info|warn|error
	Format  string   `mapstructure:"format"`  // console|json
	Outputs []string `mapstructure:"outputs"` // stdout|stderr|<file path>

	// File outputs rotate after MaxSizeMB megabytes, keeping MaxBackups old files (0 keeps all).
	MaxSizeMB  int `mapstructure:"max_size"`
	MaxBackups int `mapstructure:"max_backups"`
}

var flagKeys = map[string]string{
	"base":      "base",
	"strategy":  "strategy",
	"log-level": "log.level",
}

// LoadConfig reads configuration from an optional YAML file, MULTIENC_* environment variables and flags.
// Flags that were set override the environment, which overrides the file.
// If path is empty, a multienc.yaml (or .json, .toml) in the working directory is read if present.
func LoadConfig(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MULTIENC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base", "")
	v.SetDefault("strategy", "multibase")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.outputs", []string{"stderr"})
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)

	if path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("yaml")
		}
	} else {
		v.SetConfigName("multienc")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, c.validate()
}

func (c Config) validate() error {
	if c.Base != "" {
		if _, err := base.Parse(c.Base); err != nil {
			return fmt.Errorf("base %q: %w", c.Base, err)
		}
	}
	if _, ok := strategies[strings.ToLower(c.Strategy)]; !ok {
		return fmt.Errorf("unknown strategy %q (want multibase, bare or detected)", c.Strategy)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q (want console or json)", c.Log.Format)
	}
	if len(c.Log.Outputs) == 0 {
		return errors.New("log.outputs must name at least one output")
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return errors.New("log.max_size and log.max_backups must not be negative")
	}
	return nil
}

// baseOr returns the configured base, or fallback if none is configured.
func (c Config) baseOr(fallback base.Base) base.Base {
	if c.Base == "" {
		return fallback
	}
	b, err := base.Parse(c.Base)
	if err != nil {
		return fallback
	}
	return b
}
