// Package config resolves calculator settings from flags, environment and
// an optional YAML file.
//
// Precedence, highest first: explicitly set flags, WSJF_* environment
// variables, the config file, defaults.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/wsjf/internal/session"
)

// Keys understood in config files and as WSJF_<KEY> environment variables.
const (
	KeyFormat     = "format"
	KeyVerbose    = "verbose"
	KeyJobs       = "jobs"
	KeyAppendMode = "append_mode"
)

// EnvPrefix is prepended to every key when read from the environment.
const EnvPrefix = "WSJF"

// DefaultName is the config file looked up in the working directory when no
// explicit path is given.
const DefaultName = "wsjf"

// Formats lists the accepted output formats.
var Formats = []string{"text", "json"}

// Config holds the resolved settings.
type Config struct {
	Format     string `mapstructure:"format"`
	Verbose    bool   `mapstructure:"verbose"`
	Jobs       string `mapstructure:"jobs"`
	AppendMode string `mapstructure:"append_mode"`
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyJobs, "")
	v.SetDefault(KeyAppendMode, string(session.AppendPreserve))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds each flag of fs that names a config key. Flag names use
// dashes where keys use underscores.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyFormat, KeyVerbose, KeyJobs, KeyAppendMode} {
		flag := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// Load reads the config file and returns the validated settings.
//
// An explicit path must exist. Without one, wsjf.yaml in the working
// directory is used when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings and normalizes their case.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, Formats)
	}

	mode, err := session.ParseAppendMode(c.AppendMode)
	if err != nil {
		return err
	}
	c.AppendMode = string(mode)
	return nil
}
