// Package config loads sciboot settings using Viper from, in increasing order
// of precedence, built-in defaults, a .sciboot.yaml file, SCIBOOT_*
// environment variables and command-line flags.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/YuminosukeSato/sciboot/pkg/errors"
	"github.com/YuminosukeSato/sciboot/pkg/log"
)

const (
	// EnvPrefix prefixes every environment override, e.g. SCIBOOT_ROUNDS.
	EnvPrefix = "SCIBOOT"
	// EnvConfigFile names a config file to use instead of .sciboot.yaml.
	EnvConfigFile = "SCIBOOT_CONFIG_FILE"
	fileName      = ".sciboot"
)

// Keys shared by the config file, the environment and the CLI flags.
const (
	KeyLogLevel = "log_level"
	KeyFormat   = "format"
	KeySeed     = "seed"
	KeyWorkers  = "workers"
	KeyRounds   = "rounds"
	KeyBins     = "bins"
)

// Config holds the resolved settings.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	Format   string `mapstructure:"format" yaml:"format"`
	// Seed makes sampling reproducible. Negative means the process-wide source.
	Seed    int64 `mapstructure:"seed" yaml:"seed"`
	Workers int   `mapstructure:"workers" yaml:"workers"`
	Rounds  int   `mapstructure:"rounds" yaml:"rounds"`
	Bins    int   `mapstructure:"bins" yaml:"bins"`
}

// Seeded reports whether a fixed seed was configured.
func (c *Config) Seeded() bool {
	return c.Seed >= 0
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyFormat, "json")
	v.SetDefault(KeySeed, -1)
	v.SetDefault(KeyWorkers, 1)
	v.SetDefault(KeyRounds, 100)
	v.SetDefault(KeyBins, 20)
}

// New returns a Viper instance with defaults and environment binding set up
// and the config file read. cfgFile overrides SCIBOOT_CONFIG_FILE, which
// overrides ./.sciboot.yaml. A missing default file is not an error.
func New(cfgFile string, getenv func(string) string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	explicit := true
	switch {
	case cfgFile != "":
		v.SetConfigFile(cfgFile)
	case getenv(EnvConfigFile) != "":
		v.SetConfigFile(getenv(EnvConfigFile))
	default:
		explicit = false
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(fileName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "read config %s", v.ConfigFileUsed())
		}
	}
	return v, nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "json", "yaml":
	default:
		return errors.NewValidationError(KeyFormat, "must be json or yaml", c.Format)
	}
	if c.Rounds < 0 {
		return errors.NewValidationError(KeyRounds, "must be non-negative", c.Rounds)
	}
	if c.Workers < 0 {
		return errors.NewValidationError(KeyWorkers, "must be non-negative", c.Workers)
	}
	if c.Bins < 0 {
		return errors.NewValidationError(KeyBins, "must be non-negative", c.Bins)
	}
	return nil
}
