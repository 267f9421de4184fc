// Package config loads the cliacase configuration.
//
// Configuration lives in ~/.config/cliacase/config.yaml and every field
// has a working default, so the file is optional. Command-line flags
// override loaded values.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/seqops/cliacase/internal/logging"
	"github.com/seqops/cliacase/internal/paths"
	"github.com/seqops/cliacase/internal/samplekey"
)

// HelperConfig describes how the external sample-key helper is invoked.
type HelperConfig struct {
	// Command is the helper executable, resolved via PATH.
	Command string `mapstructure:"command"`
	// Flags are passed ahead of "-f <params_file>".
	Flags []string `mapstructure:"flags"`
	// ParamsFile is the parameter filename under the run directory.
	ParamsFile string `mapstructure:"params_file"`
}

// SamplesConfig controls how helper output reduces to identifiers.
type SamplesConfig struct {
	// Prefix selects sample values in standard mode.
	Prefix string `mapstructure:"prefix"`
	// SuffixLen is the barcode suffix length stripped from every value.
	SuffixLen int `mapstructure:"suffix_len"`
	// CohortPattern selects sample values in cohort (--ocp) mode.
	CohortPattern string `mapstructure:"cohort_pattern"`
}

// Config is the root cliacase configuration.
type Config struct {
	Helper  HelperConfig   `mapstructure:"helper"`
	Samples SamplesConfig  `mapstructure:"samples"`
	Logging logging.Config `mapstructure:"logging"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Helper: HelperConfig{
			Command:    samplekey.DefaultCommand,
			Flags:      samplekey.DefaultFlags(),
			ParamsFile: samplekey.DefaultParamsFile,
		},
		Samples: SamplesConfig{
			Prefix:        samplekey.DefaultPrefix,
			SuffixLen:     samplekey.DefaultSuffixLen,
			CohortPattern: samplekey.DefaultCohortPattern,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads the config file at path, or the default location when path
// is empty, and returns defaults merged with whatever the file sets.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		p, err := paths.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get config path: %w", err)
		}
		path = p
	}
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return cfg, nil
}

// SampleOptions folds the helper and sample settings into the options
// consumed by the samplekey collector.
func (c *Config) SampleOptions() samplekey.Options {
	return samplekey.Options{
		Command:       c.Helper.Command,
		Flags:         c.Helper.Flags,
		ParamsFile:    c.Helper.ParamsFile,
		Prefix:        c.Samples.Prefix,
		SuffixLen:     c.Samples.SuffixLen,
		CohortPattern: c.Samples.CohortPattern,
	}
}
