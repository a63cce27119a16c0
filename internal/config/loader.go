package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SIGCHAIN_CHAIN_CUTOFF_HZ.
const EnvPrefix = "SIGCHAIN"

// Load loads configuration from file. With an empty path the default
// locations are searched and a missing file falls back to the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("signalchain")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return parseConfig(v)
}

// setDefaults registers every key so that env overrides apply even without a file.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("input", d.Input)
	v.SetDefault("outputs.pre_reconstruction", d.Outputs.PreReconstruction)
	v.SetDefault("outputs.final", d.Outputs.Final)

	v.SetDefault("chain.target_rate", d.Chain.TargetRate)
	v.SetDefault("chain.cutoff_hz", d.Chain.CutoffHz)
	v.SetDefault("chain.order", d.Chain.Order)

	v.SetDefault("wav.bit_depth", d.WAV.BitDepth)

	v.SetDefault("plot.window_ms", d.Plot.WindowMS)
	v.SetDefault("plot.png", d.Plot.PNG)
	v.SetDefault("plot.html", d.Plot.HTML)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
