// Package config loads the settings of the signal chain commands.
package config

import (
	"fmt"

	signalchain "github.com/tphakala/go-signal-chain"
)

// Config is the complete command configuration.
type Config struct {
	Input   string        `mapstructure:"input"`
	Outputs OutputsConfig `mapstructure:"outputs"`
	Chain   ChainConfig   `mapstructure:"chain"`
	WAV     WAVConfig     `mapstructure:"wav"`
	Plot    PlotConfig    `mapstructure:"plot"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OutputsConfig names the WAV files written by a run. An empty path skips
// that output.
type OutputsConfig struct {
	PreReconstruction string `mapstructure:"pre_reconstruction"`
	Final             string `mapstructure:"final"`
}

// ChainConfig holds the converter and filter parameters.
type ChainConfig struct {
	TargetRate float64 `mapstructure:"target_rate"`
	CutoffHz   float64 `mapstructure:"cutoff_hz"`
	Order      int     `mapstructure:"order"`
}

// WAVConfig controls the encoding of written files.
type WAVConfig struct {
	BitDepth int `mapstructure:"bit_depth"`
}

// PlotConfig controls the stage plots. Empty paths disable a plot.
type PlotConfig struct {
	WindowMS float64 `mapstructure:"window_ms"`
	PNG      string  `mapstructure:"png"`
	HTML     string  `mapstructure:"html"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// PipelineConfig converts the chain section to the pipeline configuration.
func (c *ChainConfig) PipelineConfig() signalchain.Config {
	return signalchain.Config{
		TargetRate: c.TargetRate,
		Order:      c.Order,
		CutoffHz:   c.CutoffHz,
	}
}

// Paths maps pipeline output names to the configured files.
func (c *OutputsConfig) Paths() map[string]string {
	return map[string]string{
		signalchain.OutputPreReconstruction: c.PreReconstruction,
		signalchain.OutputFinal:             c.Final,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input is required")
	}

	if err := c.Chain.Validate(); err != nil {
		return fmt.Errorf("chain config: %w", err)
	}

	if err := c.WAV.Validate(); err != nil {
		return fmt.Errorf("wav config: %w", err)
	}

	if err := c.Plot.Validate(); err != nil {
		return fmt.Errorf("plot config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates the chain parameters
func (c *ChainConfig) Validate() error {
	cfg := c.PipelineConfig()
	return cfg.Validate()
}

// Validate validates the WAV encoding settings
func (c *WAVConfig) Validate() error {
	switch c.BitDepth {
	case 8, 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("wav.bit_depth must be one of: 8, 16, 24, 32, got %d", c.BitDepth)
	}
}

// Validate validates the plot settings
func (c *PlotConfig) Validate() error {
	if (c.PNG != "" || c.HTML != "") && c.WindowMS <= 0 {
		return fmt.Errorf("plot.window_ms must be positive")
	}
	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be one of: json, console")
	}

	return nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Input: "noisy_sine.wav",
		Outputs: OutputsConfig{
			PreReconstruction: "dac_output_before_recon.wav",
			Final:             "clean_sine.wav",
		},
		Chain: ChainConfig{
			TargetRate: signalchain.DefaultTargetRate,
			CutoffHz:   signalchain.DefaultCutoffHz,
			Order:      signalchain.DefaultOrder,
		},
		WAV: WAVConfig{
			BitDepth: 16,
		},
		Plot: PlotConfig{
			WindowMS: 20,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}
