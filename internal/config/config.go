// Package config loads pumpvanity settings from an optional YAML file and
// PUMPVANITY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Amr-9/pumpvanity/internal/wallet"
	"github.com/Amr-9/pumpvanity/pkg/generator"
)

// EnvPrefix is prepended to every environment override, e.g. PUMPVANITY_SEARCH_WORKERS.
const EnvPrefix = "PUMPVANITY"

// Config holds the complete application configuration
type Config struct {
	Search  SearchConfig  `mapstructure:"search"  yaml:"search"`
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	Log     LogConfig     `mapstructure:"log"     yaml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// SearchConfig describes what to look for and how hard to try.
type SearchConfig struct {
	Network      string        `mapstructure:"network"       yaml:"network"`
	Prefix       string        `mapstructure:"prefix"        yaml:"prefix"`
	Suffix       string        `mapstructure:"suffix"        yaml:"suffix"`
	Workers      int           `mapstructure:"workers"       yaml:"workers"`
	Timeout      time.Duration `mapstructure:"timeout"       yaml:"timeout"` // 0 means no limit
	HighPriority bool          `mapstructure:"high_priority" yaml:"high_priority"`
}

// OutputConfig controls where the found keypair is saved.
type OutputConfig struct {
	File    string `mapstructure:"file"    yaml:"file"` // empty disables saving
	Format  string `mapstructure:"format"  yaml:"format"`
	Encrypt bool   `mapstructure:"encrypt" yaml:"encrypt"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
	File   string `mapstructure:"file"   yaml:"file"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled    bool   `mapstructure:"enabled"     yaml:"enabled"`
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
	Path       string `mapstructure:"path"        yaml:"path"`
}

// Load reads configPath (if non-empty) and the environment on top of defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// defaults alone always unmarshal
		panic(err)
	}
	return cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("search.network", "solana")
	v.SetDefault("search.prefix", "")
	v.SetDefault("search.suffix", "")
	v.SetDefault("search.workers", runtime.NumCPU())
	v.SetDefault("search.timeout", "0s")
	v.SetDefault("search.high_priority", false)

	v.SetDefault("output.file", "wallet.txt")
	v.SetDefault("output.format", wallet.FormatText)
	v.SetDefault("output.encrypt", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	v.SetDefault("log.file", "")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen_addr", "127.0.0.1:9464")
	v.SetDefault("metrics.path", "/metrics")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateMetrics()
}

func (c *Config) validateSearch() error {
	if _, err := generator.ParseNetwork(c.Search.Network); err != nil {
		return fmt.Errorf("search.network: %w", err)
	}
	if c.Search.Prefix == "" && c.Search.Suffix == "" {
		return generator.ErrEmptyPattern
	}
	if err := c.MatchSpec().Validate(); err != nil {
		return fmt.Errorf("search pattern: %w", err)
	}
	if c.Search.Workers < 1 {
		return fmt.Errorf("search.workers: %w: got %d", generator.ErrNoWorkers, c.Search.Workers)
	}
	if c.Search.Timeout < 0 {
		return errors.New("search.timeout must not be negative")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case wallet.FormatText, wallet.FormatYAML, wallet.FormatJSON:
	case wallet.FormatKeygen:
		if c.Output.Encrypt || c.Network() != generator.Solana {
			return fmt.Errorf("output.format: %w", wallet.ErrKeygenFormat)
		}
	default:
		return fmt.Errorf("output.format must be one of text, yaml, json, keygen, got %q", c.Output.Format)
	}
	if c.Output.Encrypt && c.Output.File == "" {
		return errors.New("output.encrypt requires output.file")
	}
	return nil
}

func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}
	if c.Metrics.ListenAddr == "" {
		return errors.New("metrics.listen_addr must be set when metrics are enabled")
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path)
	}
	return nil
}

// Network returns the parsed search network. Call after Validate.
func (c *Config) Network() generator.Network {
	n, _ := generator.ParseNetwork(c.Search.Network)
	return n
}

// MatchSpec builds the address pattern from the prefix and suffix settings.
func (c *Config) MatchSpec() generator.MatchSpec {
	return generator.NewMatchSpec(c.Search.Prefix, c.Search.Suffix)
}

// Description returns a human-readable description of the target
func (c *Config) Description() string {
	return c.MatchSpec().String()
}
