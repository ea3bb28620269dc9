// Package cliconfig loads and validates the YAML configuration file
// for the mercury-x509 CLI.
package cliconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputMode selects what EmitJSON path a decode operation takes.
type OutputMode string

const (
	// OutputFull decodes and renders the entire certificate.
	OutputFull OutputMode = "full"
	// OutputPrefix decodes only serialNumber/issuer and renders them.
	OutputPrefix OutputMode = "prefix"
	// OutputPrefixHex decodes only the prefix and renders it as a
	// single hex-encoded field instead of its parsed fields.
	OutputPrefixHex OutputMode = "prefix-hex"
)

// Config is the YAML configuration for the mercury-x509 CLI.
type Config struct {
	// Output selects the decode mode: "full", "prefix", or "prefix-hex".
	Output OutputMode `yaml:"output"`

	// Workers bounds the number of concurrent decode goroutines used by
	// the scan subcommand. Zero means "use GOMAXPROCS".
	Workers int `yaml:"workers"`

	// Pretty indents each certificate's JSON object when true. The
	// default (false) emits newline-delimited, single-line JSON.
	Pretty bool `yaml:"pretty"`
}

// Load reads and validates a Config from a YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with the CLI's documented defaults.
func Default() *Config {
	return &Config{
		Output:  OutputFull,
		Workers: 0,
		Pretty:  false,
	}
}

// Validate checks that the configuration is well-formed.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputFull, OutputPrefix, OutputPrefixHex:
	default:
		return fmt.Errorf("unsupported output mode: %s (must be one of full, prefix, prefix-hex)", c.Output)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}

	return nil
}
