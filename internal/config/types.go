package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultPrompt    = ">>> "
	DefaultLogDir    = "~/.trainreg"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultValidate  = true
)

// Config holds the full configuration for trainreg.
type Config struct {
	// Paths
	DataFile   string `toml:"data_file"`   // Loaded when the REPL starts, if set
	SchemaFile string `toml:"schema_file"` // Empty means the bundled schema
	LogDir     string `toml:"log_dir"`

	// Loading
	ValidateOnLoad bool `toml:"validate"`
	KeepOnMissing  bool `toml:"keep_on_missing"` // Keep records when load hits a missing file

	// REPL
	Prompt          string `toml:"prompt"`
	PreserveArgCase bool   `toml:"preserve_arg_case"` // Lower-case only the command word
	Journal         bool   `toml:"journal"`           // Write a JSONL journal per session

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// Check reports invalid option values.
func (c *Config) Check() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid log_level %q (expected debug|info|warn|error|fatal)", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q (expected text|json|logfmt)", c.LogFormat)
	}
	if c.Prompt == "" {
		return fmt.Errorf("prompt must not be empty")
	}
	return nil
}

// WriteTOML writes the effective configuration as TOML.
func (c *Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
