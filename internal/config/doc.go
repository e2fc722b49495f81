// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.trainreg/trainreg.toml or OS-specific config directory)
// 3. Project config file (trainreg.toml or .trainreg.toml in the working directory)
// 4. A .env file in the working directory (never overrides the real environment)
// 5. Environment variables (TRAINREG_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.trainreg/trainreg.toml (preferred)
// - Windows: %APPDATA%\trainreg\trainreg.toml
// - macOS: ~/Library/Application Support/trainreg/trainreg.toml
// - Linux/BSD: $XDG_CONFIG_HOME/trainreg/trainreg.toml or ~/.config/trainreg/trainreg.toml
//
// Project-level config locations (overrides user config):
// - ./trainreg.toml (preferred)
// - ./.trainreg.toml
package config
