package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.trainreg/trainreg.toml or OS-specific config dir)
// 3. Project config file (trainreg.toml or .trainreg.toml in current directory)
// 4. .env file
// 5. Environment variables
// 6. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	userConfigFile := findUserConfigFile()
	if userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	projectConfigFile := findProjectConfigFile()
	if projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Pull .env into the process environment
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	// 5. Override from environment
	loadFromEnv(cfg)

	// 6. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 7. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// ActiveConfigFile returns the config file that wins (project over user),
// or empty string if none exist.
func ActiveConfigFile() string {
	if p := findProjectConfigFile(); p != "" {
		return p
	}
	return findUserConfigFile()
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// finalizeConfig computes derived values and validates paths.
func finalizeConfig(cfg *Config) error {
	// Expand ~ in paths
	cfg.LogDir = expandPath(cfg.LogDir)
	cfg.DataFile = expandPath(cfg.DataFile)
	cfg.SchemaFile = expandPath(cfg.SchemaFile)

	// Determine project root
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	// Make paths absolute if they're relative
	if cfg.DataFile != "" && !filepath.IsAbs(cfg.DataFile) {
		cfg.DataFile = filepath.Join(cfg.ProjectRoot, cfg.DataFile)
	}
	if cfg.SchemaFile != "" && !filepath.IsAbs(cfg.SchemaFile) {
		cfg.SchemaFile = filepath.Join(cfg.ProjectRoot, cfg.SchemaFile)
	}

	return cfg.Check()
}
