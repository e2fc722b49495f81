package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/nibzard/trainreg/internal/utils"
)

// DotEnvFile is read from the working directory before TRAINREG_* lookups.
const DotEnvFile = ".env"

// loadDotEnv loads .env without overriding variables already set.
// A missing file is not an error.
func loadDotEnv() error {
	err := godotenv.Load(DotEnvFile)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TRAINREG_DATA"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TRAINREG_SCHEMA"); v != "" {
		cfg.SchemaFile = v
	}
	if v := os.Getenv("TRAINREG_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("TRAINREG_VALIDATE"); v != "" {
		cfg.ValidateOnLoad = utils.BoolFromString(v)
	}
	if v := os.Getenv("TRAINREG_KEEP_ON_MISSING"); v != "" {
		cfg.KeepOnMissing = utils.BoolFromString(v)
	}
	if v := os.Getenv("TRAINREG_PROMPT"); v != "" {
		cfg.Prompt = v
	}
	if v := os.Getenv("TRAINREG_PRESERVE_CASE"); v != "" {
		cfg.PreserveArgCase = utils.BoolFromString(v)
	}
	if v := os.Getenv("TRAINREG_JOURNAL"); v != "" {
		cfg.Journal = utils.BoolFromString(v)
	}

	// Logging configuration
	if v := os.Getenv("TRAINREG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TRAINREG_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TRAINREG_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = utils.BoolFromString(v)
	}
	if v := os.Getenv("TRAINREG_LOG_CALLER"); v != "" {
		cfg.LogCaller = utils.BoolFromString(v)
	}
}
