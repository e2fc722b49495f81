package config

import (
	"flag"
)

// parseFlags defines global CLI flags bound to cfg and parses args.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("trainreg", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "Trains file to load when the REPL starts")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "JSON Schema file (default: bundled schema)")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Journal directory")

	// Loading
	fs.BoolVar(&cfg.ValidateOnLoad, "validate", cfg.ValidateOnLoad, "Validate trains files against the schema on load")
	fs.BoolVar(&cfg.KeepOnMissing, "keep-on-missing", cfg.KeepOnMissing, "Keep current records when load finds no file")

	// REPL
	fs.StringVar(&cfg.Prompt, "prompt", cfg.Prompt, "REPL prompt")
	fs.BoolVar(&cfg.PreserveArgCase, "preserve-case", cfg.PreserveArgCase, "Lower-case only the command word, not its arguments")
	fs.BoolVar(&cfg.Journal, "journal", cfg.Journal, "Write a JSONL journal of REPL commands")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	return fs.Parse(args)
}
