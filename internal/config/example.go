package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# trainreg configuration file
# Values can be overridden by .env, TRAINREG_* environment variables or CLI flags

# Trains file loaded when the REPL starts (relative to the working directory)
# data_file = "trains.json"

# JSON Schema used to validate loaded files (empty: bundled schema)
# schema_file = "trains.schema.json"

# Validate trains files on load
validate = true

# Keep the current records when "load" names a missing file
# (false resets the registry to empty)
keep_on_missing = false

# REPL prompt
prompt = ">>> "

# Lower-case only the command word, keep argument case (e.g. file names)
preserve_arg_case = false

# Write a JSONL journal of REPL commands under log_dir
journal = false

# Journal directory (supports ~ expansion and $VAR)
log_dir = "~/.trainreg"

# Console logging
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
