package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigNames lists the project-level config file names, in lookup order.
var ProjectConfigNames = []string{"trainreg.toml", ".trainreg.toml"}

// findProjectConfigFile returns the first project config name present in
// the working directory.
func findProjectConfigFile() string {
	return firstExisting(ProjectConfigNames)
}

// findUserConfigFile returns the user-level config file, if any.
func findUserConfigFile() string {
	return firstExisting(userConfigCandidates())
}

// userConfigCandidates lists user config locations in lookup order:
// ~/.trainreg/trainreg.toml, then trainreg/trainreg.toml under the OS config
// directory (XDG_CONFIG_HOME, ~/Library/Application Support or %AppData%).
func userConfigCandidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".trainreg", "trainreg.toml"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "trainreg", "trainreg.toml"))
	}
	return paths
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.LogDir = DefaultLogDir
	cfg.ValidateOnLoad = DefaultValidate
	cfg.Prompt = DefaultPrompt
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
