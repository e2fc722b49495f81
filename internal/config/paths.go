package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// expandPath expands $VAR references and a leading ~ in p.
// On Windows, ~\ is accepted as well as ~/.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded != "~" && !hasHomePrefix(expanded) {
		return expanded
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	if expanded == "~" {
		return home
	}
	return filepath.Join(home, expanded[2:])
}

func hasHomePrefix(p string) bool {
	if strings.HasPrefix(p, "~/") {
		return true
	}
	return runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`)
}
