package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeDirName is the per-project directory holding config, logs and history
const HomeDirName = ".monsterxml"

// HomeEnvVar overrides the home directory location
const HomeEnvVar = "MONSTERXML_HOME"

// GetHome returns the monsterxml home directory.
// Priority order:
//  1. MONSTERXML_HOME environment variable (if set)
//  2. The nearest .monsterxml directory in the working directory or its parents
//  3. .monsterxml in the current working directory (fallback)
//
// The directory is not created.
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	if found, ok := findHomeUpwards(cwd); ok {
		return found, nil
	}

	return filepath.Join(cwd, HomeDirName), nil
}

// findHomeUpwards walks from start towards the filesystem root looking for a .monsterxml directory
func findHomeUpwards(start string) (string, bool) {
	current := start
	for {
		candidate := filepath.Join(current, HomeDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// GetConfigPath returns the path of config.yaml inside the home directory
func GetConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// GetHistoryDBPath returns the default history database path inside the home directory
func GetHistoryDBPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}
