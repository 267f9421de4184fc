// Package paths provides sudo-aware path resolution for cliacase.
//
// Sequencing servers often run maintenance tooling through sudo; these
// helpers resolve paths against the invoking user's home (via SUDO_USER)
// instead of root's.
package paths

import (
	"os"
	"os/user"
	"path/filepath"
)

// UserHomeDir returns the home directory of the actual user.
// If running with sudo, returns the SUDO_USER's home directory, not root's.
func UserHomeDir() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		u, err := user.Lookup(sudoUser)
		if err == nil {
			return u.HomeDir, nil
		}
		// Fall through if lookup fails
	}

	return os.UserHomeDir()
}

// UserConfigDir returns the config directory of the actual user,
// typically ~/.config on Linux.
func UserConfigDir() (string, error) {
	homeDir, err := UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config"), nil
}

// AppDir returns the cliacase config directory for the actual user,
// ~/.config/cliacase.
func AppDir() (string, error) {
	configDir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cliacase"), nil
}

// ConfigPath returns the path to the cliacase config file,
// ~/.config/cliacase/config.yaml.
func ConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LogPath returns the default cliacase log file path,
// ~/.config/cliacase/logs/cliacase.log.
func LogPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "cliacase.log"), nil
}
