package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultLogDir returns ~/.nativebridge/logs, or a directory under the
// temp dir when the home directory is unknown.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".nativebridge", "logs")
	}
	return filepath.Join(home, ".nativebridge", "logs")
}

// DefaultLogPath returns the bridge log file.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "bridge.log")
}

// FindLogFile returns explicit if it exists, else the default log file.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("log file not found: %s", explicit)
		}
		return explicit, nil
	}

	path := DefaultLogPath()
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no log file found, run a command with --debug first.\nExpected at: %s", path)
	}
	return path, nil
}
