// Package paths resolves the configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
)

// AppDirName is the per-user application directory under the platform
// config root.
const AppDirName = "TodoApp"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "TODOAPP_CONFIG_DIR"
	EnvDataDir   = "TODOAPP_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	userConfigDir func() (string, error)
}{
	userConfigDir: os.UserConfigDir,
}

// DefaultDir returns the per-user application directory used for both
// configuration and data.
//
// Linux:   $XDG_CONFIG_HOME/TodoApp (fallback ~/.config/TodoApp)
// macOS:   ~/Library/Application Support/TodoApp
// Windows: %AppData%/TodoApp
func DefaultDir() (string, error) {
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > TODOAPP_CONFIG_DIR env > DefaultDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > TODOAPP_DATA_DIR env > DefaultDir().
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDir()
}

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
