// Package paths provides XDG-compliant path resolution for onair.
//
// Resolution order:
// 1. ONAIR_HOME (portable root) → $ONAIR_HOME/{config,data,state,run}
// 2. XDG env vars → $XDG_*_HOME/onair
// 3. Platform defaults → ~/.config/onair, ~/.local/share/onair, etc.
package paths

import (
	"os"
	"path/filepath"
)

const appName = "onair"

// home resolves one XDG base directory.
func home(portableSub, xdgVar string, fallback ...string) string {
	if root := os.Getenv("ONAIR_HOME"); root != "" {
		return filepath.Join(root, portableSub)
	}
	if dir := os.Getenv(xdgVar); dir != "" {
		return dir
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append([]string{homeDir}, fallback...)...)
	}
	return ""
}

func under(base string) string {
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// ConfigDir returns the configuration directory.
// Used for the global onair.yml and operator sport templates.
func ConfigDir() string {
	return under(home("config", "XDG_CONFIG_HOME", ".config"))
}

// DataDir returns the data directory.
// Used for the preset database.
func DataDir() string {
	return under(home("data", "XDG_DATA_HOME", ".local", "share"))
}

// StateDir returns the state directory.
// Used for boot flags, logs and the pid file.
func StateDir() string {
	return under(home("state", "XDG_STATE_HOME", ".local", "state"))
}

// RuntimeDir returns the runtime directory for sockets.
// Uses XDG_RUNTIME_DIR when available (Linux), falls back to StateDir (macOS).
func RuntimeDir() string {
	if root := os.Getenv("ONAIR_HOME"); root != "" {
		return filepath.Join(root, "run")
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, appName)
	}
	return StateDir()
}

// SocketPath returns the path to the daemon unix socket.
func SocketPath() string {
	return filepath.Join(RuntimeDir(), "onaird.sock")
}

// PidFilePath returns the path to the daemon PID file.
func PidFilePath() string {
	return filepath.Join(StateDir(), "onaird.pid")
}

// LogFilePath returns the default daemon log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), "onaird.log")
}

// DatabasePath returns the default preset database.
func DatabasePath() string {
	return filepath.Join(DataDir(), "onair.db")
}

// BootFlagsPath returns the boot flags file read once at startup.
func BootFlagsPath() string {
	return filepath.Join(StateDir(), "boot.yml")
}

// EnsureDirs creates all onair directories if they don't exist.
func EnsureDirs() error {
	dirs := []string{
		ConfigDir(),
		DataDir(),
		StateDir(),
		RuntimeDir(),
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
