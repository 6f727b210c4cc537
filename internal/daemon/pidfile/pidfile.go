// Package pidfile provides PID file management for the onair daemon.
package pidfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/process"
)

// Acquire records the current PID in path. A file naming a live process
// fails with DAEMON_ALREADY_RUNNING; one naming a dead process is replaced.
// The file is created exclusively so two daemons racing at boot cannot both
// win.
func Acquire(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create pid directory: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(os.Getpid()))
			cerr := f.Close()
			if werr != nil {
				return fmt.Errorf("failed to write pid file: %w", werr)
			}
			return cerr
		}
		if !os.IsExist(err) {
			return fmt.Errorf("failed to create pid file: %w", err)
		}

		pid, rerr := Read(path)
		if rerr == nil && pid != os.Getpid() && process.IsProcessAlive(pid) {
			return oaerrors.New(oaerrors.ErrCodeDaemonAlreadyRunning,
				fmt.Sprintf("daemon already running with PID %d", pid)).WithDetail("pid", pid)
		}
		// Stale or unreadable.
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale pid file: %w", err)
		}
	}
	return oaerrors.New(oaerrors.ErrCodeDaemonAlreadyRunning, "pid file is being claimed by another process").
		WithDetail("path", path)
}

// Release removes the PID file if it still names this process.
func Release(path string) error {
	pid, err := Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if pid != os.Getpid() {
		return nil
	}
	return os.Remove(path)
}

// Read returns the PID stored in the file.
func Read(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(content)))
}

// IsRunning checks if the daemon described by the pidfile is active.
func IsRunning(path string) (bool, int, error) {
	pid, err := Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return process.IsProcessAlive(pid), pid, nil
}
