// Package process inspects and signals the daemon process.
package process

import (
	"os"
	"syscall"
	"time"
)

// IsProcessAlive checks if a process with the given PID is still running.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// Signal 0 probes for existence. EPERM means alive but owned by someone else.
	err = process.Signal(syscall.Signal(0))
	return err == nil || os.IsPermission(err)
}

// Terminate sends SIGTERM to pid and waits up to timeout for it to exit. It
// reports whether the process is gone.
func Terminate(pid int, timeout time.Duration) (bool, error) {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false, err
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		if !IsProcessAlive(pid) {
			return true, nil
		}
		return false, err
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !IsProcessAlive(pid) {
			return true, nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return !IsProcessAlive(pid), nil
}
