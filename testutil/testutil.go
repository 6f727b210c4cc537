// Package testutil holds helpers shared by the daemon, CLI and TUI tests.
package testutil

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// QuietLogger returns a logger entry that writes nowhere.
func QuietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// TempHome points ONAIR_HOME at a fresh directory for the rest of the test
// and returns it. Every derived path (config, data, state, runtime) lands
// inside it.
func TempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("ONAIR_HOME", home)
	return home
}

// WriteConfig writes body as onair.yml in dir and returns its path.
func WriteConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "onair.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// WaitForSocket blocks until something accepts connections on path or
// fails the test after timeout.
func WaitForSocket(t *testing.T, path string, timeout time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("unix", path, 50*time.Millisecond)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, timeout, 10*time.Millisecond, "nothing listening on %s", path)
}
