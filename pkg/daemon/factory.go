package daemon

import (
	"net"
	"os"
	"time"

	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/paths"
)

// New returns a RemoteClient for the daemon on the default socket. It fails
// with DAEMON_NOT_RUNNING when nothing answers there.
func New() (Client, error) {
	return Connect(paths.SocketPath())
}

// Connect returns a RemoteClient for the daemon on socketPath.
func Connect(socketPath string) (Client, error) {
	if !SocketAlive(socketPath) {
		return nil, oaerrors.DaemonNotRunning(socketPath)
	}
	return NewRemoteClient(socketPath)
}

// SocketAlive reports whether something accepts connections on socketPath.
func SocketAlive(socketPath string) bool {
	if _, err := os.Stat(socketPath); err != nil {
		return false
	}
	conn, err := net.DialTimeout("unix", socketPath, 100*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// MustConnect returns a client or panics if the daemon is not available.
// Use this in contexts where the daemon is required.
func MustConnect() Client {
	client, err := New()
	if err != nil {
		panic("onair daemon is not running; start it with 'onair daemon start'")
	}
	return client
}
