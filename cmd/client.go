package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/grovetools/onair/cli"
	"github.com/grovetools/onair/config"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/daemon"
)

// socketFor resolves the daemon socket without failing on a broken config.
func socketFor(opts cli.CommandOptions) string {
	cfg, _ := opts.LoadConfig()
	return opts.SocketPath(cfg)
}

// connect returns a client for the daemon, or DAEMON_NOT_RUNNING.
func connect(opts cli.CommandOptions) (daemon.Client, error) {
	var cfg *config.Config
	if loaded, err := opts.LoadConfig(); err == nil {
		cfg = loaded
	}
	socket := opts.SocketPath(cfg)
	if cfg == nil || cfg.Daemon.Listen == "" || opts.Socket != "" || daemon.SocketAlive(socket) {
		return daemon.Connect(socket)
	}
	// Fall back to the TCP listener when the socket is not reachable.
	client, err := daemon.NewHTTPClient("http://" + cfg.Daemon.Listen)
	if err != nil {
		return nil, err
	}
	if !client.IsRunning() {
		return nil, oaerrors.DaemonNotRunning(socket)
	}
	return client, nil
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
