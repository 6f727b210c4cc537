package main

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// findOnairBinary finds the onair binary under test on PATH.
func findOnairBinary() (string, error) {
	path, err := exec.LookPath("onair")
	if err != nil {
		return "", fmt.Errorf("could not find 'onair' binary in PATH; build it into ./bin first")
	}
	return path, nil
}

// writeStudioConfig writes an onair.yml into dir that keeps the socket,
// database and logs inside the sandbox, and returns the config and socket
// paths.
func writeStudioConfig(ctx *harness.Context, dir string) (string, string, error) {
	socket := filepath.Join(ctx.HomeDir(), "onaird.sock")
	cfg := fmt.Sprintf(`version: "1.0"
switcher:
  default_transition: cut
daemon:
  socket: %s
storage:
  path: %s
`, socket, filepath.Join(ctx.HomeDir(), "onair.db"))
	path := filepath.Join(dir, "onair.yml")
	if err := fs.WriteString(path, cfg); err != nil {
		return "", "", err
	}
	return path, socket, nil
}
