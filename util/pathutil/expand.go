// Package pathutil expands user-supplied paths from configuration.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Expand resolves a leading ~ and $VAR references in path and returns an
// absolute, cleaned path. An empty path stays empty.
func Expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	path = os.ExpandEnv(path)
	return filepath.Abs(path)
}

// ExpandAll expands each non-empty entry of paths in place and stops at the
// first failure.
func ExpandAll(paths ...*string) error {
	for _, p := range paths {
		if p == nil || *p == "" {
			continue
		}
		expanded, err := Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}
