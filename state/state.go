// Package state keeps the small set of process-wide flags that survive a
// restart, stored as a YAML key/value file.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/paths"
)

// Keys of the boot flags.
const (
	KeySetupCompleted = "setup_completed"
	KeyTheme          = "theme"
)

// State represents the persisted flags as a generic map of key-value pairs.
type State map[string]interface{}

// File is a state file on disk.
type File struct {
	mu   sync.Mutex
	path string
}

// Open returns the state file at path, or at the default location when path
// is empty. The file is created on first save.
func Open(path string) *File {
	if path == "" {
		path = paths.BootFlagsPath()
	}
	return &File{path: path}
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Load loads the state from the file.
// Returns an empty state if the file doesn't exist.
func (f *File) Load() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *File) load() (State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if st == nil {
		st = make(State)
	}
	return st, nil
}

// Save writes st to the file.
func (f *File) Save(st State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(st)
}

func (f *File) save(st State) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Get retrieves a value from the state by key.
func (f *File) Get(key string) (interface{}, bool, error) {
	st, err := f.Load()
	if err != nil {
		return nil, false, err
	}
	val, ok := st[key]
	return val, ok, nil
}

// GetString returns an empty string if the key doesn't exist or the value is
// not a string.
func (f *File) GetString(key string) (string, error) {
	val, _, err := f.Get(key)
	if err != nil {
		return "", err
	}
	str, _ := val.(string)
	return str, nil
}

// GetBool returns false if the key doesn't exist or the value is not a bool.
func (f *File) GetBool(key string) (bool, error) {
	val, _, err := f.Get(key)
	if err != nil {
		return false, err
	}
	b, _ := val.(bool)
	return b, nil
}

// Set sets a value in the state.
func (f *File) Set(key string, value interface{}) error {
	return f.update(func(st State) { st[key] = value })
}

// Delete removes a key from the state.
func (f *File) Delete(key string) error {
	return f.update(func(st State) { delete(st, key) })
}

func (f *File) update(fn func(State)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return err
	}
	fn(st)
	return f.save(st)
}

// LoadPrefs reads the boot flags. Missing keys keep the values of def.
func (f *File) LoadPrefs(def models.Prefs) (models.Prefs, error) {
	st, err := f.Load()
	if err != nil {
		return def, err
	}
	prefs := def
	if v, ok := st[KeySetupCompleted].(bool); ok {
		prefs.SetupCompleted = v
	}
	if v, ok := st[KeyTheme].(string); ok && v != "" {
		prefs.Theme = v
	}
	return prefs, nil
}

// SavePrefs writes the boot flags, keeping any other keys in the file.
func (f *File) SavePrefs(p models.Prefs) error {
	return f.update(func(st State) {
		st[KeySetupCompleted] = p.SetupCompleted
		st[KeyTheme] = p.Theme
	})
}
