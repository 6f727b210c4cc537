package collector

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/onair/config"
	"github.com/grovetools/onair/internal/daemon/store"
)

// ConfigCollector reloads the configuration when one of its layers changes.
type ConfigCollector struct {
	dir      string
	files    []string
	debounce time.Duration
	load     func() (*config.Config, error)
	onReload func(*config.Config)
	logger   *logrus.Entry

	mu      sync.Mutex
	pending *time.Timer
}

// NewConfigCollector watches the directories of files. load rebuilds the
// configuration and onReload receives it.
func NewConfigCollector(files []string, debounce time.Duration, load func() (*config.Config, error), onReload func(*config.Config), logger *logrus.Entry) *ConfigCollector {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &ConfigCollector{files: files, debounce: debounce, load: load, onReload: onReload, logger: logger}
}

// Name returns the collector's name.
func (c *ConfigCollector) Name() string { return "config" }

// Run watches until ctx is canceled. Watching nothing is not an error.
func (c *ConfigCollector) Run(ctx context.Context, st *store.Store, _ Sender) error {
	if len(c.files) == 0 {
		<-ctx.Done()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	targets := make(map[string]bool)
	for _, f := range c.files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			c.logger.WithError(err).Warnf("Failed to watch %s", dir)
			continue
		}
		watched[dir] = true
	}

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			if c.pending != nil {
				c.pending.Stop()
			}
			c.mu.Unlock()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, _ := filepath.Abs(event.Name)
			if !targets[abs] && !isConfigName(event.Name) {
				continue
			}
			c.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			c.schedule(st, filepath.Base(event.Name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Errorf("Watcher error: %v", err)
		}
	}
}

// schedule coalesces bursts of writes into one reload.
func (c *ConfigCollector) schedule(st *store.Store, file string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		c.pending.Stop()
	}
	c.pending = time.AfterFunc(c.debounce, func() { c.reload(st, file) })
}

func (c *ConfigCollector) reload(st *store.Store, file string) {
	cfg, err := c.load()
	if err != nil {
		c.logger.WithError(err).Warnf("Ignoring invalid config change in %s", file)
		return
	}
	c.logger.Infof("Config changed: %s", file)
	if c.onReload != nil {
		c.onReload(cfg)
	}
	st.BroadcastConfigReload(file)
}

func isConfigName(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, "onair.") &&
		(strings.HasSuffix(base, ".yml") || strings.HasSuffix(base, ".yaml") || strings.HasSuffix(base, ".toml"))
}
