package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/onair/errors"
)

var transitionTypes = map[string]bool{"cut": true, "fade": true, "wipe-lr": true}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !transitionTypes[c.Switcher.DefaultTransition] {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("switcher.default_transition must be cut, fade or wipe-lr, got %q", c.Switcher.DefaultTransition)).
			WithDetail("field", "switcher.default_transition")
	}
	if c.Switcher.DefaultTransitionMs < 0 || c.Switcher.DefaultTransitionMs > 10000 {
		return errors.New(errors.ErrCodeConfigValidation, "switcher.default_transition_ms must be within 0..10000").
			WithDetail("value", c.Switcher.DefaultTransitionMs)
	}

	durations := map[string]Duration{
		"switcher.frame_interval": c.Switcher.FrameInterval,
		"timers.comment_display":  c.Timers.CommentDisplay,
		"timers.stream_connect":   c.Timers.StreamConnect,
		"timers.health_interval":  c.Timers.HealthInterval,
		"timers.clock_tick":       c.Timers.ClockTick,
	}
	for field, d := range durations {
		if d.Duration < 0 {
			return errors.New(errors.ErrCodeConfigValidation, field+" cannot be negative").
				WithDetail("field", field)
		}
	}

	if c.Scoreboard.MaxEvents < 1 || c.Scoreboard.HistoryDepth < 1 {
		return errors.New(errors.ErrCodeConfigValidation, "scoreboard.max_events and scoreboard.history_depth must be positive")
	}
	if rate := c.Streams.ConnectSuccessRate; rate != nil && (*rate < 0 || *rate > 1) {
		return errors.New(errors.ErrCodeConfigValidation, "streams.connect_success_rate must be within 0..1").
			WithDetail("value", *rate)
	}

	if dir := c.Scoreboard.TemplatesDir; dir != "" {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return errors.New(errors.ErrCodeConfigValidation, "scoreboard.templates_dir is not a directory").
				WithDetail("path", dir)
		}
	}
	if c.Storage.Path != "" && !filepath.IsAbs(c.Storage.Path) && c.Storage.Path != ":memory:" {
		return errors.New(errors.ErrCodeConfigValidation, "storage.path must be absolute").
			WithDetail("path", c.Storage.Path)
	}

	seen := map[string]bool{}
	for _, d := range append(append([]Device(nil), c.Devices.Cameras...), c.Devices.Microphones...) {
		if d.ID == "" {
			return errors.New(errors.ErrCodeConfigValidation, "device id cannot be empty")
		}
		if seen[d.ID] {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("duplicate device id %q", d.ID)).
				WithDetail("device", d.ID)
		}
		seen[d.ID] = true
	}

	return nil
}
