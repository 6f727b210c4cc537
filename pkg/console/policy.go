package console

import (
	"time"

	"github.com/grovetools/onair/config"
	"github.com/grovetools/onair/pkg/models"
)

// Policy holds the configured rules the dispatcher consults. It is reloaded
// with the configuration and read on every dispatch.
type Policy struct {
	ProtectedChannelID  string `json:"protectedChannelId"`
	SafeSourceID        string `json:"safeSourceId"`
	SafeLightingSceneID string `json:"safeLightingSceneId"`

	// TickInterval paces the live and recording counters.
	TickInterval   time.Duration `json:"tickInterval"`
	CommentDisplay time.Duration `json:"commentDisplay"`
	StreamConnect  time.Duration `json:"streamConnect"`
	HealthInterval time.Duration `json:"healthInterval"`
	ClockTick      time.Duration `json:"clockTick"`
}

// DefaultPolicy is the stock rig policy.
func DefaultPolicy() Policy {
	return Policy{
		ProtectedChannelID:  models.ProtectedChannelID,
		SafeSourceID:        models.SafeSourceID,
		SafeLightingSceneID: models.SafeLightingSceneID,
		TickInterval:        time.Second,
		CommentDisplay:      8 * time.Second,
		StreamConnect:       2 * time.Second,
		HealthInterval:      2 * time.Second,
		ClockTick:           time.Second,
	}
}

// PolicyFromConfig derives the policy of a loaded configuration. Zero values
// keep the defaults.
func PolicyFromConfig(cfg *config.Config) Policy {
	p := DefaultPolicy()
	if cfg == nil {
		return p
	}
	setString(&p.ProtectedChannelID, cfg.Audio.MicLock.ProtectedChannelID)
	setString(&p.SafeSourceID, cfg.Switcher.SafeSourceID)
	setString(&p.SafeLightingSceneID, cfg.Lighting.SafeSceneID)
	setDuration(&p.CommentDisplay, cfg.Timers.CommentDisplay.Duration)
	setDuration(&p.StreamConnect, cfg.Timers.StreamConnect.Duration)
	setDuration(&p.HealthInterval, cfg.Timers.HealthInterval.Duration)
	setDuration(&p.ClockTick, cfg.Timers.ClockTick.Duration)
	return p
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
