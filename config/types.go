package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Config is the onair.yml document.
type Config struct {
	Version    string           `yaml:"version" jsonschema:"description=Configuration version (e.g. '1.0')"`
	Switcher   SwitcherConfig   `yaml:"switcher,omitempty" jsonschema:"description=Video switcher behavior"`
	Audio      AudioConfig      `yaml:"audio,omitempty" jsonschema:"description=Audio console behavior"`
	Lighting   LightingConfig   `yaml:"lighting,omitempty" jsonschema:"description=Lighting controller behavior"`
	Timers     TimersConfig     `yaml:"timers,omitempty" jsonschema:"description=Timer windows used by scheduled commands"`
	Scoreboard ScoreboardConfig `yaml:"scoreboard,omitempty" jsonschema:"description=Scoreboard engine settings"`
	Streams    StreamsConfig    `yaml:"streams,omitempty" jsonschema:"description=Simulated stream destinations"`
	Daemon     DaemonConfig     `yaml:"daemon,omitempty" jsonschema:"description=Daemon transport"`
	Storage    StorageConfig    `yaml:"storage,omitempty" jsonschema:"description=Preset storage"`
	AI         AIConfig         `yaml:"ai,omitempty" jsonschema:"description=Text generation service"`
	Devices    DevicesConfig    `yaml:"devices,omitempty" jsonschema:"description=Devices reported by discovery at setup"`

	// Extensions captures all other top-level keys (logging, tool sections).
	Extensions map[string]interface{} `yaml:",inline" jsonschema:"-"`
}

type SwitcherConfig struct {
	SafeSourceID        string   `yaml:"safe_source_id,omitempty" jsonschema:"description=Source put on program by the failsafe"`
	DefaultTransition   string   `yaml:"default_transition,omitempty" jsonschema:"description=Transition type at boot,enum=cut,enum=fade,enum=wipe-lr"`
	DefaultTransitionMs int      `yaml:"default_transition_ms,omitempty" jsonschema:"description=Transition duration at boot in milliseconds,minimum=0,maximum=10000"`
	FrameInterval       Duration `yaml:"frame_interval,omitempty" jsonschema:"description=Pacing of transition frames"`
}

type MicLockConfig struct {
	DefaultEnabled     *bool  `yaml:"default_enabled,omitempty" jsonschema:"description=Mic lock state at boot (default: true)"`
	ProtectedChannelID string `yaml:"protected_channel_id,omitempty" jsonschema:"description=Channel that cannot be muted while mic lock is on"`
}

type AudioConfig struct {
	MicLock MicLockConfig `yaml:"mic_lock,omitempty"`
}

type LightingConfig struct {
	SafeSceneID string `yaml:"safe_scene_id,omitempty" jsonschema:"description=Lighting scene activated by the failsafe"`
}

type TimersConfig struct {
	CommentDisplay Duration `yaml:"comment_display,omitempty" jsonschema:"description=How long a comment overlay stays on screen"`
	StreamConnect  Duration `yaml:"stream_connect,omitempty" jsonschema:"description=Delay before a stream destination connect resolves"`
	HealthInterval Duration `yaml:"health_interval,omitempty" jsonschema:"description=Health sampling interval while live"`
	ClockTick      Duration `yaml:"clock_tick,omitempty" jsonschema:"description=Scoreboard clock step"`
}

type ScoreboardConfig struct {
	DefaultSport string `yaml:"default_sport,omitempty" jsonschema:"description=Sport loaded at boot"`
	MaxEvents    int    `yaml:"max_events,omitempty" jsonschema:"description=Events kept in the scoreboard log,minimum=1"`
	HistoryDepth int    `yaml:"history_depth,omitempty" jsonschema:"description=Undo snapshots kept,minimum=1"`
	TemplatesDir string `yaml:"templates_dir,omitempty" env:"ONAIR_TEMPLATES_DIR" jsonschema:"description=Directory of extra sport templates (yaml or toml)"`
}

type StreamsConfig struct {
	ConnectSuccessRate *float64 `yaml:"connect_success_rate,omitempty" jsonschema:"description=Probability that a simulated connect succeeds,minimum=0,maximum=1"`
	MaxViewers         int      `yaml:"max_viewers,omitempty" jsonschema:"description=Upper bound of simulated viewers"`
}

type DaemonConfig struct {
	Socket string `yaml:"socket,omitempty" env:"ONAIR_SOCKET" jsonschema:"description=Unix socket path (default: runtime dir)"`
	Listen string `yaml:"listen,omitempty" env:"ONAIR_LISTEN" jsonschema:"description=Optional TCP address such as 127.0.0.1:7420"`
}

type StorageConfig struct {
	Path string `yaml:"path,omitempty" env:"ONAIR_DB" jsonschema:"description=SQLite database path (default: data dir)"`
}

type AIConfig struct {
	Endpoint string   `yaml:"endpoint,omitempty" env:"ONAIR_AI_ENDPOINT" jsonschema:"description=OpenAI compatible responses endpoint; empty disables generation"`
	Model    string   `yaml:"model,omitempty" env:"ONAIR_AI_MODEL" jsonschema:"description=Model name"`
	APIKey   string   `yaml:"api_key,omitempty" env:"ONAIR_AI_API_KEY" jsonschema:"description=API key (prefer ${VAR} expansion or the env var)"`
	Timeout  Duration `yaml:"timeout,omitempty" jsonschema:"description=Request timeout"`
}

type Device struct {
	ID    string `yaml:"id" jsonschema:"required"`
	Label string `yaml:"label" jsonschema:"required"`
}

type DevicesConfig struct {
	Cameras     []Device `yaml:"cameras,omitempty"`
	Microphones []Device `yaml:"microphones,omitempty"`
}

// Defaults.
const (
	DefaultVersion            = "1.0"
	DefaultSafeSourceID       = "safe-scene-src"
	DefaultSafeLightingScene  = "safe-white"
	DefaultProtectedChannel   = "mic-1"
	DefaultTransitionType     = "fade"
	DefaultTransitionMs       = 500
	DefaultSport              = "soccer"
	DefaultMaxEvents          = 500
	DefaultHistoryDepth       = 50
	DefaultConnectSuccessRate = 0.9
	DefaultMaxViewers         = 5000
	DefaultModel              = "gpt-4.1-mini"
)

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Switcher.SafeSourceID == "" {
		c.Switcher.SafeSourceID = DefaultSafeSourceID
	}
	if c.Switcher.DefaultTransition == "" {
		c.Switcher.DefaultTransition = DefaultTransitionType
	}
	if c.Switcher.DefaultTransitionMs == 0 {
		c.Switcher.DefaultTransitionMs = DefaultTransitionMs
	}
	c.Switcher.FrameInterval.orDefault(16 * time.Millisecond)

	if c.Audio.MicLock.DefaultEnabled == nil {
		enabled := true
		c.Audio.MicLock.DefaultEnabled = &enabled
	}
	if c.Audio.MicLock.ProtectedChannelID == "" {
		c.Audio.MicLock.ProtectedChannelID = DefaultProtectedChannel
	}
	if c.Lighting.SafeSceneID == "" {
		c.Lighting.SafeSceneID = DefaultSafeLightingScene
	}

	c.Timers.CommentDisplay.orDefault(8 * time.Second)
	c.Timers.StreamConnect.orDefault(2 * time.Second)
	c.Timers.HealthInterval.orDefault(2 * time.Second)
	c.Timers.ClockTick.orDefault(time.Second)

	if c.Scoreboard.DefaultSport == "" {
		c.Scoreboard.DefaultSport = DefaultSport
	}
	if c.Scoreboard.MaxEvents == 0 {
		c.Scoreboard.MaxEvents = DefaultMaxEvents
	}
	if c.Scoreboard.HistoryDepth == 0 {
		c.Scoreboard.HistoryDepth = DefaultHistoryDepth
	}

	if c.Streams.ConnectSuccessRate == nil {
		rate := DefaultConnectSuccessRate
		c.Streams.ConnectSuccessRate = &rate
	}
	if c.Streams.MaxViewers == 0 {
		c.Streams.MaxViewers = DefaultMaxViewers
	}

	if c.AI.Model == "" {
		c.AI.Model = DefaultModel
	}
	c.AI.Timeout.orDefault(15 * time.Second)
}

// MicLockEnabled reports the boot state of the mic lock.
func (c *Config) MicLockEnabled() bool {
	return c.Audio.MicLock.DefaultEnabled == nil || *c.Audio.MicLock.DefaultEnabled
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded onair.yml into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
