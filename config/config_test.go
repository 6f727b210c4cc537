package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFromBytes(nil, "yaml")
	if err != nil {
		t.Fatalf("Failed to load empty config: %v", err)
	}

	if cfg.Switcher.SafeSourceID != "safe-scene-src" {
		t.Errorf("Expected safe source 'safe-scene-src', got '%s'", cfg.Switcher.SafeSourceID)
	}
	if cfg.Audio.MicLock.ProtectedChannelID != "mic-1" {
		t.Errorf("Expected protected channel 'mic-1', got '%s'", cfg.Audio.MicLock.ProtectedChannelID)
	}
	if !cfg.MicLockEnabled() {
		t.Error("Expected mic lock to be enabled by default")
	}
	if cfg.Timers.CommentDisplay.Duration != 8*time.Second {
		t.Errorf("Expected comment display 8s, got %v", cfg.Timers.CommentDisplay)
	}
	if cfg.Switcher.FrameInterval.Duration != 16*time.Millisecond {
		t.Errorf("Expected frame interval 16ms, got %v", cfg.Switcher.FrameInterval)
	}
	if cfg.Scoreboard.MaxEvents != 500 || cfg.Scoreboard.HistoryDepth != 50 {
		t.Errorf("Unexpected scoreboard retention: %+v", cfg.Scoreboard)
	}
	if *cfg.Streams.ConnectSuccessRate != 0.9 {
		t.Errorf("Expected connect success rate 0.9, got %v", *cfg.Streams.ConnectSuccessRate)
	}
}

func TestLoadYAML(t *testing.T) {
	yamlContent := []byte(`
version: "1.0"
switcher:
  default_transition: wipe-lr
  default_transition_ms: 1200
audio:
  mic_lock:
    default_enabled: false
    protected_channel_id: host-mic
timers:
  comment_display: 3s
scoreboard:
  default_sport: basketball

logging:
  level: debug
`)

	cfg, err := LoadFromBytes(yamlContent, "yaml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Switcher.DefaultTransition != "wipe-lr" || cfg.Switcher.DefaultTransitionMs != 1200 {
		t.Errorf("Switcher not loaded: %+v", cfg.Switcher)
	}
	if cfg.MicLockEnabled() {
		t.Error("Expected mic lock to be disabled")
	}
	if cfg.Audio.MicLock.ProtectedChannelID != "host-mic" {
		t.Errorf("Expected protected channel 'host-mic', got '%s'", cfg.Audio.MicLock.ProtectedChannelID)
	}
	if cfg.Timers.CommentDisplay.Duration != 3*time.Second {
		t.Errorf("Expected comment display 3s, got %v", cfg.Timers.CommentDisplay)
	}
	if cfg.Timers.StreamConnect.Duration != 2*time.Second {
		t.Errorf("Expected default stream connect 2s, got %v", cfg.Timers.StreamConnect)
	}

	type logCfg struct {
		Level string `yaml:"level"`
	}
	var lc logCfg
	if err := cfg.UnmarshalExtension("logging", &lc); err != nil {
		t.Fatalf("Failed to unmarshal logging extension: %v", err)
	}
	if lc.Level != "debug" {
		t.Errorf("Expected logging level 'debug', got '%s'", lc.Level)
	}
}

func TestLoadTOML(t *testing.T) {
	tomlContent := []byte(`
[switcher]
default_transition = "cut"

[timers]
health_interval = "500ms"

[[devices.cameras]]
id = "cam-usb"
label = "USB Camera"
`)

	cfg, err := LoadFromBytes(tomlContent, "toml")
	if err != nil {
		t.Fatalf("Failed to load TOML config: %v", err)
	}
	if cfg.Switcher.DefaultTransition != "cut" {
		t.Errorf("Expected cut, got %s", cfg.Switcher.DefaultTransition)
	}
	if cfg.Timers.HealthInterval.Duration != 500*time.Millisecond {
		t.Errorf("Expected 500ms, got %v", cfg.Timers.HealthInterval)
	}
	if len(cfg.Devices.Cameras) != 1 || cfg.Devices.Cameras[0].Label != "USB Camera" {
		t.Errorf("Devices not loaded: %+v", cfg.Devices)
	}
}

func TestEnvExpansionAndOverlay(t *testing.T) {
	t.Setenv("TEST_AI_KEY", "sk-test")
	t.Setenv("ONAIR_LISTEN", "127.0.0.1:7420")

	cfg, err := LoadFromBytes([]byte(`
ai:
  api_key: ${TEST_AI_KEY}
  model: ${TEST_AI_MODEL:-local-model}
`), "yaml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.AI.APIKey != "sk-test" {
		t.Errorf("Expected expanded api key, got '%s'", cfg.AI.APIKey)
	}
	if cfg.AI.Model != "local-model" {
		t.Errorf("Expected default model from expansion, got '%s'", cfg.AI.Model)
	}
	if cfg.Daemon.Listen != "127.0.0.1:7420" {
		t.Errorf("Expected listen from ONAIR_LISTEN, got '%s'", cfg.Daemon.Listen)
	}
}

func TestLayeredLoad(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ONAIR_HOME", filepath.Join(root, "home"))
	globalDir := filepath.Join(root, "home", "config", "onair")
	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(globalDir, "onair.yml"), "timers:\n  comment_display: 4s\n  stream_connect: 1s\n")

	project := filepath.Join(root, "show")
	nested := filepath.Join(project, "rundown", "segment")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(project, "onair.yml"), "timers:\n  comment_display: 6s\nscoreboard:\n  default_sport: boxing\n")
	writeFile(t, filepath.Join(project, "onair.override.yml"), "scoreboard:\n  default_sport: volleyball\n")

	layers := Layers(nested)
	if len(layers) != 3 {
		t.Fatalf("Expected 3 layers, got %v", layers)
	}

	cfg, err := LoadFrom(nested)
	if err != nil {
		t.Fatalf("Failed to load layered config: %v", err)
	}
	if cfg.Timers.CommentDisplay.Duration != 6*time.Second {
		t.Errorf("Project layer should win over global, got %v", cfg.Timers.CommentDisplay)
	}
	if cfg.Timers.StreamConnect.Duration != time.Second {
		t.Errorf("Global layer should survive the merge, got %v", cfg.Timers.StreamConnect)
	}
	if cfg.Scoreboard.DefaultSport != "volleyball" {
		t.Errorf("Override layer should win, got %s", cfg.Scoreboard.DefaultSport)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "onair.yml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestParseError(t *testing.T) {
	if _, err := LoadFromBytes([]byte("switcher: [unclosed"), "yaml"); err == nil {
		t.Fatal("Expected parse error")
	}
	if _, err := LoadFromBytes([]byte("timers:\n  comment_display: soon\n"), "yaml"); err == nil {
		t.Fatal("Expected duration parse error")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadExpandsPaths(t *testing.T) {
	t.Setenv("ONAIR_TEST_STUDIO", "/srv/studio")
	cfg, err := LoadFromBytes([]byte("storage:\n  path: $ONAIR_TEST_STUDIO/onair.db\n"), "yaml")
	if err != nil {
		t.Fatalf("LoadFromBytes failed: %v", err)
	}
	if cfg.Storage.Path != "/srv/studio/onair.db" {
		t.Errorf("Expected expanded storage path, got '%s'", cfg.Storage.Path)
	}
}
