package config

import (
	"testing"
	"time"

	"github.com/grovetools/onair/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad transition", func(c *Config) { c.Switcher.DefaultTransition = "dissolve" }, true},
		{"duration too long", func(c *Config) { c.Switcher.DefaultTransitionMs = 20000 }, true},
		{"negative timer", func(c *Config) { c.Timers.StreamConnect = D(-time.Second) }, true},
		{"rate out of range", func(c *Config) { r := 1.5; c.Streams.ConnectSuccessRate = &r }, true},
		{"relative db", func(c *Config) { c.Storage.Path = "presets.db" }, true},
		{"missing templates dir", func(c *Config) { c.Scoreboard.TemplatesDir = "/does/not/exist" }, true},
		{"duplicate device", func(c *Config) {
			c.Devices.Cameras = []Device{{ID: "a", Label: "A"}}
			c.Devices.Microphones = []Device{{ID: "a", Label: "Mic"}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.SetDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeConfigValidation) {
				t.Errorf("Expected CONFIG_VALIDATION, got %v", errors.GetCode(err))
			}
		})
	}
}

func TestMergeMaps(t *testing.T) {
	base := map[string]interface{}{
		"timers": map[string]interface{}{"comment_display": "8s", "stream_connect": "2s"},
		"ai":     map[string]interface{}{"model": "a"},
	}
	override := map[string]interface{}{
		"timers": map[string]interface{}{"comment_display": "3s"},
		"ai":     "replaced",
	}
	merged := mergeMaps(base, override)

	timers := merged["timers"].(map[string]interface{})
	if timers["comment_display"] != "3s" || timers["stream_connect"] != "2s" {
		t.Errorf("Nested maps should merge, got %v", timers)
	}
	if merged["ai"] != "replaced" {
		t.Errorf("Non-map override should replace, got %v", merged["ai"])
	}
	if base["timers"].(map[string]interface{})["comment_display"] != "8s" {
		t.Error("Base map must not be mutated")
	}
}
