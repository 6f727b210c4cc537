package collector

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/config"
	"github.com/grovetools/onair/internal/daemon/store"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/services"
)

type recorder struct {
	mu   sync.Mutex
	cmds []command.Command
}

func (r *recorder) Send(_ context.Context, cmd command.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recorder) types() []command.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []command.Type
	for _, c := range r.cmds {
		out = append(out, c.Type)
	}
	return out
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return logrus.NewEntry(l)
}

func TestSetupRegistersDevices(t *testing.T) {
	st := store.New(models.InitialState(models.DefaultRig()))
	discovery := &services.StaticDiscovery{
		Cameras:     []services.Device{{ID: "usb-cam", Label: "Logitech"}},
		Microphones: []services.Device{{ID: "usb-mic", Label: "Shure"}},
	}
	out := &recorder{}

	require.NoError(t, NewSetupCollector(discovery, testLogger()).Run(context.Background(), st, out))
	assert.Equal(t, []command.Type{command.SourceBatchAdd, command.SetupComplete}, out.types())

	batch, err := command.Decode[command.SourceBatch](out.cmds[0])
	require.NoError(t, err)
	assert.Equal(t, []models.Source{{ID: "usb-cam", Name: "Logitech", Type: models.SourceUSB, IsVisible: true}}, batch.Video)
	require.Len(t, batch.Audio, 1)
	assert.Equal(t, 70.0, batch.Audio[0].Volume)
}

func TestSetupToleratesNoDevices(t *testing.T) {
	st := store.New(models.InitialState(models.DefaultRig()))
	out := &recorder{}
	require.NoError(t, NewSetupCollector(&services.StaticDiscovery{Denied: true}, testLogger()).Run(context.Background(), st, out))
	assert.Equal(t, []command.Type{command.SetupComplete}, out.types())
}

func TestSetupSkipsWhenCompleted(t *testing.T) {
	s := models.InitialState(models.DefaultRig())
	s.Prefs.SetupCompleted = true
	out := &recorder{}
	require.NoError(t, NewSetupCollector(&services.StaticDiscovery{}, testLogger()).Run(context.Background(), store.New(s), out))
	assert.Empty(t, out.types())
}

func TestConfigCollectorReloads(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "onair.yml")
	require.NoError(t, os.WriteFile(file, []byte("version: \"1.0\"\n"), 0644))

	st := store.New(models.State{})
	updates := st.Subscribe()
	defer st.Unsubscribe(updates)

	reloaded := make(chan *config.Config, 4)
	c := NewConfigCollector([]string{file}, 20*time.Millisecond,
		func() (*config.Config, error) { return config.Load(file) },
		func(cfg *config.Config) { reloaded <- cfg },
		testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, st, nil) }()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(file, []byte("version: \"1.0\"\naudio:\n  mic_lock:\n    protected_channel_id: mic-2\n"), 0644)
		select {
		case cfg := <-reloaded:
			return cfg.Audio.MicLock.ProtectedChannelID == "mic-2"
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	select {
	case u := <-updates:
		assert.Equal(t, store.UpdateConfigReload, u.Type)
		assert.Equal(t, "onair.yml", u.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload broadcast")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestIsConfigName(t *testing.T) {
	assert.True(t, isConfigName("/x/onair.override.yml"))
	assert.True(t, isConfigName("onair.toml"))
	assert.False(t, isConfigName("notes.yml"))
}
