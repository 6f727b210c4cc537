package services

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/onair/config"
)

func TestStaticDiscovery(t *testing.T) {
	d := DiscoveryFromConfig(config.DevicesConfig{
		Cameras:     []config.Device{{ID: "usb-1", Label: "Logitech"}},
		Microphones: []config.Device{{ID: "mic-usb", Label: "Shure"}},
	})
	ctx := context.Background()
	assert.True(t, d.RequestPermissions(ctx))

	cams, err := d.ListCameras(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Device{{ID: "usb-1", Label: "Logitech"}}, cams)
	mics, err := d.ListMicrophones(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Device{{ID: "mic-usb", Label: "Shure"}}, mics)

	empty := DiscoveryFromConfig(config.DevicesConfig{})
	cams, err = empty.ListCameras(ctx)
	require.NoError(t, err)
	assert.Empty(t, cams)

	empty.Denied = true
	assert.False(t, empty.RequestPermissions(ctx))
}

func TestHTTPGenerator(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"output":[{"content":[{"type":"output_text","text":"  CEO of Microsoft \n"}]}]}`))
	}))
	defer srv.Close()

	g := NewTextGenerator(config.AIConfig{Endpoint: srv.URL, Model: "m", APIKey: "secret"})
	assert.Equal(t, "CEO of Microsoft", g.Generate(context.Background(), TitlePrompt("Satya Nadella")))
	assert.Equal(t, "m", got["model"])
	assert.Contains(t, got["input"], "Satya Nadella")
}

func TestHTTPGeneratorFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			_, _ = w.Write([]byte(`{"output_text":""}`))
			return
		}
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx := context.Background()
	assert.Equal(t, GenerateFailedText, NewTextGenerator(config.AIConfig{Endpoint: srv.URL}).Generate(ctx, "x"))
	assert.Equal(t, GenerateFailedText, NewTextGenerator(config.AIConfig{Endpoint: srv.URL + "/empty"}).Generate(ctx, "x"))
	assert.Equal(t, GenerateFailedText, NewTextGenerator(config.AIConfig{Endpoint: srv.URL + "/empty"}).Generate(ctx, "  "))
	assert.Equal(t, GenerateFailedText, NewTextGenerator(config.AIConfig{}).Generate(ctx, "x"))
}

func TestStaticGenerator(t *testing.T) {
	g := Static{Text: "Host", Answers: map[string]string{"a": "b"}}
	assert.Equal(t, "b", g.Generate(context.Background(), "a"))
	assert.Equal(t, "Host", g.Generate(context.Background(), "z"))
}

func TestSimulatedProbe(t *testing.T) {
	always := 1.0
	p := NewSimulatedProbe(config.StreamsConfig{ConnectSuccessRate: &always, MaxViewers: 50}, rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 20; i++ {
		res := p.Connect(context.Background(), "yt")
		require.True(t, res.OK)
		assert.GreaterOrEqual(t, res.Viewers, minViewers)
		assert.Less(t, res.Viewers, minViewers+50)
	}

	never := 0.0
	p = NewSimulatedProbe(config.StreamsConfig{ConnectSuccessRate: &never}, nil)
	assert.Equal(t, ProbeResult{}, p.Connect(context.Background(), "yt"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p = NewSimulatedProbe(config.StreamsConfig{ConnectSuccessRate: &always}, nil)
	assert.False(t, p.Connect(ctx, "yt").OK)
}
