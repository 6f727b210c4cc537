package daemon

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/scoreboard"
	"github.com/grovetools/onair/pkg/views"
)

// RemoteClient implements Client by calling the daemon's HTTP API over a Unix
// socket or a TCP address.
type RemoteClient struct {
	httpClient *http.Client
	// stream has no timeout so SSE connections stay open.
	stream  *http.Client
	baseURL string
}

// socketBaseURL is the dummy host used for Unix socket HTTP requests.
// The actual connection goes through the Unix socket, not this URL.
const socketBaseURL = "http://unix"

// NewRemoteClient creates a new RemoteClient connected to the daemon socket.
func NewRemoteClient(socketPath string) (*RemoteClient, error) {
	dial := func(ctx context.Context, _, _ string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, "unix", socketPath)
	}
	transport := &http.Transport{
		DialContext:     dial,
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
	}
	return &RemoteClient{
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
		stream:     &http.Client{Transport: &http.Transport{DialContext: dial}},
		baseURL:    socketBaseURL,
	}, nil
}

// NewHTTPClient creates a RemoteClient for a daemon listening on TCP, such as
// "http://127.0.0.1:7420".
func NewHTTPClient(baseURL string) (*RemoteClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid daemon address %q", baseURL)
	}
	return &RemoteClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		stream:     &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Send posts cmd to the daemon. Acks carrying a rejection are returned
// without error.
func (c *RemoteClient) Send(ctx context.Context, cmd command.Command) (Ack, error) {
	body, err := json.Marshal(cmd)
	if err != nil {
		return Ack{}, fmt.Errorf("failed to encode command: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/commands", bytes.NewReader(body))
	if err != nil {
		return Ack{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Ack{}, fmt.Errorf("failed to send command to daemon: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusConflict, http.StatusUnprocessableEntity:
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Ack{}, fmt.Errorf("daemon returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var ack Ack
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return Ack{}, fmt.Errorf("failed to decode ack: %w", err)
	}
	return ack, nil
}

// State returns the current state snapshot.
func (c *RemoteClient) State(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := c.get(ctx, "/api/state", &snap)
	return snap, err
}

// Views returns the derived projections.
func (c *RemoteClient) Views(ctx context.Context) (views.View, error) {
	var v views.View
	err := c.get(ctx, "/api/views", &v)
	return v, err
}

// Presets returns the saved configurations.
func (c *RemoteClient) Presets(ctx context.Context) ([]models.Preset, error) {
	var presets []models.Preset
	err := c.get(ctx, "/api/presets", &presets)
	return presets, err
}

// Sports lists the scoreboard templates.
func (c *RemoteClient) Sports(ctx context.Context) ([]Sport, error) {
	var sports []Sport
	err := c.get(ctx, "/api/sports", &sports)
	return sports, err
}

// Sport returns one resolved scoreboard template.
func (c *RemoteClient) Sport(ctx context.Context, id string) (scoreboard.State, error) {
	var board scoreboard.State
	err := c.get(ctx, "/api/sports?id="+url.QueryEscape(id), &board)
	return board, err
}

// Config returns the daemon's running configuration.
func (c *RemoteClient) Config(ctx context.Context) (*RunningConfig, error) {
	var cfg RunningConfig
	if err := c.get(ctx, "/api/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *RemoteClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to get %s from daemon: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("daemon returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// IsRunning returns true if the daemon is available and responding.
func (c *RemoteClient) IsRunning() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// StreamState subscribes to real-time state updates via Server-Sent Events (SSE).
func (c *RemoteClient) StreamState(ctx context.Context) (<-chan StateUpdate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/stream", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream request: %w", err)
	}

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	ch := make(chan StateUpdate, 10)
	go func() {
		defer resp.Body.Close()
		defer close(ch)

		scanner := bufio.NewScanner(resp.Body)
		// Full states exceed the default 64KB line limit.
		buf := make([]byte, 0, 1024*1024)
		scanner.Buffer(buf, 16*1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, ":") || line == "" {
				continue
			}
			data, ok := strings.CutPrefix(line, "data: ")
			if !ok {
				continue
			}
			var update StateUpdate
			if err := json.Unmarshal([]byte(data), &update); err != nil {
				continue // Skip malformed data
			}
			select {
			case ch <- update:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// Close cleans up any resources used by the client.
func (c *RemoteClient) Close() error {
	c.httpClient.CloseIdleConnections()
	c.stream.CloseIdleConnections()
	return nil
}

// Ensure RemoteClient implements Client interface.
var _ Client = (*RemoteClient)(nil)
