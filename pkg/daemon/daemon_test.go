package daemon

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/internal/daemon/engine"
	"github.com/grovetools/onair/internal/daemon/server"
	"github.com/grovetools/onair/internal/daemon/store"
	"github.com/grovetools/onair/pkg/console"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/scheduler"
	"github.com/grovetools/onair/testutil"
)

func startDaemon(t *testing.T) *RemoteClient {
	t.Helper()
	st := store.New(models.InitialState(models.DefaultRig()))
	clock := scheduler.NewFakeClock(time.Date(2026, 5, 9, 20, 0, 0, 0, time.UTC))
	eng := engine.New(st, console.New(console.DefaultPolicy()), testutil.QuietLogger(), engine.WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		eng.Run(ctx)
	}()

	srv := server.New(testutil.QuietLogger())
	srv.SetEngine(eng)
	ts := httptest.NewServer(srv.Handler())

	client, err := NewHTTPClient(ts.URL)
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
		ts.Close()
		cancel()
		<-finished
	})
	return client
}

func TestRemoteClient(t *testing.T) {
	client := startDaemon(t)
	ctx := context.Background()
	assert.True(t, client.IsRunning())

	ack, err := client.Send(ctx, command.New(command.SetPreview, "cam-2"))
	require.NoError(t, err)
	assert.True(t, ack.Changed)

	ack, err = client.Send(ctx, command.New(command.AudioToggleMute, models.ProtectedChannelID))
	require.NoError(t, err)
	require.NotNil(t, ack.Error)
	assert.Equal(t, oaerrors.ErrCodeMicLocked, ack.Error.Code)

	snap, err := client.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, "cam-2", snap.State.PreviewID)

	v, err := client.Views(ctx)
	require.NoError(t, err)
	require.NotNil(t, v.Program)
	assert.Equal(t, "BLACK", v.Program.Name)

	sports, err := client.Sports(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, sports)

	board, err := client.Sport(ctx, "volleyball")
	require.NoError(t, err)
	assert.Equal(t, "volleyball", board.SportID())

	presets, err := client.Presets(ctx)
	require.NoError(t, err)
	assert.Empty(t, presets)
}

func TestRemoteStream(t *testing.T) {
	client := startDaemon(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := client.StreamState(ctx)
	require.NoError(t, err)

	first := <-updates
	assert.Equal(t, "initial", first.UpdateType)

	_, err = client.Send(ctx, command.Bare(command.MasterGoLive))
	require.NoError(t, err)

	select {
	case u := <-updates:
		assert.Equal(t, "state", u.UpdateType)
		require.NotNil(t, u.State)
		assert.True(t, u.State.IsLive)
	case <-time.After(2 * time.Second):
		t.Fatal("no update streamed")
	}
}

func TestConnectWithoutDaemon(t *testing.T) {
	_, err := Connect(filepath.Join(t.TempDir(), "missing.sock"))
	require.Error(t, err)
	assert.Equal(t, oaerrors.ErrCodeDaemonNotRunning, oaerrors.GetCode(err))
}

func TestNewHTTPClientRejectsBadAddress(t *testing.T) {
	_, err := NewHTTPClient("not a url")
	assert.Error(t, err)
}

func TestLocalClient(t *testing.T) {
	client := NewLocalClient(models.InitialState(models.DefaultRig()), nil)
	ctx := context.Background()
	assert.False(t, client.IsRunning())

	ack, err := client.Send(ctx, command.Bare(command.SwitcherCut))
	require.NoError(t, err)
	assert.True(t, ack.Changed)
	assert.Equal(t, uint64(1), ack.Version)

	snap, err := client.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "scene-1", snap.State.ProgramID)

	_, err = client.Send(ctx, command.Bare(command.MasterGoLive))
	require.NoError(t, err)
	ack, err = client.Send(ctx, command.New(command.SourceRemove, "cam-1"))
	require.NoError(t, err)
	require.NotNil(t, ack.Error)
	assert.Equal(t, oaerrors.ErrCodeRejectedWhileLive, ack.Error.Code)

	_, err = client.Sport(ctx, "curling")
	assert.Equal(t, oaerrors.ErrCodeNotFound, oaerrors.GetCode(err))

	_, err = client.StreamState(ctx)
	assert.Error(t, err)
}
