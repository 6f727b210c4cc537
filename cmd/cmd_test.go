package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/onair/cli"
	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/config"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/daemon"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/scoreboard"
	"github.com/grovetools/onair/schema"
	"github.com/grovetools/onair/state"
	"github.com/grovetools/onair/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFromBytes([]byte("version: \"1.0\"\n"), "yaml")
	require.NoError(t, err)
	return cfg
}

func TestRigFromConfig(t *testing.T) {
	cfg := defaultConfig(t)
	off := false
	cfg.Audio.MicLock.DefaultEnabled = &off
	cfg.Switcher.DefaultTransition = "wipe-lr"
	cfg.Switcher.DefaultTransitionMs = 1200
	cfg.Scoreboard.DefaultSport = "basketball"

	rig := rigFromConfig(cfg, scoreboard.DefaultCatalog())
	assert.False(t, rig.MicLock)
	assert.Equal(t, models.TransitionType("wipe-lr"), rig.Transition.Type)
	assert.Equal(t, 1200, rig.Transition.DurationMs)
	assert.Equal(t, "basketball", rig.Scoreboard.SportID())

	cfg.Scoreboard.DefaultSport = "curling"
	assert.Nil(t, rigFromConfig(cfg, scoreboard.DefaultCatalog()).Scoreboard)
}

func TestBootStateRestoresFlagsAndPresets(t *testing.T) {
	flags := state.Open(filepath.Join(t.TempDir(), "state.yml"))
	require.NoError(t, flags.SavePrefs(models.Prefs{SetupCompleted: true, Theme: "light"}))

	presets := []models.Preset{{Name: "Opening"}}
	st := bootState(defaultConfig(t), scoreboard.DefaultCatalog(), flags, presets, testutil.QuietLogger())

	assert.True(t, st.Prefs.SetupCompleted)
	assert.Equal(t, "light", st.Prefs.Theme)
	require.Len(t, st.SavedConfigs, 1)
	assert.Equal(t, "Opening", st.SavedConfigs[0].Name)
	assert.Equal(t, scoreboard.DefaultSport, st.Scoreboard.SportID())
}

func TestBuildDocument(t *testing.T) {
	doc, err := buildDocument([]string{"SET_PREVIEW", "cam-2"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"SET_PREVIEW","payload":"cam-2"}`, string(doc))

	doc, err = buildDocument([]string{"AUDIO_SET_FADER_LEVEL", `{"channelId":"mic-1","level":40}`})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"AUDIO_SET_FADER_LEVEL","payload":{"channelId":"mic-1","level":40}}`, string(doc))

	doc, err = buildDocument([]string{"SWITCHER_CUT"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"SWITCHER_CUT"}`, string(doc))
}

func TestParseDocumentValidates(t *testing.T) {
	v, err := schema.NewCommandValidator()
	require.NoError(t, err)

	c, err := parseDocument(v, []byte(`{"type":"SET_PREVIEW","payload":"cam-2"}`))
	require.NoError(t, err)
	assert.Equal(t, command.SetPreview, c.Type)

	_, err = parseDocument(v, []byte(`{"type":"SET_PREVIEW","payload":5}`))
	assert.Equal(t, oaerrors.ErrCodeInvalidCommand, oaerrors.GetCode(err))
}

func TestReadDocumentsSkipsBlankAndComments(t *testing.T) {
	in := "# rundown\n{\"type\":\"SWITCHER_CUT\"}\n\n{\"type\":\"MASTER_GO_LIVE\"}\n"
	docs, err := readDocuments("-", bytes.NewBufferString(in))
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestSendLocal(t *testing.T) {
	out, err := execute(t, "send", "--local", "--json", "SET_PREVIEW", "cam-2")
	require.NoError(t, err)
	assert.Contains(t, out, `"command": "SET_PREVIEW"`)
	assert.Contains(t, out, `"previewId": "cam-2"`)
}

func TestSendLocalRejection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rundown.jsonl")
	body := `{"type":"MASTER_GO_LIVE"}` + "\n" + `{"type":"SOURCE_REMOVE","payload":"cam-1"}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := execute(t, "send", "--local", "--file", path)
	require.Error(t, err)
	assert.Equal(t, oaerrors.ErrCodeRejectedWhileLive, oaerrors.GetCode(err))
}

func TestSendInvalidPayload(t *testing.T) {
	_, err := execute(t, "send", "--local", "SET_PREVIEW", "5")
	assert.Equal(t, oaerrors.ErrCodeInvalidCommand, oaerrors.GetCode(err))
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema", "commands")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))

	_, err = execute(t, "schema", "nope")
	assert.Error(t, err)
}

func TestSportsLocal(t *testing.T) {
	out, err := execute(t, "sports", "list", "--local", "--json")
	require.NoError(t, err)
	var sports []daemon.Sport
	require.NoError(t, json.Unmarshal([]byte(out), &sports))
	assert.NotEmpty(t, sports)

	out, err = execute(t, "sports", "show", "--local", "volleyball")
	require.NoError(t, err)
	assert.Contains(t, out, "# volleyball")
}

func TestTailOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onaird.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	off, err := tailOffset(path, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), off)

	off, err = tailOffset(path, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), off)

	off, err = tailOffset(path, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(14), off)

	off, err = tailOffset(filepath.Join(t.TempDir(), "missing"), 3)
	require.NoError(t, err)
	assert.Zero(t, off)
}

func TestParseLogLine(t *testing.T) {
	e := parseLogLine(`{"level":"info","msg":"Starting daemon","component":"onaird"}`)
	assert.Equal(t, "onaird", e.Component)
	assert.NotNil(t, e.Fields)

	e = parseLogLine("2026-05-09 20:00:00.000 [INFO] [engine] Starting collector collector=setup")
	assert.Equal(t, "engine", e.Component)
	assert.Nil(t, e.Fields)

	e = parseLogLine("plain line")
	assert.Empty(t, e.Component)
}

func TestRenderSummary(t *testing.T) {
	client := daemon.NewLocalClient(models.InitialState(models.DefaultRig()), nil)
	ctx := context.Background()
	_, err := client.Send(ctx, command.Bare(command.MasterGoLive))
	require.NoError(t, err)
	snap, err := client.State(ctx)
	require.NoError(t, err)
	v, err := client.Views(ctx)
	require.NoError(t, err)

	var out bytes.Buffer
	renderSummary(&out, snap, v)
	assert.Contains(t, out.String(), "ON AIR")
	assert.Contains(t, out.String(), "PGM")
	assert.Contains(t, out.String(), "Mic 1 (Host)")
}

func TestDaemonRoundTrip(t *testing.T) {
	home := testutil.TempHome(t)
	cfgPath := testutil.WriteConfig(t, home, "switcher:\n  default_transition: cut\nscoreboard:\n  default_sport: basketball\nstorage:\n  path: "+
		filepath.Join(home, "onair.db")+"\n")

	sock := filepath.Join(home, "d.sock")
	d, err := newDaemon(cli.CommandOptions{ConfigFile: cfgPath, Socket: sock}, testutil.QuietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.run(ctx) }()
	testutil.WaitForSocket(t, sock, 3*time.Second)

	client, err := daemon.Connect(sock)
	require.NoError(t, err)

	ack, err := client.Send(ctx, command.New(command.SetPreview, "cam-2"))
	require.NoError(t, err)
	assert.True(t, ack.Accepted)

	snap, err := client.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cam-2", snap.State.PreviewID)
	assert.Equal(t, models.TransitionCut, snap.State.Transition.Type)
	assert.Equal(t, "basketball", snap.State.Scoreboard.SportID())

	remote := client.(*daemon.RemoteClient)
	running, err := remote.Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, sock, running.Socket)
	assert.Equal(t, []string{cfgPath}, running.ConfigFiles)

	require.NoError(t, client.Close())
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop")
	}
	_, err = os.Stat(sock)
	assert.True(t, os.IsNotExist(err))
}
