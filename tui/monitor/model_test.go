package monitor

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/daemon"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/tui/keymap"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newMonitor returns a ready monitor backed by an in-process client.
func newMonitor(t *testing.T) (Model, *daemon.LocalClient) {
	t.Helper()
	client := daemon.NewLocalClient(models.InitialState(models.DefaultRig()), nil)
	m := New(client, make(chan daemon.StateUpdate), keymap.Default())
	assert.Contains(t, m.View(), "Waiting")

	snap, err := client.State(context.Background())
	require.NoError(t, err)
	next, _ := m.Update(updateMsg{UpdateType: "initial", Version: snap.Version, State: &snap.State})
	return next.(Model), client
}

// press runs one key through the model and executes the command it returns.
func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m, nil
	}
	out := cmd()
	next, _ = m.Update(out)
	return next.(Model), out
}

func TestInitialUpdateRenders(t *testing.T) {
	m, _ := newMonitor(t)
	out := m.View()
	assert.Contains(t, out, "OFF AIR")
	assert.Contains(t, out, "BLACK")
	assert.Contains(t, out, "Intro Scene")
	assert.Contains(t, out, "Mic 1 (Host)")
}

func TestCutSendsCommand(t *testing.T) {
	m, client := newMonitor(t)
	m, out := press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	ack, ok := out.(ackMsg)
	require.True(t, ok)
	assert.Equal(t, command.SwitcherCut, ack.Command)
	assert.True(t, ack.Changed)

	snap, _ := client.State(context.Background())
	assert.Equal(t, "scene-1", snap.State.ProgramID)
	assert.Contains(t, m.View(), "SWITCHER_CUT")
}

func TestMuteProtectedChannelShowsRejection(t *testing.T) {
	m, _ := newMonitor(t)
	m, _ = press(t, m, runes("j"))
	assert.Equal(t, 1, m.selected)

	m, out := press(t, m, runes("m"))
	ack, ok := out.(ackMsg)
	require.True(t, ok)
	require.NotNil(t, ack.Error)
	assert.Equal(t, oaerrors.ErrCodeMicLocked, ack.Error.Code)
	assert.Contains(t, m.View(), string(oaerrors.ErrCodeMicLocked))
}

func TestNumberKeySelectsScene(t *testing.T) {
	m, client := newMonitor(t)
	_, out := press(t, m, runes("2"))
	require.IsType(t, ackMsg{}, out)

	snap, _ := client.State(context.Background())
	assert.Equal(t, "scene-2", snap.State.PreviewID)

	_, out = press(t, m, runes("9"))
	assert.Nil(t, out)
}

func TestPreviewStepWraps(t *testing.T) {
	m, client := newMonitor(t)
	ids := previewTargets(m.snap.State)
	require.Equal(t, "scene-1", m.snap.State.PreviewID)

	press(t, m, runes("h"))
	snap, _ := client.State(context.Background())
	assert.Equal(t, ids[len(ids)-1], snap.State.PreviewID)
}

func TestStaleUpdateIgnored(t *testing.T) {
	m, _ := newMonitor(t)
	st := m.snap.State
	st.IsLive = true
	next, _ := m.Update(updateMsg{UpdateType: "state", Version: 5, State: &st})
	m = next.(Model)
	assert.True(t, m.snap.State.IsLive)

	old := models.InitialState(models.DefaultRig())
	next, _ = m.Update(updateMsg{UpdateType: "state", Version: 4, State: &old})
	m = next.(Model)
	assert.Equal(t, uint64(5), m.snap.Version)
	assert.Contains(t, m.View(), "ON AIR")
}

func TestRejectedUpdateShownInFooter(t *testing.T) {
	m, _ := newMonitor(t)
	rej := oaerrors.New(oaerrors.ErrCodeRejectedWhileLive, "cannot remove while live")
	next, _ := m.Update(updateMsg{UpdateType: "rejected", Command: command.SourceRemove, Error: rej})
	assert.Contains(t, next.(Model).View(), "REJECTED_WHILE_LIVE")
}

func TestQuitAndClose(t *testing.T) {
	m, _ := newMonitor(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	ch := make(chan daemon.StateUpdate)
	close(ch)
	closed := New(nil, ch, keymap.Default())
	msg := closed.Init()()
	next, _ := closed.Update(msg)
	assert.Contains(t, next.(Model).View(), "Disconnected")
}
