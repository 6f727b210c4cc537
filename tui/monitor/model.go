// Package monitor is the operator's terminal view of a running daemon: it
// renders every published state and turns key presses into commands.
package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/pkg/daemon"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/views"
	"github.com/grovetools/onair/tui/keymap"
	"github.com/grovetools/onair/tui/theme"
)

// sendTimeout bounds each command round trip.
const sendTimeout = 3 * time.Second

type updateMsg daemon.StateUpdate

type streamClosedMsg struct{}

type ackMsg daemon.Ack

type errMsg struct{ err error }

// Model is the bubbletea model of the monitor.
type Model struct {
	client  daemon.Client
	updates <-chan daemon.StateUpdate
	keys    keymap.Monitor
	help    help.Model
	theme   *theme.Theme

	snap     daemon.Snapshot
	view     views.View
	ready    bool
	selected int

	lastAck *daemon.Ack
	err     error
	closed  bool

	width, height int
}

// New creates a monitor fed by updates. Commands are sent through client.
func New(client daemon.Client, updates <-chan daemon.StateUpdate, keys keymap.Monitor) Model {
	h := help.New()
	t := theme.DefaultTheme
	h.Styles.ShortKey = t.Accent
	h.Styles.ShortDesc = t.Muted
	h.Styles.FullKey = t.Accent
	h.Styles.FullDesc = t.Muted
	return Model{client: client, updates: updates, keys: keys, help: h, theme: t}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func waitForUpdate(ch <-chan daemon.StateUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return updateMsg(u)
	}
}

func (m Model) send(cmd command.Command) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		ack, err := client.Send(ctx, cmd)
		if err != nil {
			return errMsg{err}
		}
		return ackMsg(ack)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case updateMsg:
		m.apply(daemon.StateUpdate(msg))
		return m, waitForUpdate(m.updates)

	case streamClosedMsg:
		m.closed = true
		return m, nil

	case ackMsg:
		ack := daemon.Ack(msg)
		m.lastAck, m.err = &ack, nil
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// apply folds one streamed update into the model.
func (m *Model) apply(u daemon.StateUpdate) {
	switch u.UpdateType {
	case "initial", "state":
		if u.State == nil || (m.ready && u.Version < m.snap.Version) {
			return
		}
		m.snap = daemon.Snapshot{Version: u.Version, State: *u.State}
		m.view = views.Build(m.snap.State)
		m.ready = true
		if n := len(m.snap.State.AudioChannels); m.selected >= n {
			m.selected = max(n-1, 0)
		}
	case "rejected":
		if u.Error != nil {
			m.lastAck = &daemon.Ack{Command: u.Command, Version: u.Version, Error: u.Error}
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if !m.ready {
		return m, nil
	}

	st := m.snap.State
	switch {
	case key.Matches(msg, k.Cut):
		return m, m.send(command.Bare(command.SwitcherCut))
	case key.Matches(msg, k.Auto):
		return m, m.send(command.Bare(command.SwitcherAuto))
	case key.Matches(msg, k.NextPreview):
		return m, m.previewStep(1)
	case key.Matches(msg, k.PrevPreview):
		return m, m.previewStep(-1)
	case key.Matches(msg, k.PreviewBlack):
		return m, m.send(command.New(command.SetPreview, models.BlankSourceID))
	case key.Matches(msg, k.Preview):
		i := int(msg.String()[0] - '1')
		if i >= 0 && i < len(st.Scenes) {
			return m, m.send(command.New(command.SetPreview, st.Scenes[i].ID))
		}
		return m, nil

	case key.Matches(msg, k.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, k.Down):
		if m.selected < len(st.AudioChannels)-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, k.ToggleMute):
		if ch, ok := m.selectedChannel(); ok {
			return m, m.send(command.New(command.AudioToggleMute, ch.ID))
		}
	case key.Matches(msg, k.ToggleSolo):
		if ch, ok := m.selectedChannel(); ok {
			return m, m.send(command.New(command.AudioToggleSolo, ch.ID))
		}
	case key.Matches(msg, k.ToggleMicLock):
		return m, m.send(command.Bare(command.ConsoleToggleMicLock))
	case key.Matches(msg, k.ToggleAFV):
		return m, m.send(command.Bare(command.ConsoleToggleAFV))

	case key.Matches(msg, k.GoLive):
		return m, m.send(command.Bare(command.MasterGoLive))
	case key.Matches(msg, k.Record):
		return m, m.send(command.Bare(command.MasterToggleRecord))
	case key.Matches(msg, k.Failsafe):
		return m, m.send(command.Bare(command.SystemTriggerFailsafe))
	}
	return m, nil
}

func (m Model) selectedChannel() (models.AudioChannel, bool) {
	chans := m.snap.State.AudioChannels
	if m.selected < 0 || m.selected >= len(chans) {
		return models.AudioChannel{}, false
	}
	return chans[m.selected], true
}

// previewTargets lists scenes first, then sources, as SET_PREVIEW ids.
func previewTargets(st models.State) []string {
	ids := make([]string, 0, len(st.Scenes)+len(st.Sources))
	for _, sc := range st.Scenes {
		ids = append(ids, sc.ID)
	}
	for _, src := range st.Sources {
		ids = append(ids, src.ID)
	}
	return ids
}

// previewStep moves the preview delta places through previewTargets.
func (m Model) previewStep(delta int) tea.Cmd {
	ids := previewTargets(m.snap.State)
	if len(ids) == 0 {
		return nil
	}
	cur := -1
	for i, id := range ids {
		if id == m.snap.State.PreviewID {
			cur = i
			break
		}
	}
	next := ((cur+delta)%len(ids) + len(ids)) % len(ids)
	if cur < 0 && delta < 0 {
		next = len(ids) - 1
	}
	return m.send(command.New(command.SetPreview, ids[next]))
}
