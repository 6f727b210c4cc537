package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/onair/pkg/views"
	"github.com/grovetools/onair/tui/components/table"
	"github.com/grovetools/onair/tui/theme"
)

// View implements tea.Model.
func (m Model) View() string {
	t := m.theme
	if !m.ready {
		if m.closed {
			return t.Error.Render("Disconnected from daemon") + "\n"
		}
		return t.Muted.Render("Waiting for the daemon...") + "\n"
	}

	sections := []string{
		m.headerView(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.busView(), "  ", m.statusView()),
		m.audioView(),
		m.footerView(),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	t := m.theme
	st := m.snap.State

	air := t.OffAir.Render("OFF AIR")
	if st.IsLive {
		air = t.OnAir.Render(theme.IconLive + " ON AIR " + m.view.LiveClock)
	}
	parts := []string{t.Title.Render("onair"), air}
	if st.IsRecording {
		parts = append(parts, t.Rec.Render(theme.IconRec+" REC "+m.view.RecordingClock))
	}
	if st.ControlSurface.MicLock {
		parts = append(parts, t.Warning.Render(theme.IconLock+" mic lock"))
	}
	if st.ControlSurface.AudioFollowsVideo {
		parts = append(parts, t.Info.Render("AFV"))
	}
	parts = append(parts, t.Muted.Render(fmt.Sprintf("v%d", m.snap.Version)))
	if m.closed {
		parts = append(parts, t.Error.Render("disconnected"))
	}
	return strings.Join(parts, "  ") + "\n"
}

func itemLabel(it *views.Item) string {
	if it == nil {
		return "-"
	}
	return it.Name
}

func (m Model) busView() string {
	t := m.theme
	lines := []string{
		t.Program.Render("PGM") + " " + itemLabel(m.view.Program),
		t.Preview.Render("PVW") + " " + itemLabel(m.view.Preview),
	}
	if tr := m.snap.State.Transition; tr.IsActive {
		width := 20
		filled := int(m.view.Transition.Progress * float64(width))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
		lines = append(lines, fmt.Sprintf("%s %s %s", t.Accent.Render(string(tr.Type)), bar, t.Muted.Render(fmt.Sprintf("%d ms", tr.DurationMs))))
	} else {
		lines = append(lines, t.Muted.Render(fmt.Sprintf("%s %d ms", m.snap.State.Transition.Type, m.snap.State.Transition.DurationMs)))
	}

	var scenes []string
	for i, sc := range m.snap.State.Scenes {
		label := fmt.Sprintf("%d %s", i+1, sc.Name)
		switch sc.ID {
		case m.snap.State.ProgramID:
			label = t.Program.Render(label)
		case m.snap.State.PreviewID:
			label = t.Preview.Render(label)
		}
		scenes = append(scenes, label)
	}
	lines = append(lines, "", strings.Join(scenes, " "))

	if len(m.view.ActiveOverlays) > 0 {
		names := make([]string, 0, len(m.view.ActiveOverlays))
		for _, o := range m.view.ActiveOverlays {
			names = append(names, string(o.Type))
		}
		lines = append(lines, t.Muted.Render("overlays: ")+strings.Join(names, ", "))
	}
	return t.Box.Render(strings.Join(lines, "\n"))
}

func (m Model) statusView() string {
	t := m.theme
	h := m.snap.State.SystemHealth

	status := t.Success.Render(string(m.view.Status))
	if m.view.Status != views.StatusNormal {
		status = t.Warning.Render(theme.IconWarning + " " + string(m.view.Status))
	}
	s := m.view.Streams
	lines := []string{
		status,
		fmt.Sprintf("%.1f°C  %.0f kbps  %.0f fps", h.Temperature, h.Bitrate, h.FPS),
		fmt.Sprintf("streams %d live / %d connecting / %d error", s.Live, s.Connecting, s.Errored),
		fmt.Sprintf("viewers %d", s.Viewers),
	}
	if m.view.ScoreboardActive {
		lines = append(lines, t.Accent.Render("scoreboard on air"))
	}
	return t.Box.Render(strings.Join(lines, "\n"))
}

func (m Model) audioView() string {
	t := m.theme
	rows := make([][]string, 0, len(m.snap.State.AudioChannels))
	for _, ch := range m.snap.State.AudioChannels {
		var flags []string
		if ch.IsMuted {
			flags = append(flags, t.Error.Render(theme.IconMuted))
		}
		if ch.IsSolo {
			flags = append(flags, t.Warning.Render(theme.IconSolo))
		}
		if ch.IsMasterLock && m.snap.State.ControlSurface.MicLock {
			flags = append(flags, theme.IconLock)
		}
		rows = append(rows, []string{ch.Name, meter(ch.Volume), fmt.Sprintf("%.0f", ch.Volume), strings.Join(flags, " ")})
	}
	return table.SelectableTable([]string{"Channel", "Level", "Vol", ""}, rows, m.selected)
}

// meter draws a ten step bar for a 0-100 level.
func meter(level float64) string {
	n := int(level / 10)
	if n < 0 {
		n = 0
	}
	if n > 10 {
		n = 10
	}
	return strings.Repeat("▮", n) + strings.Repeat("▯", 10-n)
}

func (m Model) footerView() string {
	t := m.theme
	switch {
	case m.err != nil:
		return t.Error.Render(theme.IconError+" ") + m.err.Error()
	case m.lastAck == nil:
		return ""
	case m.lastAck.Error != nil:
		return t.Error.Render(theme.IconError+" "+string(m.lastAck.Command)) + " " +
			t.Muted.Render(string(m.lastAck.Error.Code)+": "+m.lastAck.Error.Message)
	case m.lastAck.Changed:
		return t.Success.Render(theme.IconSuccess+" "+string(m.lastAck.Command)) + " " +
			t.Muted.Render(fmt.Sprintf("v%d", m.lastAck.Version))
	default:
		return t.Muted.Render(string(m.lastAck.Command) + " unchanged")
	}
}
