package console

import (
	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/pkg/models"
)

// MaxTransitionMs bounds the auto transition duration.
const MaxTransitionMs = 10000

func init() {
	on(command.SetPreview, func(t *tx, id string) error {
		t.s.PreviewID = id
		return nil
	})
	bare(command.SwitcherCut, func(t *tx) error {
		if t.s.ProgramID == t.s.PreviewID {
			return nil
		}
		t.take(t.s.PreviewID)
		t.s.Transition.IsActive, t.s.Transition.Progress = false, 0
		return nil
	})
	bare(command.SwitcherAuto, func(t *tx) error {
		if t.s.ProgramID == t.s.PreviewID || t.s.Transition.IsActive {
			return nil
		}
		t.s.Transition.IsActive, t.s.Transition.Progress = true, 0
		return nil
	})
	on(command.SwitcherSetTransitionType, func(t *tx, typ models.TransitionType) error {
		if typ.Valid() {
			t.s.Transition.Type = typ
		}
		return nil
	})
	on(command.SwitcherSetDuration, func(t *tx, ms int) error {
		t.s.Transition.DurationMs = clampInt(ms, 0, MaxTransitionMs)
		return nil
	})
	on(command.SwitcherSetProgress, func(t *tx, p command.Progress) error {
		switch {
		case p.Value >= 1:
			t.take(t.s.PreviewID)
			t.s.Transition.IsActive, t.s.Transition.Progress = false, 0
		case p.Value <= 0:
			t.s.Transition.IsActive, t.s.Transition.Progress = false, 0
		default:
			t.s.Transition.IsActive, t.s.Transition.Progress = true, p.Value
		}
		return nil
	})

	on(command.VJSetMode, func(t *tx, mode models.VJMode) error {
		if mode == models.VJModeTransition || mode == models.VJModeVJ {
			t.s.VJMixer.Mode = mode
		}
		return nil
	})
	on(command.VJSetCrossfade, func(t *tx, c float64) error {
		t.s.VJMixer.Crossfade = clamp(c, -1, 1)
		return nil
	})
	on(command.VJAssignDeck, func(t *tx, p command.DeckAssign) error {
		if t.s.SourceIndex(p.SourceID) < 0 {
			return nil
		}
		if deck := t.deck(p.Deck); deck != nil {
			*deck = models.StringPtr(p.SourceID)
		}
		return nil
	})
	on(command.VJClearDeck, func(t *tx, p command.DeckClear) error {
		if deck := t.deck(p.Deck); deck != nil {
			*deck = nil
		}
		return nil
	})
}

// take puts id on program. With audio-follows-video the channel of the
// outgoing visual is muted and the incoming one unmuted; when both resolve to
// the same channel it stays open.
func (t *tx) take(id string) {
	if id == t.s.ProgramID {
		return
	}
	out := t.s.ProgramID
	t.s.ProgramID = id
	if !t.s.ControlSurface.AudioFollowsVideo {
		return
	}
	if ch, ok := t.s.AudioLinks.ChannelFor(out); ok {
		t.setMuted(ch, true)
	}
	if ch, ok := t.s.AudioLinks.ChannelFor(id); ok {
		t.setMuted(ch, false)
	}
}

func (t *tx) setMuted(channelID string, muted bool) {
	if i := t.s.ChannelIndex(channelID); i >= 0 && !t.s.AudioChannels[i].IsMaster() {
		t.s.AudioChannels[i].IsMuted = muted
	}
}

func (t *tx) deck(name string) **string {
	switch name {
	case "deckA":
		return &t.s.VJMixer.DeckA
	case "deckB":
		return &t.s.VJMixer.DeckB
	}
	return nil
}
