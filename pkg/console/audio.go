package console

import (
	"fmt"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/models"
)

func init() {
	on(command.AudioSetFaderLevel, func(t *tx, p command.FaderLevel) error {
		t.channel(p.ChannelID, func(c *models.AudioChannel) { c.Volume = clamp(p.Level, 0, 100) })
		return nil
	})
	on(command.AudioSetGainTrim, func(t *tx, p command.GainTrim) error {
		t.channel(p.ChannelID, func(c *models.AudioChannel) { c.Gain = clamp(p.Gain, -12, 12) })
		return nil
	})
	on(command.AudioToggleMute, func(t *tx, id string) error {
		if t.s.ControlSurface.MicLock && id == t.policy().ProtectedChannelID {
			return oaerrors.MicLocked(id)
		}
		if id == models.MasterChannelID {
			return nil
		}
		t.channel(id, func(c *models.AudioChannel) { c.IsMuted = !c.IsMuted })
		return nil
	})
	on(command.AudioToggleSolo, func(t *tx, id string) error {
		if id == models.MasterChannelID || t.s.ChannelIndex(id) < 0 {
			return nil
		}
		t.toggleSolo(id)
		return nil
	})
	on(command.AudioSetEQ, func(t *tx, p command.EQSetting) error {
		var set func(*models.EQ)
		switch p.Band {
		case "low":
			set = func(eq *models.EQ) { eq.Low = p.Value }
		case "mid1":
			set = func(eq *models.EQ) { eq.Mid1 = p.Value }
		case "mid2":
			set = func(eq *models.EQ) { eq.Mid2 = p.Value }
		case "high":
			set = func(eq *models.EQ) { eq.High = p.Value }
		default:
			return oaerrors.InvalidPayload(string(command.AudioSetEQ), fmt.Errorf("unknown band %q", p.Band))
		}
		t.channel(p.ChannelID, func(c *models.AudioChannel) { set(&c.EQ) })
		return nil
	})
	on(command.AudioSetCompressor, func(t *tx, p command.CompressorSetting) error {
		t.channel(p.ChannelID, func(c *models.AudioChannel) {
			c.Compressor = models.Compressor{Threshold: p.Threshold, Ratio: p.Ratio}
		})
		return nil
	})
	on(command.AudioSetGate, func(t *tx, p command.GateSetting) error {
		t.channel(p.ChannelID, func(c *models.AudioChannel) { c.Gate = models.Gate{Threshold: p.Threshold} })
		return nil
	})
	on(command.AudioSetPan, func(t *tx, p command.PanSetting) error {
		t.channel(p.ChannelID, func(c *models.AudioChannel) { c.Pan = clamp(p.Pan, -100, 100) })
		return nil
	})
	on(command.AudioToggleHPF, func(t *tx, id string) error {
		t.channel(id, func(c *models.AudioChannel) { c.HPF.Enabled = !c.HPF.Enabled })
		return nil
	})
	on(command.AudioSetBusSend, func(t *tx, p command.BusSend) error {
		level := clamp(p.Level, 0, 100)
		switch p.Bus {
		case "aux1":
			t.channel(p.ChannelID, func(c *models.AudioChannel) { c.BusSends.Aux1 = level })
		case "aux2":
			t.channel(p.ChannelID, func(c *models.AudioChannel) { c.BusSends.Aux2 = level })
		default:
			return oaerrors.InvalidPayload(string(command.AudioSetBusSend), fmt.Errorf("unknown bus %q", p.Bus))
		}
		return nil
	})
	on(command.AudioSetMixMinus, func(t *tx, p command.MixMinus) error {
		t.channel(p.ChannelID, func(c *models.AudioChannel) { c.MixMinus = p.Enabled })
		return nil
	})
	on(command.AudioUpdateSource, func(t *tx, p command.Update) error {
		i := t.s.ChannelIndex(p.ID)
		if i < 0 {
			return nil
		}
		next := t.s.AudioChannels[i]
		if err := mergeValues(&next, p.Values); err != nil {
			return oaerrors.InvalidPayload(string(command.AudioUpdateSource), err)
		}
		next.ID = p.ID
		t.s.AudioChannels[i] = next
		return nil
	})
	on(command.AudioSetFXState, func(t *tx, p command.Partial) error {
		next := t.s.AudioFX
		if err := mergeValues(&next, p); err != nil {
			return oaerrors.InvalidPayload(string(command.AudioSetFXState), err)
		}
		next.Filter = clamp(next.Filter, 0, 100)
		next.Echo = clamp(next.Echo, 0, 100)
		next.Reverb = clamp(next.Reverb, 0, 100)
		t.s.AudioFX = next
		return nil
	})
	on(command.AudioLinkSource, func(t *tx, p command.AudioLink) error {
		if t.s.ChannelIndex(p.ChannelID) < 0 {
			return nil
		}
		t.links().Link(p.SourceID, p.ChannelID)
		return nil
	})
	on(command.AudioUnlinkSource, func(t *tx, sourceID string) error {
		t.s.AudioLinks.Unlink(sourceID)
		return nil
	})

	bare(command.ConsoleToggleAFV, func(t *tx) error {
		t.s.ControlSurface.AudioFollowsVideo = !t.s.ControlSurface.AudioFollowsVideo
		return nil
	})
	bare(command.ConsoleToggleMicLock, func(t *tx) error {
		t.s.ControlSurface.MicLock = !t.s.ControlSurface.MicLock
		return nil
	})
}

// channel edits one strip in place. Missing ids are ignored.
func (t *tx) channel(id string, fn func(*models.AudioChannel)) {
	if i := t.s.ChannelIndex(id); i >= 0 {
		fn(&t.s.AudioChannels[i])
	}
}

// toggleSolo flips the solo of id and opens it. While any strip is soloed,
// every other strip that is not soloed is muted.
func (t *tx) toggleSolo(id string) {
	chs := t.s.AudioChannels
	target := t.s.ChannelIndex(id)
	chs[target].IsSolo = !chs[target].IsSolo
	chs[target].IsMuted = false

	soloActive := false
	for _, c := range chs {
		if !c.IsMaster() && c.IsSolo {
			soloActive = true
			break
		}
	}
	if !soloActive {
		return
	}
	for i := range chs {
		if i == target || chs[i].IsMaster() || chs[i].IsSolo {
			continue
		}
		chs[i].IsMuted = true
	}
}

func (t *tx) links() models.AudioLinks {
	if t.s.AudioLinks == nil {
		t.s.AudioLinks = models.AudioLinks{}
	}
	return t.s.AudioLinks
}
