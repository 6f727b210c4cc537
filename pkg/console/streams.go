package console

import (
	"fmt"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/models"
)

func init() {
	on(command.StreamUpdate, func(t *tx, p command.Update) error {
		i := t.s.StreamIndex(p.ID)
		if i < 0 {
			return nil
		}
		next := t.s.StreamDestinations[i]
		if err := mergeValues(&next, p.Values); err != nil {
			return oaerrors.InvalidPayload(string(command.StreamUpdate), err)
		}
		next.ID = p.ID
		t.s.StreamDestinations[i] = next
		return nil
	})
	on(command.StreamToggle, func(t *tx, id string) error {
		i := t.s.StreamIndex(id)
		if i < 0 {
			return nil
		}
		d := &t.s.StreamDestinations[i]
		if d.IsActive {
			d.IsActive, d.Status, d.LiveSince, d.Viewers = false, models.StreamOffline, nil, 0
			t.emit(cancel(StreamConnectKey(id)))
			return nil
		}
		since := t.d.now().UnixMilli()
		d.IsActive, d.Status, d.LiveSince = true, models.StreamConnecting, &since
		t.emit(afterTask(StreamConnectKey(id), t.policy().StreamConnect, Task{Kind: TaskStreamConnect, Target: id}))
		return nil
	})
	on(command.StreamConnectResult, func(t *tx, p command.ConnectResult) error {
		i := t.s.StreamIndex(p.ID)
		if i < 0 || t.s.StreamDestinations[i].Status != models.StreamConnecting {
			return nil
		}
		d := &t.s.StreamDestinations[i]
		if p.OK {
			d.Status, d.Viewers = models.StreamLive, p.Viewers
		} else {
			d.Status = models.StreamError
		}
		return nil
	})

	on(command.GuestAddSimulated, func(t *tx, p command.GuestInvite) error {
		if p.Type != models.GuestWebRTC && p.Type != models.GuestCapture {
			return oaerrors.InvalidPayload(string(command.GuestAddSimulated), fmt.Errorf("unknown guest type %q", p.Type))
		}
		g := models.Guest{
			ID:     t.d.ids("guest"),
			Name:   fmt.Sprintf("Invitado %d", len(t.s.Guests)+1),
			Status: models.GuestConnected,
			Type:   p.Type,
		}
		if p.Type == models.GuestCapture {
			g.Platform = p.Platform
		}
		t.s.Guests = append(t.s.Guests, g)
		return nil
	})
	on(command.GuestUpdate, func(t *tx, p command.Update) error {
		i := t.s.GuestIndex(p.ID)
		if i < 0 {
			return nil
		}
		next := t.s.Guests[i]
		if err := mergeValues(&next, p.Values); err != nil {
			return oaerrors.InvalidPayload(string(command.GuestUpdate), err)
		}
		next.ID = p.ID
		t.s.Guests[i] = next
		return nil
	})
	on(command.GuestRemove, func(t *tx, id string) error {
		i := t.s.GuestIndex(id)
		if i < 0 {
			return nil
		}
		g := t.s.Guests[i]
		if g.SourceID != "" {
			t.removeSource(g.SourceID)
		}
		if g.AudioSourceID != "" {
			t.removeChannel(g.AudioSourceID)
		}
		t.s.Guests = append(t.s.Guests[:i], t.s.Guests[i+1:]...)
		return nil
	})
}

// promoteGuest adds a source and an audio channel for g and links them.
func (t *tx) promoteGuest(g models.Guest, typ models.SourceType) {
	if g.ID == "" {
		return
	}
	if typ == "" {
		typ = models.SourceWebRTCGuest
	}
	srcID, audioID := "guest-src-"+g.ID, "guest-audio-"+g.ID
	name := g.Name
	if g.Platform != "" {
		name = fmt.Sprintf("%s (%s)", g.Name, g.Platform)
	}
	t.addSource(models.Source{ID: srcID, Type: typ, Name: name, IsVisible: true})
	if t.s.ChannelIndex(audioID) < 0 {
		t.s.AudioChannels = append(t.s.AudioChannels, models.NewInputChannel(audioID, g.Name))
	}
	t.links().Link(srcID, audioID)
	if i := t.s.GuestIndex(g.ID); i >= 0 {
		t.s.Guests[i].SourceID, t.s.Guests[i].AudioSourceID = srcID, audioID
	}
}
