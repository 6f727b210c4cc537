package console

import (
	"fmt"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/models"
)

func init() {
	on(command.SourceAdd, func(t *tx, src models.Source) error {
		if src.Type != "" && !src.Type.Valid() {
			return oaerrors.InvalidPayload(string(command.SourceAdd), fmt.Errorf("unknown source type %q", src.Type))
		}
		if src.ID == "" {
			src.ID = t.d.ids("src")
		}
		t.addSource(src)
		return nil
	})
	on(command.SourceBatchAdd, func(t *tx, b command.SourceBatch) error {
		for _, src := range b.Video {
			if src.ID != "" {
				t.addSource(src)
			}
		}
		for _, ch := range b.Audio {
			if ch.ID != "" && t.s.ChannelIndex(ch.ID) < 0 {
				t.s.AudioChannels = append(t.s.AudioChannels, ch)
			}
		}
		for _, l := range b.Links {
			if t.s.ChannelIndex(l.ChannelID) >= 0 {
				t.links().Link(l.SourceID, l.ChannelID)
			}
		}
		return nil
	})
	on(command.SourceUpdate, func(t *tx, p command.Update) error {
		i := t.s.SourceIndex(p.ID)
		if i < 0 {
			return nil
		}
		next := t.s.Sources[i]
		if err := mergeValues(&next, p.Values); err != nil {
			return oaerrors.InvalidPayload(string(command.SourceUpdate), err)
		}
		next.ID = p.ID
		t.s.Sources[i] = next
		return nil
	})
	on(command.SourceRemove, func(t *tx, id string) error {
		t.removeSource(id)
		return nil
	})
	on(command.SourceAddGuest, func(t *tx, p command.GuestPromotion) error {
		t.promoteGuest(p.Guest, p.SourceType)
		return nil
	})

	on(command.SceneAdd, func(t *tx, p command.SceneName) error {
		t.s.Scenes = append(t.s.Scenes, models.Scene{
			ID:    t.d.ids("scene"),
			Name:  p.Name,
			Items: []models.SceneItem{},
		})
		return nil
	})
	on(command.SceneRemove, func(t *tx, id string) error {
		i := t.s.SceneIndex(id)
		if i < 0 {
			return nil
		}
		t.s.Scenes = append(t.s.Scenes[:i], t.s.Scenes[i+1:]...)
		t.s.AudioLinks.Unlink(id)
		return nil
	})
	on(command.SceneUpdate, func(t *tx, p command.Update) error {
		i := t.s.SceneIndex(p.ID)
		if i < 0 {
			return nil
		}
		next := t.s.Scenes[i].Clone()
		if err := mergeValues(&next, p.Values); err != nil {
			return oaerrors.InvalidPayload(string(command.SceneUpdate), err)
		}
		next.ID = p.ID
		t.s.Scenes[i] = next
		return nil
	})
	on(command.SceneAddLayer, func(t *tx, p command.LayerAdd) error {
		src, ok := t.s.FindSource(p.SourceID)
		i := t.s.SceneIndex(p.SceneID)
		if !ok || i < 0 {
			return nil
		}
		t.s.Scenes[i].Items = append(t.s.Scenes[i].Items, models.SceneItem{
			ID:         t.d.ids("item"),
			SourceID:   src.ID,
			Type:       src.Type,
			Transform:  models.DefaultLayerTransform,
			Properties: models.ItemProperties{Opacity: 1},
		})
		return nil
	})
	on(command.SceneRemoveLayer, func(t *tx, p command.LayerRef) error {
		i := t.s.SceneIndex(p.SceneID)
		if i < 0 {
			return nil
		}
		items := t.s.Scenes[i].Items[:0]
		for _, it := range t.s.Scenes[i].Items {
			if it.ID != p.ItemID {
				items = append(items, it)
			}
		}
		t.s.Scenes[i].Items = items
		return nil
	})
	on(command.SceneUpdateLayer, func(t *tx, p command.LayerUpdate) error {
		i := t.s.SceneIndex(p.SceneID)
		if i < 0 {
			return nil
		}
		for j, it := range t.s.Scenes[i].Items {
			if it.ID != p.ItemID {
				continue
			}
			if err := mergeValues(&it, p.Values); err != nil {
				return oaerrors.InvalidPayload(string(command.SceneUpdateLayer), err)
			}
			it.ID = p.ItemID
			t.s.Scenes[i].Items[j] = it
			break
		}
		return nil
	})

	on(command.SaveConfiguration, func(t *tx, p command.PresetName) error {
		if p.Name == "" {
			return nil
		}
		t.s.SavedConfigs = append(t.s.SavedConfigs, models.Preset{
			Name:    p.Name,
			SavedAt: t.d.now().UnixMilli(),
			State:   t.s.Snapshot(),
		})
		t.emit(Effect{Kind: EffectPersistPresets})
		return nil
	})
	on(command.LoadConfiguration, func(t *tx, index int) error {
		if index < 0 || index >= len(t.s.SavedConfigs) {
			return nil
		}
		snap := t.s.SavedConfigs[index].State.Clone()
		t.s.Sources = snap.Sources
		t.s.Scenes = snap.Scenes
		t.s.Overlays = snap.Overlays
		t.s.Branding = snap.Branding
		for visual, ch := range snap.AudioLinks {
			if t.s.ChannelIndex(ch) < 0 {
				continue
			}
			if t.s.AudioLinks == nil {
				t.s.AudioLinks = models.AudioLinks{}
			}
			t.s.AudioLinks.Link(visual, ch)
		}
		return nil
	})
	on(command.SessionUpdateMetadata, func(t *tx, p command.Partial) error {
		next := t.s.Session
		if err := mergeValues(&next, p); err != nil {
			return oaerrors.InvalidPayload(string(command.SessionUpdateMetadata), err)
		}
		t.s.Session = next
		return nil
	})
	on(command.BrandingUpdate, func(t *tx, p command.Partial) error {
		next := t.s.Branding
		if err := mergeValues(&next, p); err != nil {
			return oaerrors.InvalidPayload(string(command.BrandingUpdate), err)
		}
		t.s.Branding = next
		return nil
	})
}

func (t *tx) addSource(src models.Source) {
	if t.s.SourceIndex(src.ID) >= 0 {
		return
	}
	t.s.Sources = append(t.s.Sources, src)
}

// removeSource deletes a source together with the scene layers, deck
// assignments and audio link that point at it.
func (t *tx) removeSource(id string) {
	i := t.s.SourceIndex(id)
	if i < 0 {
		return
	}
	t.s.Sources = append(t.s.Sources[:i], t.s.Sources[i+1:]...)
	for si := range t.s.Scenes {
		items := t.s.Scenes[si].Items[:0]
		for _, it := range t.s.Scenes[si].Items {
			if it.SourceID != id {
				items = append(items, it)
			}
		}
		t.s.Scenes[si].Items = items
	}
	for _, deck := range []**string{&t.s.VJMixer.DeckA, &t.s.VJMixer.DeckB} {
		if *deck != nil && **deck == id {
			*deck = nil
		}
	}
	t.s.AudioLinks.Unlink(id)
}

func (t *tx) removeChannel(id string) {
	i := t.s.ChannelIndex(id)
	if i < 0 || t.s.AudioChannels[i].IsMaster() {
		return
	}
	t.s.AudioChannels = append(t.s.AudioChannels[:i], t.s.AudioChannels[i+1:]...)
	t.s.AudioLinks.DropChannel(id)
}
