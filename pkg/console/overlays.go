package console

import (
	"fmt"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/models"
)

// Lighting limits.
const (
	MinColorTemp = 2700
	MaxColorTemp = 6500
)

func init() {
	on(command.OverlayAdd, func(t *tx, o models.Overlay) error {
		if o.Content == nil {
			content, err := models.NewContent(o.Type)
			if err != nil {
				return oaerrors.InvalidPayload(string(command.OverlayAdd), err)
			}
			o.Content = content
		}
		if o.Content.OverlayType() != o.Type {
			return oaerrors.InvalidPayload(string(command.OverlayAdd),
				fmt.Errorf("content of type %s on a %s overlay", o.Content.OverlayType(), o.Type))
		}
		if o.ID == "" {
			o.ID = t.d.ids(string(o.Type))
		}
		if t.s.OverlayIndex(o.ID) >= 0 {
			return nil
		}
		t.s.Overlays = append(t.s.Overlays, o)
		if o.Type == models.OverlayComment {
			t.emit(after(OverlayExpireKey(o.ID), t.policy().CommentDisplay,
				command.New(command.OverlayRemove, o.ID)))
		}
		return nil
	})
	on(command.OverlayRemove, func(t *tx, id string) error {
		i := t.s.OverlayIndex(id)
		if i < 0 {
			return nil
		}
		if t.s.Overlays[i].Type == models.OverlayComment {
			t.emit(cancel(OverlayExpireKey(id)))
		}
		t.s.Overlays = append(t.s.Overlays[:i], t.s.Overlays[i+1:]...)
		return nil
	})
	on(command.OverlayToggle, func(t *tx, id string) error {
		if i := t.s.OverlayIndex(id); i >= 0 {
			t.s.Overlays[i].Active = !t.s.Overlays[i].Active
		}
		return nil
	})
	on(command.OverlayUpdateContent, func(t *tx, p command.ContentUpdate) error {
		i := t.s.OverlayIndex(p.ID)
		if i < 0 {
			return nil
		}
		o := t.s.Overlays[i]
		if o.Content == nil {
			content, err := models.NewContent(o.Type)
			if err != nil {
				return oaerrors.InvalidPayload(string(command.OverlayUpdateContent), err)
			}
			o.Content = content
		}
		content, err := models.MergeContent(o.Content, p.Content)
		if err != nil {
			return oaerrors.InvalidPayload(string(command.OverlayUpdateContent), err)
		}
		t.s.Overlays[i].Content = content
		return nil
	})
	on(command.CommentConfigUpdate, func(t *tx, p command.Partial) error {
		next := t.s.CommentOverlay
		if err := mergeValues(&next, p); err != nil {
			return oaerrors.InvalidPayload(string(command.CommentConfigUpdate), err)
		}
		next.Opacity = clamp(next.Opacity, 0, 1)
		t.s.CommentOverlay = next
		return nil
	})

	on(command.LightingSetScene, func(t *tx, id string) error {
		t.s.Lighting.ActiveSceneID = models.StringPtr(id)
		return nil
	})
	on(command.LightingSetIntensity, func(t *tx, v float64) error {
		t.s.Lighting.MasterIntensity = clamp(v, 0, 100)
		return nil
	})
	on(command.LightingSetColorTemp, func(t *tx, v float64) error {
		t.s.Lighting.ColorTemperature = clamp(v, MinColorTemp, MaxColorTemp)
		return nil
	})

	on(command.AISetSuggestions, func(t *tx, list []models.AISuggestion) error {
		t.s.AISuggestions = append([]models.AISuggestion{}, list...)
		return nil
	})
	on(command.AIAddSuggestion, func(t *tx, p command.Suggestion) error {
		t.s.AISuggestions = append(t.s.AISuggestions, models.AISuggestion{ID: t.d.ids("ai"), Text: p.Text})
		return nil
	})
	on(command.AIGenerateTitle, func(t *tx, p command.TitleRequest) error {
		kind := TaskGenerateTitle
		if p.OverlayID == "" {
			kind = TaskGenerateIdeas
		} else if t.s.OverlayIndex(p.OverlayID) < 0 {
			return nil
		}
		t.emit(afterTask(GenerateTitleKey(p.OverlayID), 0, Task{Kind: kind, Target: p.OverlayID, Prompt: p.Prompt}))
		return nil
	})
}
