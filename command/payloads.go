package command

import (
	"encoding/json"

	"github.com/grovetools/onair/pkg/models"
)

// Update is a partial update of one entity: only the keys present in Values change.
type Update struct {
	ID     string         `json:"id" jsonschema:"required"`
	Values map[string]any `json:"values" jsonschema:"required"`
}

type FaderLevel struct {
	ChannelID string  `json:"channelId" jsonschema:"required"`
	Level     float64 `json:"level" jsonschema:"required,minimum=0,maximum=100"`
}

type GainTrim struct {
	ChannelID string  `json:"channelId" jsonschema:"required"`
	Gain      float64 `json:"gain" jsonschema:"required,minimum=-12,maximum=12"`
}

type EQSetting struct {
	ChannelID string  `json:"channelId" jsonschema:"required"`
	Band      string  `json:"band" jsonschema:"required,enum=low,enum=mid1,enum=mid2,enum=high"`
	Value     float64 `json:"value" jsonschema:"required"`
}

type CompressorSetting struct {
	ChannelID string  `json:"channelId" jsonschema:"required"`
	Threshold float64 `json:"threshold" jsonschema:"required"`
	Ratio     float64 `json:"ratio" jsonschema:"required"`
}

type GateSetting struct {
	ChannelID string  `json:"channelId" jsonschema:"required"`
	Threshold float64 `json:"threshold" jsonschema:"required"`
}

type PanSetting struct {
	ChannelID string  `json:"channelId" jsonschema:"required"`
	Pan       float64 `json:"pan" jsonschema:"required,minimum=-100,maximum=100"`
}

type BusSend struct {
	ChannelID string  `json:"channelId" jsonschema:"required"`
	Bus       string  `json:"bus" jsonschema:"required,enum=aux1,enum=aux2"`
	Level     float64 `json:"level" jsonschema:"required,minimum=0,maximum=100"`
}

type MixMinus struct {
	ChannelID string `json:"channelId" jsonschema:"required"`
	Enabled   bool   `json:"enabled"`
}

// AudioLink pairs a visual id with the channel that follows it.
type AudioLink struct {
	SourceID  string `json:"sourceId" jsonschema:"required"`
	ChannelID string `json:"channelId" jsonschema:"required"`
}

type DeckAssign struct {
	Deck     string `json:"deck" jsonschema:"required,enum=deckA,enum=deckB"`
	SourceID string `json:"sourceId" jsonschema:"required"`
}

type DeckClear struct {
	Deck string `json:"deck" jsonschema:"required,enum=deckA,enum=deckB"`
}

// SourceBatch is the setup-wizard bulk import.
type SourceBatch struct {
	Video []models.Source       `json:"video"`
	Audio []models.AudioChannel `json:"audio"`
	Links []AudioLink           `json:"links,omitempty"`
}

// GuestPromotion turns a guest into a source and an audio channel.
type GuestPromotion struct {
	Guest      models.Guest      `json:"guest" jsonschema:"required"`
	SourceType models.SourceType `json:"sourceType" jsonschema:"required"`
}

type GuestInvite struct {
	Type     models.GuestKind `json:"type" jsonschema:"required,enum=WEBRTC,enum=CAPTURE"`
	Platform string           `json:"platform,omitempty"`
}

type SceneName struct {
	Name string `json:"name" jsonschema:"required"`
}

type LayerAdd struct {
	SceneID  string `json:"sceneId" jsonschema:"required"`
	SourceID string `json:"sourceId" jsonschema:"required"`
}

type LayerRef struct {
	SceneID string `json:"sceneId" jsonschema:"required"`
	ItemID  string `json:"itemId" jsonschema:"required"`
}

type LayerUpdate struct {
	SceneID string         `json:"sceneId" jsonschema:"required"`
	ItemID  string         `json:"itemId" jsonschema:"required"`
	Values  map[string]any `json:"values" jsonschema:"required"`
}

type ContentUpdate struct {
	ID      string         `json:"id" jsonschema:"required"`
	Content map[string]any `json:"content" jsonschema:"required"`
}

type PresetName struct {
	Name string `json:"name" jsonschema:"required"`
}

type ReplayRequest struct {
	// Duration in seconds.
	Duration float64 `json:"duration" jsonschema:"required,minimum=0"`
}

type ReplayReturn struct {
	Generation int `json:"generation" jsonschema:"required"`
}

// Timer names for TIMER_TICK.
const (
	TimerLive      = "live"
	TimerRecording = "recording"
)

type Tick struct {
	Timer string `json:"timer" jsonschema:"required,enum=live,enum=recording"`
}

type ConnectResult struct {
	ID      string `json:"id" jsonschema:"required"`
	OK      bool   `json:"ok"`
	Viewers int    `json:"viewers,omitempty"`
}

type TitleRequest struct {
	Prompt string `json:"prompt" jsonschema:"required"`
	// OverlayID receives the text as its subtitle; empty adds a suggestion instead.
	OverlayID string `json:"overlayId,omitempty"`
}

type Suggestion struct {
	Text string `json:"text" jsonschema:"required"`
}

// Progress is the payload of SWITCHER_SET_TRANSITION_PROGRESS. On the wire it
// is either a bare number or {progress, generation}.
type Progress struct {
	Value float64 `json:"progress" jsonschema:"required,minimum=0,maximum=1"`
	// Generation of the transition run that produced the frame; zero for operator input.
	Generation int `json:"generation,omitempty"`
}

func (p *Progress) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*p = Progress{Value: v}
		return nil
	}
	type plain Progress
	var aux plain
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Progress(aux)
	return nil
}
