package models

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// OverlayType discriminates overlay content.
type OverlayType string

const (
	OverlayLowerThird OverlayType = "lower-third"
	OverlaySponsor    OverlayType = "sponsor"
	OverlayChat       OverlayType = "chat"
	OverlayProduct    OverlayType = "product"
	OverlayScoreboard OverlayType = "scoreboard"
	OverlayComment    OverlayType = "comment"
	OverlayReplay     OverlayType = "replay"
)

// ScoreboardOverlayID is the overlay that renders the live scoreboard.
const ScoreboardOverlayID = "main_scoreboard"

// Band is the rendering priority of an overlay type, L1 lowest.
func (t OverlayType) Band() int {
	switch t {
	case OverlaySponsor, OverlayProduct:
		return 1
	case OverlayScoreboard:
		return 2
	case OverlayLowerThird:
		return 3
	case OverlayChat, OverlayComment:
		return 4
	case OverlayReplay:
		return 5
	}
	return 0
}

// OverlayContent is the per-type payload of an overlay.
type OverlayContent interface {
	OverlayType() OverlayType
}

type LowerThirdContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

type SponsorContent struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type ChatContent struct {
	Channel string `json:"channel,omitempty"`
	Message string `json:"message,omitempty"`
}

type ProductContent struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// ScoreboardContent renders the scoreboard slice of the state.
type ScoreboardContent struct {
	Layout string `json:"layout,omitempty"`
}

type CommentContent struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	Platform  string `json:"platform,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type ReplayContent struct {
	Label string `json:"label,omitempty"`
}

func (LowerThirdContent) OverlayType() OverlayType { return OverlayLowerThird }
func (SponsorContent) OverlayType() OverlayType    { return OverlaySponsor }
func (ChatContent) OverlayType() OverlayType       { return OverlayChat }
func (ProductContent) OverlayType() OverlayType    { return OverlayProduct }
func (ScoreboardContent) OverlayType() OverlayType { return OverlayScoreboard }
func (CommentContent) OverlayType() OverlayType    { return OverlayComment }
func (ReplayContent) OverlayType() OverlayType     { return OverlayReplay }

// NewContent returns the zero content of an overlay type.
func NewContent(t OverlayType) (OverlayContent, error) {
	switch t {
	case OverlayLowerThird:
		return LowerThirdContent{}, nil
	case OverlaySponsor:
		return SponsorContent{}, nil
	case OverlayChat:
		return ChatContent{}, nil
	case OverlayProduct:
		return ProductContent{}, nil
	case OverlayScoreboard:
		return ScoreboardContent{}, nil
	case OverlayComment:
		return CommentContent{}, nil
	case OverlayReplay:
		return ReplayContent{}, nil
	}
	return nil, fmt.Errorf("unknown overlay type %q", t)
}

// MergeContent overlays the keys of patch onto content. Keys absent from patch keep their value.
func MergeContent(content OverlayContent, patch map[string]any) (OverlayContent, error) {
	ptr := reflect.New(reflect.TypeOf(content))
	ptr.Elem().Set(reflect.ValueOf(content))

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           ptr.Interface(),
	})
	if err != nil {
		return content, err
	}
	if err := dec.Decode(patch); err != nil {
		return content, fmt.Errorf("merging %s content: %w", content.OverlayType(), err)
	}
	return ptr.Elem().Interface().(OverlayContent), nil
}

// Overlay is a graphic layered over the program output.
type Overlay struct {
	ID      string         `json:"id"`
	Type    OverlayType    `json:"type"`
	Active  bool           `json:"active"`
	Content OverlayContent `json:"content"`
}

// NewOverlay builds an overlay with content matching its type.
func NewOverlay(id string, content OverlayContent) Overlay {
	return Overlay{ID: id, Type: content.OverlayType(), Content: content}
}

type overlayJSON struct {
	ID      string          `json:"id"`
	Type    OverlayType     `json:"type"`
	Active  bool            `json:"active"`
	Content json.RawMessage `json:"content,omitempty"`
}

func (o Overlay) MarshalJSON() ([]byte, error) {
	content := o.Content
	if content == nil {
		var err error
		if content, err = NewContent(o.Type); err != nil {
			return nil, err
		}
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(overlayJSON{ID: o.ID, Type: o.Type, Active: o.Active, Content: raw})
}

func (o *Overlay) UnmarshalJSON(data []byte) error {
	var aux overlayJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	zero, err := NewContent(aux.Type)
	if err != nil {
		return err
	}
	ptr := reflect.New(reflect.TypeOf(zero))
	if len(aux.Content) > 0 && string(aux.Content) != "null" {
		if err := json.Unmarshal(aux.Content, ptr.Interface()); err != nil {
			return fmt.Errorf("decoding %s overlay content: %w", aux.Type, err)
		}
	}
	o.ID, o.Type, o.Active = aux.ID, aux.Type, aux.Active
	o.Content = ptr.Elem().Interface().(OverlayContent)
	return nil
}
