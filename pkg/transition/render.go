package transition

import (
	"github.com/grovetools/onair/pkg/models"
)

// Clip is the visible horizontal band of a layer, as fractions of the width.
type Clip struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

var full = Clip{Left: 0, Right: 1}

// Layer is how one side of a transition is composited.
type Layer struct {
	Opacity float64 `json:"opacity"`
	ZIndex  int     `json:"zIndex"`
	Clip    Clip    `json:"clip"`
}

// Frame is the composite of the outgoing (From) and incoming (To) pictures.
type Frame struct {
	Type     models.TransitionType `json:"type"`
	Progress float64               `json:"progress"`
	From     Layer                 `json:"from"`
	To       Layer                 `json:"to"`
}

// Render computes the frame of t. An idle transition shows only the program.
func Render(t models.Transition) Frame {
	p := clamp01(t.Progress)
	f := Frame{Type: t.Type, Progress: p}
	if !t.IsActive {
		f.Progress = 0
		f.From = Layer{Opacity: 1, ZIndex: 1, Clip: full}
		f.To = Layer{Opacity: 0, ZIndex: 2, Clip: full}
		return f
	}
	switch t.Type {
	case models.TransitionWipeLR:
		edge := 1 - p
		f.From = Layer{Opacity: 1, ZIndex: 1, Clip: Clip{Left: 0, Right: edge}}
		f.To = Layer{Opacity: 1, ZIndex: 2, Clip: Clip{Left: edge, Right: 1}}
	case models.TransitionCut:
		f.From = Layer{Opacity: 0, ZIndex: 1, Clip: full}
		f.To = Layer{Opacity: 1, ZIndex: 2, Clip: full}
	default:
		f.From = Layer{Opacity: 1 - p, ZIndex: 1, Clip: full}
		f.To = Layer{Opacity: p, ZIndex: 2, Clip: full}
	}
	return f
}

// DeckMix is the opacity of each VJ deck.
type DeckMix struct {
	A float64 `json:"deckA"`
	B float64 `json:"deckB"`
}

// VJFrame maps a crossfader position in [-1, 1] to deck opacities.
func VJFrame(crossfade float64) DeckMix {
	c := crossfade
	if c < -1 {
		c = -1
	} else if c > 1 {
		c = 1
	}
	return DeckMix{A: (1 - c) / 2, B: (1 + c) / 2}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
