// Package views derives read-only projections from a state snapshot. Views are
// pure functions of the state and are never stored.
package views

import (
	"fmt"
	"sort"

	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/transition"
)

// Status is the coarse health of the rig.
type Status string

const (
	StatusNormal        Status = "NORMAL"
	StatusCPUStress     Status = "CPU_STRESS"
	StatusNetworkStress Status = "NETWORK_STRESS"
)

const (
	// CPUStressTemperature is the encoder temperature above which the rig is under CPU stress.
	CPUStressTemperature = 75.0
	// NetworkStressBitrate is the kbps floor under which a live rig is under network stress.
	NetworkStressBitrate = 2000.0
)

// ItemKind tells whether a program or preview id resolved to a scene or a source.
type ItemKind string

const (
	KindScene  ItemKind = "scene"
	KindSource ItemKind = "source"
)

// Item is what the program or preview bus shows.
type Item struct {
	Kind   ItemKind       `json:"kind"`
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Scene  *models.Scene  `json:"scene,omitempty"`
	Source *models.Source `json:"source,omitempty"`
}

// StreamSummary counts destinations by status.
type StreamSummary struct {
	Active     int `json:"active"`
	Live       int `json:"live"`
	Connecting int `json:"connecting"`
	Errored    int `json:"errored"`
	Viewers    int `json:"viewers"`
}

// View is everything a renderer needs besides the raw state.
type View struct {
	Program          *Item               `json:"program"`
	Preview          *Item               `json:"preview"`
	ActiveOverlays   []models.Overlay    `json:"activeOverlays"`
	Status           Status              `json:"systemStatus"`
	Transition       transition.Frame    `json:"transition"`
	VJ               *transition.DeckMix `json:"vj,omitempty"`
	Streams          StreamSummary       `json:"streams"`
	LiveClock        string              `json:"liveClock"`
	RecordingClock   string              `json:"recordingClock"`
	ScoreboardActive bool                `json:"scoreboardActive"`
}

// Build computes the full view of s.
func Build(s models.State) View {
	v := View{
		Program:        ProgramItem(s),
		Preview:        PreviewItem(s),
		ActiveOverlays: ActiveOverlays(s),
		Status:         SystemStatus(s),
		Transition:     transition.Render(s.Transition),
		Streams:        Streams(s),
		LiveClock:      Clock(s.LiveSeconds),
		RecordingClock: Clock(s.RecordingSeconds),
	}
	if s.VJMixer.Mode == models.VJModeVJ {
		mix := transition.VJFrame(s.VJMixer.Crossfade)
		v.VJ = &mix
	}
	for _, o := range v.ActiveOverlays {
		if o.ID == models.ScoreboardOverlayID {
			v.ScoreboardActive = true
		}
	}
	return v
}

// ProgramItem resolves the program id.
func ProgramItem(s models.State) *Item {
	return Resolve(s, s.ProgramID)
}

// PreviewItem resolves the preview id.
func PreviewItem(s models.State) *Item {
	return Resolve(s, s.PreviewID)
}

// Resolve looks id up among scenes first, then sources. It returns nil when
// neither has it.
func Resolve(s models.State, id string) *Item {
	if id == "" {
		return nil
	}
	if sc, ok := s.FindScene(id); ok {
		return &Item{Kind: KindScene, ID: sc.ID, Name: sc.Name, Scene: &sc}
	}
	if src, ok := s.FindSource(id); ok {
		return &Item{Kind: KindSource, ID: src.ID, Name: src.Name, Source: &src}
	}
	return nil
}

// ActiveOverlays returns the active overlays ordered by band. Overlays within
// a band keep their state order.
func ActiveOverlays(s models.State) []models.Overlay {
	out := make([]models.Overlay, 0, len(s.Overlays))
	for _, o := range s.Overlays {
		if o.Active {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Type.Band() < out[j].Type.Band()
	})
	return out
}

// SystemStatus classifies the health telemetry.
func SystemStatus(s models.State) Status {
	switch {
	case s.SystemHealth.Temperature > CPUStressTemperature:
		return StatusCPUStress
	case s.IsLive && s.SystemHealth.Bitrate < NetworkStressBitrate:
		return StatusNetworkStress
	}
	return StatusNormal
}

// Streams summarizes the stream destinations.
func Streams(s models.State) StreamSummary {
	var sum StreamSummary
	for _, d := range s.StreamDestinations {
		if d.IsActive {
			sum.Active++
		}
		switch d.Status {
		case models.StreamLive:
			sum.Live++
			sum.Viewers += d.Viewers
		case models.StreamConnecting:
			sum.Connecting++
		case models.StreamError:
			sum.Errored++
		}
	}
	return sum
}

// Clock formats seconds as HH:MM:SS.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
