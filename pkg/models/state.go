// Package models defines the production entities and the full state record
// of the mixer.
package models

import (
	"sort"

	"github.com/grovetools/onair/pkg/scoreboard"
)

// State is the whole production record. Values are treated as immutable
// snapshots: writers Clone before changing anything.
type State struct {
	Sources            []Source             `json:"sources"`
	Scenes             []Scene              `json:"scenes"`
	AudioChannels      []AudioChannel       `json:"audioSources"`
	AudioLinks         AudioLinks           `json:"audioLinks"`
	Overlays           []Overlay            `json:"overlays"`
	StreamDestinations []StreamDestination  `json:"streamDestinations"`
	PreviewID          string               `json:"previewId"`
	ProgramID          string               `json:"programId"`
	Branding           Branding             `json:"branding"`
	Transition         Transition           `json:"transition"`
	CommentOverlay     CommentOverlayConfig `json:"commentOverlayConfig"`
	SavedConfigs       []Preset             `json:"savedConfigs"`
	AISuggestions      []AISuggestion       `json:"aiSuggestions"`
	VJMixer            VJMixer              `json:"vjMixerState"`
	AudioFX            AudioFX              `json:"audioFXState"`
	Guests             []Guest              `json:"guests"`
	ControlSurface     ControlSurface       `json:"controlSurfaceState"`
	IsLive             bool                 `json:"isLive"`
	IsRecording        bool                 `json:"isRecording"`
	LiveSeconds        int                  `json:"liveSeconds"`
	RecordingSeconds   int                  `json:"recordingSeconds"`
	Lighting           Lighting             `json:"lightingState"`
	Session            Session              `json:"broadcastSession"`
	Replay             Replay               `json:"replayState"`
	Output             Output               `json:"outputState"`
	Scoreboard         scoreboard.State     `json:"scoreboardState"`
	ScoreboardHistory  []scoreboard.State   `json:"-"`
	SystemHealth       SystemHealth         `json:"systemHealth"`
	Prefs              Prefs                `json:"prefs"`
}

// Clone returns a deep copy that shares nothing mutable with s.
func (s State) Clone() State {
	out := s
	out.Sources = cloneSlice(s.Sources)
	out.Scenes = cloneScenes(s.Scenes)
	out.AudioChannels = cloneSlice(s.AudioChannels)
	out.AudioLinks = s.AudioLinks.Clone()
	out.Overlays = cloneSlice(s.Overlays)
	if s.StreamDestinations != nil {
		out.StreamDestinations = make([]StreamDestination, len(s.StreamDestinations))
		for i, d := range s.StreamDestinations {
			d.LiveSince = cloneInt64Ptr(d.LiveSince)
			out.StreamDestinations[i] = d
		}
	}
	if s.SavedConfigs != nil {
		out.SavedConfigs = make([]Preset, len(s.SavedConfigs))
		for i, p := range s.SavedConfigs {
			p.State = p.State.Clone()
			out.SavedConfigs[i] = p
		}
	}
	out.AISuggestions = cloneSlice(s.AISuggestions)
	out.VJMixer.DeckA = cloneStringPtr(s.VJMixer.DeckA)
	out.VJMixer.DeckB = cloneStringPtr(s.VJMixer.DeckB)
	out.Guests = cloneSlice(s.Guests)
	out.Lighting.Scenes = cloneSlice(s.Lighting.Scenes)
	out.Lighting.ActiveSceneID = cloneStringPtr(s.Lighting.ActiveSceneID)
	out.Scoreboard = s.Scoreboard.Clone()
	if s.ScoreboardHistory != nil {
		out.ScoreboardHistory = make([]scoreboard.State, len(s.ScoreboardHistory))
		for i, h := range s.ScoreboardHistory {
			out.ScoreboardHistory[i] = h.Clone()
		}
	}
	return out
}

// Snapshot captures the preset portion of the state.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Sources:  s.Sources,
		Scenes:   s.Scenes,
		Overlays: s.Overlays,
		Branding: s.Branding,
	}.Clone()
	for visual, ch := range s.AudioLinks {
		if s.SourceIndex(visual) < 0 && s.SceneIndex(visual) < 0 {
			continue
		}
		if snap.AudioLinks == nil {
			snap.AudioLinks = AudioLinks{}
		}
		snap.AudioLinks.Link(visual, ch)
	}
	return snap
}

// Clone copies the snapshot collections.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Sources:  cloneSlice(s.Sources),
		Scenes:   cloneScenes(s.Scenes),
		Overlays:   cloneSlice(s.Overlays),
		Branding:   s.Branding,
		AudioLinks: s.AudioLinks.Clone(),
	}
}

// SourceIndex returns the position of a source or -1.
func (s State) SourceIndex(id string) int {
	for i := range s.Sources {
		if s.Sources[i].ID == id {
			return i
		}
	}
	return -1
}

// SceneIndex returns the position of a scene or -1.
func (s State) SceneIndex(id string) int {
	for i := range s.Scenes {
		if s.Scenes[i].ID == id {
			return i
		}
	}
	return -1
}

// ChannelIndex returns the position of an audio channel or -1.
func (s State) ChannelIndex(id string) int {
	for i := range s.AudioChannels {
		if s.AudioChannels[i].ID == id {
			return i
		}
	}
	return -1
}

// OverlayIndex returns the position of an overlay or -1.
func (s State) OverlayIndex(id string) int {
	for i := range s.Overlays {
		if s.Overlays[i].ID == id {
			return i
		}
	}
	return -1
}

// StreamIndex returns the position of a stream destination or -1.
func (s State) StreamIndex(id string) int {
	for i := range s.StreamDestinations {
		if s.StreamDestinations[i].ID == id {
			return i
		}
	}
	return -1
}

// GuestIndex returns the position of a guest or -1.
func (s State) GuestIndex(id string) int {
	for i := range s.Guests {
		if s.Guests[i].ID == id {
			return i
		}
	}
	return -1
}

// FindSource looks up a source by id.
func (s State) FindSource(id string) (Source, bool) {
	if i := s.SourceIndex(id); i >= 0 {
		return s.Sources[i], true
	}
	return Source{}, false
}

// FindScene looks up a scene by id.
func (s State) FindScene(id string) (Scene, bool) {
	if i := s.SceneIndex(id); i >= 0 {
		return s.Scenes[i], true
	}
	return Scene{}, false
}

// FindChannel looks up an audio channel by id.
func (s State) FindChannel(id string) (AudioChannel, bool) {
	if i := s.ChannelIndex(id); i >= 0 {
		return s.AudioChannels[i], true
	}
	return AudioChannel{}, false
}

func cloneScenes(in []Scene) []Scene {
	if in == nil {
		return nil
	}
	out := make([]Scene, len(in))
	for i, sc := range in {
		out[i] = sc.Clone()
	}
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}

func sortStrings(s []string) {
	sort.Strings(s)
}

// cloneSlice copies in, keeping nil apart from empty.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}
