package models

import (
	"github.com/grovetools/onair/pkg/scoreboard"
)

// Reserved ids of the stock rig.
const (
	SafeSourceID        = "safe-scene-src"
	SafeLightingSceneID = "safe-white"
	ProtectedChannelID  = "mic-1"
	BlankSourceID       = "blank"
)

// Rig parameterizes the initial state.
type Rig struct {
	MicLock    bool
	Transition Transition
	Scoreboard scoreboard.State
	// Date is the session date, YYYY-MM-DD.
	Date string
}

// DefaultRig returns the stock rig settings.
func DefaultRig() Rig {
	return Rig{
		MicLock:    true,
		Transition: Transition{Type: TransitionFade, DurationMs: 500},
	}
}

// InitialState builds the stock studio: four cameras, media playback, graphics
// sources, three scenes, a four-strip console and three stream targets.
func InitialState(rig Rig) State {
	board := rig.Scoreboard
	if board == nil {
		board = scoreboard.Load(scoreboard.DefaultSport)
	}
	transition := rig.Transition
	if !transition.Type.Valid() {
		transition.Type = TransitionFade
	}
	transition.IsActive, transition.Progress = false, 0

	master := NewAudioChannel(MasterChannelID, "PGM Master")
	master.Volume = 80

	mic := NewAudioChannel(ProtectedChannelID, "Mic 1 (Host)")
	mic.Volume, mic.Gain, mic.IsMasterLock = 90, 6, true
	mic.HPF = HPF{Enabled: true, Frequency: 100}
	mic.Compressor = Compressor{Threshold: -12, Ratio: 2}
	mic.Gate = Gate{Threshold: -45}

	cam1 := NewAudioChannel("audio-cam-1", "Cam 1 Audio")
	cam1.Volume, cam1.IsMuted = 50, true

	media := NewAudioChannel("audio-media-1", "Media Audio")
	media.Volume = 60

	return State{
		Sources: []Source{
			{ID: "cam-1", Type: SourceInternalCam, Name: "Camera 1 (Internal)", IsVisible: true},
			{ID: "cam-2", Type: SourceUSB, Name: "Camera 2 (USB)", IsVisible: true},
			{ID: "cam-3", Type: SourceNDI, Name: "Camera 3 (NDI)", IsVisible: true},
			{ID: "ptz-1", Type: SourcePTZ, Name: "PTZ Cam 1 (Rooftop)", IsVisible: true},
			{ID: "media-1", Type: SourceSRT, Name: "Video Playback", IsVisible: true},
			{ID: "logo-img", Type: SourceImage, Name: "Logo", Content: "https://picsum.photos/seed/logo/200/100"},
			{ID: "live-text", Type: SourceText, Name: "Live Title", Content: "LIVE FROM THE STUDIO"},
			{ID: BlankSourceID, Type: SourceBlank, Name: "BLACK", IsVisible: true},
			{ID: SafeSourceID, Type: SourceSafe, Name: "SAFE SCENE", Content: "https://picsum.photos/seed/safescene/640/360", IsVisible: true},
		},
		Scenes: []Scene{
			{ID: "scene-1", Name: "Intro Scene", Items: []SceneItem{
				fullFrame("item-1-1", "cam-1", SourceInternalCam),
				{ID: "item-1-2", SourceID: "logo-img", Type: SourceImage,
					Transform: Transform{X: 5, Y: 5, Width: 15, Height: 10, ZIndex: 2}, Properties: ItemProperties{Opacity: 0.9}},
			}},
			{ID: "scene-2", Name: "Picture-in-Picture", Items: []SceneItem{
				fullFrame("item-2-1", "cam-2", SourceUSB),
				{ID: "item-2-2", SourceID: "ptz-1", Type: SourcePTZ,
					Transform: Transform{X: 70, Y: 65, Width: 28, Height: 28, ZIndex: 2}, Properties: ItemProperties{Opacity: 1}},
			}},
			{ID: "scene-3", Name: "Cam 2 + Media", Items: []SceneItem{
				{ID: "item-3-1", SourceID: "cam-2", Type: SourceUSB,
					Transform: Transform{Width: 50, Height: 100, ZIndex: 1}, Properties: ItemProperties{Opacity: 1}},
				{ID: "item-3-2", SourceID: "media-1", Type: SourceSRT,
					Transform: Transform{X: 50, Width: 50, Height: 100, ZIndex: 1}, Properties: ItemProperties{Opacity: 1}},
			}},
		},
		AudioChannels: []AudioChannel{master, mic, cam1, media},
		AudioLinks: AudioLinks{
			"cam-1":   "audio-cam-1",
			"scene-1": "audio-cam-1",
			"media-1": "audio-media-1",
			"scene-3": "audio-media-1",
		},
		Overlays: []Overlay{NewOverlay(ScoreboardOverlayID, ScoreboardContent{})},
		StreamDestinations: []StreamDestination{
			{ID: "yt", Name: "YouTube", Platform: "YouTube", Status: StreamOffline},
			{ID: "fb", Name: "Facebook", Platform: "Facebook", Status: StreamOffline},
			{ID: "tk", Name: "TikTok", Platform: "TikTok", Status: StreamOffline},
		},
		PreviewID: "scene-1",
		ProgramID: BlankSourceID,
		Branding: Branding{
			Logo: BrandingElement{Content: "https://picsum.photos/seed/brandlogo/200/100", Opacity: 0.8, Size: 10, Position: "bottom-right"},
			Text: BrandingElement{Content: "ARCLS Production", Opacity: 0.8, Size: 16, Position: "bottom-left", Color: "#FFFFFF"},
		},
		Transition:     transition,
		CommentOverlay: CommentOverlayConfig{BackgroundColor: "#1a202c", Opacity: 0.8},
		VJMixer:        VJMixer{Mode: VJModeTransition},
		ControlSurface: ControlSurface{MicLock: rig.MicLock, ActiveSingleModePanel: PanelNone},
		Lighting: Lighting{
			Scenes: []LightingScene{
				{ID: SafeLightingSceneID, Name: "Safe White", Color: "#FFFFFF"},
				{ID: "podcast-soft", Name: "Podcast Soft", Color: "#FFDDC4"},
				{ID: "podcast-dramatic", Name: "Podcast Dramatic", Color: "#A0C4FF"},
				{ID: "product-showcase", Name: "Product Showcase", Color: "#EAEAEA"},
				{ID: "goal-flash", Name: "Goal Flash", Color: "#FF0000"},
			},
			ActiveSceneID:    StringPtr(SafeLightingSceneID),
			MasterIntensity:  100,
			ColorTemperature: 5600,
		},
		Session: Session{
			EventName: "Mi Evento en Vivo", Date: rig.Date, Sport: "Soccer", Venue: "Estadio Local",
			League: "Liga Master", HomeTeam: "Equipo A", AwayTeam: "Equipo B", Sponsors: "Sponsor Principal",
		},
		Output:     Output{Resolution: "1080p", FPS: 30},
		Scoreboard: board,
		SystemHealth: SystemHealth{
			Temperature: 45, Battery: 90, Signal: 95, Bitrate: 5500, FPS: 29.97, Latency: 25,
		},
		Prefs: Prefs{Theme: "dark"},
	}
}

func fullFrame(id, sourceID string, t SourceType) SceneItem {
	return SceneItem{
		ID: id, SourceID: sourceID, Type: t,
		Transform:  Transform{Width: 100, Height: 100, ZIndex: 1},
		Properties: ItemProperties{Opacity: 1},
	}
}
