package models

// TransitionType selects how an auto transition is rendered.
type TransitionType string

const (
	TransitionCut    TransitionType = "cut"
	TransitionFade   TransitionType = "fade"
	TransitionWipeLR TransitionType = "wipe-lr"
)

// Valid reports whether t is a known transition type.
func (t TransitionType) Valid() bool {
	return t == TransitionCut || t == TransitionFade || t == TransitionWipeLR
}

// Transition is the single in-flight preview to program switch.
type Transition struct {
	Type       TransitionType `json:"type"`
	DurationMs int            `json:"duration"`
	IsActive   bool           `json:"isActive"`
	Progress   float64        `json:"progress"`
}

// VJMode selects whether the secondary mixer is rendered.
type VJMode string

const (
	VJModeTransition VJMode = "transition"
	VJModeVJ         VJMode = "vj"
)

// VJMixer is the secondary two-deck crossfader.
type VJMixer struct {
	DeckA     *string `json:"deckA"`
	DeckB     *string `json:"deckB"`
	Crossfade float64 `json:"crossfade"`
	Mode      VJMode  `json:"mode"`
}

// Panel is the single-mode panel shown by the control surface.
type Panel string

const (
	PanelNone        Panel = "none"
	PanelAudio       Panel = "audio"
	PanelOverlays    Panel = "overlays"
	PanelPerformance Panel = "performance"
)

// ControlSurface holds the behavior toggles the dispatcher consults.
type ControlSurface struct {
	AudioFollowsVideo     bool  `json:"audioFollowsVideo"`
	MicLock               bool  `json:"micLock"`
	ActiveSingleModePanel Panel `json:"activeSingleModePanel"`
}

// LightingScene is a named lighting preset.
type LightingScene struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Lighting is the studio lighting controller.
type Lighting struct {
	Scenes           []LightingScene `json:"scenes"`
	ActiveSceneID    *string         `json:"activeSceneId"`
	MasterIntensity  float64         `json:"masterIntensity"`
	ColorTemperature float64         `json:"colorTemperature"`
}

// Session is the broadcast metadata.
type Session struct {
	EventName string `json:"eventName"`
	Date      string `json:"date"`
	Sport     string `json:"sport"`
	Venue     string `json:"venue"`
	League    string `json:"league"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	Sponsors  string `json:"sponsors"`
}

// Replay is the instant replay state.
type Replay struct {
	IsActive bool `json:"isActive"`
	IsSlowMo bool `json:"isSlowMo"`
	// Generation identifies the replay run a scheduled auto-return belongs to.
	Generation int `json:"generation"`
}

// Output is the program output format.
type Output struct {
	Resolution string `json:"resolution"`
	FPS        int    `json:"fps"`
}

// ValidResolution reports whether r is a supported output resolution.
func ValidResolution(r string) bool {
	return r == "720p" || r == "1080p" || r == "1440p"
}

// ValidFPS reports whether fps is a supported output frame rate.
func ValidFPS(fps int) bool {
	return fps == 30 || fps == 60
}

// StreamStatus is the connection state of a destination.
type StreamStatus string

const (
	StreamOffline    StreamStatus = "Offline"
	StreamConnecting StreamStatus = "Connecting"
	StreamLive       StreamStatus = "Live"
	StreamError      StreamStatus = "Error"
)

// StreamDestination is an outbound stream target.
type StreamDestination struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Platform  string       `json:"platform"`
	IsActive  bool         `json:"isActive"`
	Status    StreamStatus `json:"status"`
	LiveSince *int64       `json:"liveSince"`
	Viewers   int          `json:"viewers"`
}

// BrandingElement is a logo or text bug.
type BrandingElement struct {
	Enabled  bool    `json:"enabled"`
	Content  string  `json:"content"`
	Opacity  float64 `json:"opacity"`
	Size     float64 `json:"size"`
	Position string  `json:"position"`
	Color    string  `json:"color,omitempty"`
}

// Branding groups the channel branding elements.
type Branding struct {
	Logo BrandingElement `json:"logo"`
	Text BrandingElement `json:"text"`
}

// GuestStatus is the connection state of a remote guest.
type GuestStatus string

const (
	GuestConnected    GuestStatus = "Conectado"
	GuestConnecting   GuestStatus = "Conectando"
	GuestDisconnected GuestStatus = "Caído"
)

// GuestKind is how a guest joins.
type GuestKind string

const (
	GuestWebRTC  GuestKind = "WEBRTC"
	GuestCapture GuestKind = "CAPTURE"
)

// Guest is a remote participant that can be promoted to a source.
type Guest struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Status        GuestStatus `json:"status"`
	Type          GuestKind   `json:"type"`
	Platform      string      `json:"platform,omitempty"`
	SourceID      string      `json:"sourceId,omitempty"`
	AudioSourceID string      `json:"audioSourceId,omitempty"`
}

// AISuggestion is a generated text suggestion.
type AISuggestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SystemHealth is the simulated encoder telemetry.
type SystemHealth struct {
	Temperature   float64 `json:"temperature"`
	Battery       float64 `json:"battery"`
	Signal        float64 `json:"signal"`
	Bitrate       float64 `json:"bitrate"`
	FPS           float64 `json:"fps"`
	DroppedFrames int     `json:"droppedFrames"`
	Latency       float64 `json:"latency"`
}

// CommentOverlayConfig styles comment overlays.
type CommentOverlayConfig struct {
	BackgroundColor string  `json:"backgroundColor"`
	Opacity         float64 `json:"opacity"`
}

// Snapshot is the part of the state a preset captures.
type Snapshot struct {
	Sources  []Source  `json:"sources"`
	Scenes   []Scene   `json:"scenes"`
	Overlays []Overlay `json:"overlays"`
	Branding Branding  `json:"branding"`

	// AudioLinks holds the links of the captured sources and scenes.
	AudioLinks AudioLinks `json:"audioLinks,omitempty"`
}

// Preset is a named saved configuration.
type Preset struct {
	Name    string   `json:"name"`
	SavedAt int64    `json:"savedAt"`
	State   Snapshot `json:"state"`
}

// Prefs are the process-wide boot flags.
type Prefs struct {
	SetupCompleted bool   `json:"setupCompleted"`
	Theme          string `json:"theme"`
}
