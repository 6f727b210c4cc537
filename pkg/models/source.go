package models

// SourceType enumerates the kinds of inputs the mixer knows about.
type SourceType string

const (
	SourceInternalCam   SourceType = "internal-cam"
	SourceUSB           SourceType = "usb"
	SourceNDI           SourceType = "ndi"
	SourcePTZ           SourceType = "ptz"
	SourceRTSP          SourceType = "rtsp"
	SourceSRT           SourceType = "srt"
	SourceImage         SourceType = "image"
	SourceText          SourceType = "text"
	SourceBlank         SourceType = "blank"
	SourceSafe          SourceType = "safe"
	SourceWebRTCGuest   SourceType = "webrtc-guest"
	SourceScreenCapture SourceType = "screen-capture"
)

// Valid reports whether t is a known source type.
func (t SourceType) Valid() bool {
	switch t {
	case SourceInternalCam, SourceUSB, SourceNDI, SourcePTZ, SourceRTSP, SourceSRT,
		SourceImage, SourceText, SourceBlank, SourceSafe, SourceWebRTCGuest, SourceScreenCapture:
		return true
	}
	return false
}

// Source is a video/audio-capable input.
type Source struct {
	ID        string     `json:"id"`
	Type      SourceType `json:"type"`
	Name      string     `json:"name"`
	Content   string     `json:"content,omitempty"`
	IsVisible bool       `json:"isVisible"`
}

// Transform positions a layer in percent of the canvas.
type Transform struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ZIndex int     `json:"zIndex"`
}

// ItemProperties are per-layer render properties.
type ItemProperties struct {
	Opacity float64 `json:"opacity"`
	Text    string  `json:"text,omitempty"`
}

// SceneItem is one layer of a scene. SourceID references a Source.
type SceneItem struct {
	ID         string         `json:"id"`
	SourceID   string         `json:"sourceId"`
	Type       SourceType     `json:"type"`
	Transform  Transform      `json:"transform"`
	Properties ItemProperties `json:"properties"`
}

// DefaultLayerTransform is used for layers added without explicit geometry.
var DefaultLayerTransform = Transform{X: 25, Y: 25, Width: 50, Height: 50, ZIndex: 1}

// SceneTiming makes a scene hand back control after a fixed time.
type SceneTiming struct {
	Mode        string `json:"mode"`
	DurationSec int    `json:"durationSec"`
	OnFinish    string `json:"onFinish"`
}

// Scene is a named composition of layers.
type Scene struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Items  []SceneItem  `json:"items"`
	Timing *SceneTiming `json:"timing,omitempty"`
}

// Clone copies the scene including its layers.
func (s Scene) Clone() Scene {
	out := s
	out.Items = cloneSlice(s.Items)
	if s.Timing != nil {
		t := *s.Timing
		out.Timing = &t
	}
	return out
}
