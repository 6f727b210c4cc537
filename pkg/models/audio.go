package models

// MasterChannelID is the program bus. It never takes part in mute or solo.
const MasterChannelID = "master"

// HPF is the high-pass filter of a channel strip.
type HPF struct {
	Enabled   bool    `json:"enabled"`
	Frequency float64 `json:"frequency"`
}

// EQ is a 4-band equalizer in dB.
type EQ struct {
	Low  float64 `json:"low"`
	Mid1 float64 `json:"mid1"`
	Mid2 float64 `json:"mid2"`
	High float64 `json:"high"`
}

// Compressor settings.
type Compressor struct {
	Threshold float64 `json:"threshold"`
	Ratio     float64 `json:"ratio"`
}

// Gate settings.
type Gate struct {
	Threshold float64 `json:"threshold"`
}

// BusSends are auxiliary send levels, 0-100.
type BusSends struct {
	Aux1 float64 `json:"aux1"`
	Aux2 float64 `json:"aux2"`
}

// AudioChannel is one strip of the audio console.
type AudioChannel struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Volume       float64    `json:"volume"`
	Gain         float64    `json:"gain"`
	IsMuted      bool       `json:"isMuted"`
	IsSolo       bool       `json:"isSolo"`
	IsMasterLock bool       `json:"isMasterLock,omitempty"`
	Pan          float64    `json:"pan"`
	HPF          HPF        `json:"hpf"`
	EQ           EQ         `json:"eq"`
	Compressor   Compressor `json:"compressor"`
	Gate         Gate       `json:"gate"`
	BusSends     BusSends   `json:"busSends"`
	MixMinus     bool       `json:"mixMinus"`
	DelayMs      int        `json:"delayMs,omitempty"`
}

// IsMaster reports whether the channel is the program bus.
func (c AudioChannel) IsMaster() bool {
	return c.ID == MasterChannelID
}

// NewAudioChannel returns a flat channel strip with console defaults.
func NewAudioChannel(id, name string) AudioChannel {
	return AudioChannel{
		ID:         id,
		Name:       name,
		Volume:     75,
		HPF:        HPF{Frequency: 80},
		Compressor: Compressor{Ratio: 1},
		Gate:       Gate{Threshold: -60},
	}
}

// NewInputChannel returns a strip with the defaults of discovered microphones
// and promoted guests.
func NewInputChannel(id, name string) AudioChannel {
	return AudioChannel{
		ID:         id,
		Name:       name,
		Volume:     70,
		HPF:        HPF{Enabled: true, Frequency: 100},
		Compressor: Compressor{Threshold: -18, Ratio: 3},
		Gate:       Gate{Threshold: -50},
	}
}

// AudioFX is the global effects rack, 0-100 each.
type AudioFX struct {
	Filter float64 `json:"filter"`
	Echo   float64 `json:"echo"`
	Reverb float64 `json:"reverb"`
}

// AudioLinks maps a visual id (source or scene) to the channel that follows it.
type AudioLinks map[string]string

// Clone copies the table.
func (l AudioLinks) Clone() AudioLinks {
	if l == nil {
		return nil
	}
	out := make(AudioLinks, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// ChannelFor returns the channel linked to a visual id.
func (l AudioLinks) ChannelFor(visualID string) (string, bool) {
	ch, ok := l[visualID]
	return ch, ok && ch != ""
}

// VisualsFor returns every visual id linked to channelID.
func (l AudioLinks) VisualsFor(channelID string) []string {
	var out []string
	for visual, ch := range l {
		if ch == channelID {
			out = append(out, visual)
		}
	}
	sortStrings(out)
	return out
}

// Link pairs a visual id with a channel, replacing any previous link.
func (l AudioLinks) Link(visualID, channelID string) {
	l[visualID] = channelID
}

// Unlink removes the link of a visual id.
func (l AudioLinks) Unlink(visualID string) {
	delete(l, visualID)
}

// DropChannel removes every link pointing at channelID.
func (l AudioLinks) DropChannel(channelID string) {
	for visual, ch := range l {
		if ch == channelID {
			delete(l, visual)
		}
	}
}
